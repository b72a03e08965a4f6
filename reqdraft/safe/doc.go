// Package safe provides panic-free helpers for money arithmetic and tolerant
// value coercion over loosely-typed catalog records.
//
// Money helpers normalize to two decimal places with half-up rounding, the
// same rule the procurement backend applies. Coercion helpers accept the
// union of shapes the catalog sources actually emit (JSON numbers, numeric
// strings, integers) and report failure with a boolean instead of panicking.
package safe
