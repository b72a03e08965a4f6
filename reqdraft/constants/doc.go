// Package constant provides shared constant values used across the library.
//
// Keep this package free of runtime behavior.
// It is used by the catalog, draft, quote, numbering, and wizard packages to
// avoid duplicated literals and to give every failure class a single sentinel.
package constant
