// Package log defines the logging interface and typed logging fields used by
// every engine component.
//
// Adapters (such as the zap package) implement Logger so applications can keep
// logging calls consistent across backends. Components accept a nil Logger and
// stay silent; use Or to normalize an optional logger.
package log
