// Package zap implements the log.Logger interface on go.uber.org/zap.
//
// When the context carries an active OpenTelemetry span, trace_id and span_id
// are appended to every entry so logs correlate with traces.
package zap
