// Package tracing provides OpenTelemetry tracing for dump imports.
//
// Spans wrap whole-file imports and carry source path, object counts, and
// batch IDs as attributes. Export is OTLP over gRPC. When tracing is
// disabled the tracer is a noop with negligible overhead, so callers can
// instrument unconditionally.
package tracing
