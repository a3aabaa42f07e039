// Package metrics provides Prometheus metrics for RPSL parsing and imports.
//
// The collector tracks objects and attributes parsed (objects by RPSL
// class), malformed lines and projection failures by error type, parse
// duration, and import batches. The mirror service exposes everything on a
// /metrics endpoint; one-shot CLI commands register against a private
// registry and simply discard it on exit.
//
// Cardinality note: the class label is bounded by the RPSL class set of the
// source registry (a few dozen values), so per-class counters are safe.
package metrics
