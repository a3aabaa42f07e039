// Package rpslerr provides positional error types for RPSL parsing and
// schema projection.
//
// Errors carry a type tag (syntax, schema, io), the input position where
// the problem was seen (line number, object ordinal), and enough object
// context (class attribute value) to locate the record in a registry dump.
//
// ErrorList accumulates recoverable errors so a lenient read can report
// every skipped line instead of failing on the first.
package rpslerr
