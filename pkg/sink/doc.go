// Package sink materializes parsed RPSL data into tabular outputs.
//
// Two shapes exist, matching the reader's two modes:
//
//   - ObjectSink receives raw objects (schema-less mode): the generic
//     attribute-list representation.
//   - RecordSink receives typed records (schema mode): fixed columns per a
//     declared schema.
//
// Implementations: SQLite (both modes, selectable cgo or pure-Go driver),
// JSON Lines (both modes), CSV (schema mode), and an in-memory sink for
// tests. Sinks consume each object or record immediately; none of them
// buffers the whole stream.
package sink
