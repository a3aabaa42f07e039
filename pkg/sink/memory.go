package sink

import (
	"context"

	"mercator-hq/callisto/pkg/rpsl"
	"mercator-hq/callisto/pkg/rpsl/schema"
)

// MemorySink collects objects and records in memory. It implements both
// ObjectSink and RecordSink and exists for tests and small inputs; it
// buffers everything, so do not point a registry dump at it.
type MemorySink struct {
	Objects []*rpsl.Object
	Records []*schema.Record
	closed  bool
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteObject appends the object.
func (s *MemorySink) WriteObject(_ context.Context, obj *rpsl.Object) error {
	s.Objects = append(s.Objects, obj)
	return nil
}

// WriteRecord appends the record.
func (s *MemorySink) WriteRecord(_ context.Context, rec *schema.Record) error {
	s.Records = append(s.Records, rec)
	return nil
}

// Close marks the sink closed.
func (s *MemorySink) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *MemorySink) Closed() bool {
	return s.closed
}
