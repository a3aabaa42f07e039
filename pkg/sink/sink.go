package sink

import (
	"context"

	"mercator-hq/callisto/pkg/rpsl"
	"mercator-hq/callisto/pkg/rpsl/schema"
)

// ObjectSink receives raw objects from a schema-less read.
type ObjectSink interface {
	// WriteObject materializes one object.
	WriteObject(ctx context.Context, obj *rpsl.Object) error

	// Close flushes and releases the sink. No writes may follow.
	Close() error
}

// RecordSink receives typed records from a schema read.
type RecordSink interface {
	// WriteRecord materializes one projected record.
	WriteRecord(ctx context.Context, rec *schema.Record) error

	// Close flushes and releases the sink. No writes may follow.
	Close() error
}
