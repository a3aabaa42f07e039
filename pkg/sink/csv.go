package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"mercator-hq/callisto/pkg/rpsl/schema"
)

// CSVRecordSink writes projected records as CSV with one header row of
// schema column names. Multi columns encode as JSON arrays inside the cell,
// since CSV has no native list type. Absent and empty Single values both
// render as an empty cell; use the JSONL or SQLite sinks when that
// distinction matters downstream.
type CSVRecordSink struct {
	w      *csv.Writer
	schema *schema.Schema
}

// NewCSVRecordSink creates a CSV sink over w and writes the header row.
// The caller owns w; Close flushes but does not close it.
func NewCSVRecordSink(w io.Writer, sch *schema.Schema) (*CSVRecordSink, error) {
	if sch == nil || sch.Len() == 0 {
		return nil, fmt.Errorf("csv sink requires a non-empty schema")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(sch.Names()); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	return &CSVRecordSink{w: cw, schema: sch}, nil
}

// WriteRecord writes one record as a CSV row in schema column order.
func (s *CSVRecordSink) WriteRecord(_ context.Context, rec *schema.Record) error {
	row := make([]string, 0, s.schema.Len())
	for _, col := range s.schema.Columns() {
		switch col.Cardinality {
		case schema.Single:
			v, _ := rec.Single(col.Name)
			row = append(row, v)
		case schema.Multi:
			encoded, err := json.Marshal(rec.Multi(col.Name))
			if err != nil {
				return fmt.Errorf("failed to encode column %q: %w", col.Name, err)
			}
			row = append(row, string(encoded))
		}
	}
	return s.w.Write(row)
}

// Close flushes buffered rows.
func (s *CSVRecordSink) Close() error {
	s.w.Flush()
	return s.w.Error()
}
