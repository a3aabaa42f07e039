package schema

import (
	"io"

	"mercator-hq/callisto/pkg/rpsl"
	"mercator-hq/callisto/pkg/rpsl/rpslerr"
)

// Project flattens one object into a typed record.
//
// Attributes not declared in the schema are dropped (success, not error).
// A second occurrence of a declared single-valued attribute fails the whole
// projection for this object with a schema error naming the column and the
// object's class-attribute value. Projection is deterministic: the same
// object and schema always yield the same record.
//
// The object ordinal reported in errors is 0 here; ProjectingReader fills
// in stream positions.
func Project(obj *rpsl.Object, s *Schema) (*Record, error) {
	return project(obj, s, 0)
}

func project(obj *rpsl.Object, s *Schema, ordinal int) (*Record, error) {
	rec := newRecord(s)

	for _, attr := range obj.Attributes {
		c, declared := s.Cardinality(attr.Name)
		if !declared {
			continue
		}
		switch c {
		case Multi:
			rec.multis[attr.Name] = append(rec.multis[attr.Name], attr.Value)
		case Single:
			if _, seen := rec.singles[attr.Name]; seen {
				return nil, rpslerr.NewDuplicateSingleError(attr.Name, obj.Key(), ordinal)
			}
			v := attr.Value
			rec.singles[attr.Name] = &v
		}
	}

	return rec, nil
}

// ObjectReader is the stream of objects a ProjectingReader consumes.
// *parser.Reader satisfies it.
type ObjectReader interface {
	Next() (*rpsl.Object, error)
}

// ProjectingReader projects a stream of objects through one schema.
//
// Duplicate-single errors are per-object: Next returns the error for the
// offending object and the stream continues, so a caller can skip bad
// records without losing the rest of the read. Parser and source errors
// pass through with their original fatality.
type ProjectingReader struct {
	src     ObjectReader
	schema  *Schema
	ordinal int
}

// NewReader creates a ProjectingReader over src using the given schema.
// The schema is borrowed read-only and must not change during the read.
func NewReader(src ObjectReader, s *Schema) *ProjectingReader {
	return &ProjectingReader{src: src, schema: s}
}

// Next returns the next projected record, io.EOF at end of input, a
// per-object *rpslerr.Error (schema) for projection failures, or the
// underlying reader's error.
func (p *ProjectingReader) Next() (*Record, error) {
	obj, err := p.src.Next()
	if err != nil {
		return nil, err
	}
	p.ordinal++
	return project(obj, p.schema, p.ordinal)
}

// ReadAll drains the stream. Per-object projection errors are collected
// into the returned list; a fatal parser or source error stops the read and
// is returned alongside whatever was projected before it.
func (p *ProjectingReader) ReadAll() ([]*Record, *rpslerr.ErrorList, error) {
	var records []*Record
	errs := rpslerr.NewErrorList()
	for {
		rec, err := p.Next()
		if err == io.EOF {
			return records, errs, nil
		}
		if err != nil {
			if perr, ok := err.(*rpslerr.Error); ok && perr.Type == rpslerr.ErrorTypeSchema {
				errs.Add(perr)
				continue
			}
			return records, errs, err
		}
		records = append(records, rec)
	}
}
