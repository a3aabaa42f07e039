package sink

import (
	"context"
	"encoding/json"
	"io"

	"mercator-hq/callisto/pkg/rpsl"
	"mercator-hq/callisto/pkg/rpsl/schema"
)

// JSONLObjectSink writes one JSON document per object:
//
//	{"class":"route","key":"192.0.2.0/24","attributes":[{"name":"route","value":"192.0.2.0/24"},...]}
type JSONLObjectSink struct {
	enc *json.Encoder
}

// NewJSONLObjectSink creates a schema-less JSON Lines sink over w.
// The caller owns w; Close does not close it.
func NewJSONLObjectSink(w io.Writer) *JSONLObjectSink {
	return &JSONLObjectSink{enc: json.NewEncoder(w)}
}

type jsonAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type jsonObject struct {
	Class      string          `json:"class"`
	Key        string          `json:"key"`
	Attributes []jsonAttribute `json:"attributes"`
}

// WriteObject encodes one object as a JSON line.
func (s *JSONLObjectSink) WriteObject(_ context.Context, obj *rpsl.Object) error {
	doc := jsonObject{
		Class:      obj.Class(),
		Key:        obj.Key(),
		Attributes: make([]jsonAttribute, len(obj.Attributes)),
	}
	for i, a := range obj.Attributes {
		doc.Attributes[i] = jsonAttribute{Name: a.Name, Value: a.Value}
	}
	return s.enc.Encode(doc)
}

// Close is a no-op; the underlying writer belongs to the caller.
func (s *JSONLObjectSink) Close() error {
	return nil
}

// JSONLRecordSink writes one JSON document per projected record. Single
// columns encode as string or null (absent), Multi columns as arrays.
type JSONLRecordSink struct {
	enc *json.Encoder
}

// NewJSONLRecordSink creates a schema-mode JSON Lines sink over w.
// The caller owns w; Close does not close it.
func NewJSONLRecordSink(w io.Writer) *JSONLRecordSink {
	return &JSONLRecordSink{enc: json.NewEncoder(w)}
}

// WriteRecord encodes one record as a JSON line.
func (s *JSONLRecordSink) WriteRecord(_ context.Context, rec *schema.Record) error {
	doc := make(map[string]any, rec.Schema().Len())
	for _, col := range rec.Schema().Columns() {
		switch col.Cardinality {
		case schema.Single:
			if v, ok := rec.Single(col.Name); ok {
				doc[col.Name] = v
			} else {
				doc[col.Name] = nil
			}
		case schema.Multi:
			doc[col.Name] = rec.Multi(col.Name)
		}
	}
	return s.enc.Encode(doc)
}

// Close is a no-op; the underlying writer belongs to the caller.
func (s *JSONLRecordSink) Close() error {
	return nil
}
