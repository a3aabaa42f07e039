package schema

// Record is one projected row: one value slot per schema column.
//
// Single columns distinguish "absent" (the attribute never appeared) from
// "present with empty text" via the pointer; Multi columns are always
// non-nil slices, empty when the attribute never appeared. A Record holds
// no reference back to its source object.
type Record struct {
	schema  *Schema
	singles map[string]*string
	multis  map[string][]string
}

func newRecord(s *Schema) *Record {
	r := &Record{
		schema:  s,
		singles: make(map[string]*string),
		multis:  make(map[string][]string),
	}
	for _, col := range s.columns {
		if col.Cardinality == Multi {
			r.multis[col.Name] = []string{}
		}
	}
	return r
}

// Schema returns the schema this record was projected with. Column order in
// the record follows the schema's declared order.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Single returns the value of a single-valued column. ok is false when the
// column is absent in this record, undeclared, or multi-valued.
func (r *Record) Single(name string) (value string, ok bool) {
	v, present := r.singles[name]
	if !present || v == nil {
		return "", false
	}
	return *v, true
}

// Multi returns the values of a multi-valued column in encounter order.
// It returns nil for undeclared or single-valued columns and an empty slice
// for a declared column with no occurrences.
func (r *Record) Multi(name string) []string {
	return r.multis[name]
}

// Value returns the column value as either *string (Single) or []string
// (Multi). An absent Single column yields untyped nil, so a plain
// `v == nil` check works on the result. ok is false for undeclared columns.
func (r *Record) Value(name string) (value any, ok bool) {
	c, declared := r.schema.Cardinality(name)
	if !declared {
		return nil, false
	}
	if c == Single {
		if v := r.singles[name]; v != nil {
			return v, true
		}
		return nil, true
	}
	return r.multis[name], true
}
