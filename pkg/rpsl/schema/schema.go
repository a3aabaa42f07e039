package schema

import "fmt"

// Cardinality says how many values a column accepts per object.
type Cardinality string

const (
	// Single expects 0 or 1 occurrence per object.
	Single Cardinality = "single"
	// Multi expects 0..N occurrences, order-preserving.
	Multi Cardinality = "multi"
)

// ParseCardinality parses a cardinality string as used in YAML schema files.
func ParseCardinality(s string) (Cardinality, error) {
	switch s {
	case "single", "Single", "SINGLE":
		return Single, nil
	case "multi", "Multi", "MULTI":
		return Multi, nil
	default:
		return "", fmt.Errorf("unknown cardinality %q (want %q or %q)", s, Single, Multi)
	}
}

// Column is one declared schema column.
type Column struct {
	Name        string
	Cardinality Cardinality
}

// Schema is an ordered mapping of column name to cardinality. It is
// immutable during a read operation; build it up front, then share it
// read-only across projections.
type Schema struct {
	columns []Column
	index   map[string]int
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{index: make(map[string]int)}
}

// Single appends a single-valued column. Redeclaring an existing column
// updates its cardinality in place.
func (s *Schema) Single(name string) *Schema {
	return s.add(name, Single)
}

// Multi appends a multi-valued column. Redeclaring an existing column
// updates its cardinality in place.
func (s *Schema) Multi(name string) *Schema {
	return s.add(name, Multi)
}

func (s *Schema) add(name string, c Cardinality) *Schema {
	if i, ok := s.index[name]; ok {
		s.columns[i].Cardinality = c
		return s
	}
	s.index[name] = len(s.columns)
	s.columns = append(s.columns, Column{Name: name, Cardinality: c})
	return s
}

// Columns returns the declared columns in order.
func (s *Schema) Columns() []Column {
	return s.columns
}

// Len returns the number of declared columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Cardinality looks up a column by name. The second return value reports
// whether the column is declared.
func (s *Schema) Cardinality(name string) (Cardinality, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.columns[i].Cardinality, true
}

// Names returns the column names in declared order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}
