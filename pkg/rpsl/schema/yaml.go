package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a schema declaration from a YAML file:
//
//	columns:
//	  route: single
//	  origin: single
//	  mnt-by: multi
//
// Column order in the file is the column order of projected records.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %q: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file %q: %w", path, err)
	}
	return s, nil
}

// Parse parses a YAML schema declaration from a byte slice.
//
// The columns mapping is decoded through yaml.Node rather than a Go map so
// the declared order survives.
func Parse(data []byte) (*Schema, error) {
	var doc struct {
		Columns yaml.Node `yaml:"columns"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if doc.Columns.Kind == 0 {
		return nil, fmt.Errorf("missing %q mapping", "columns")
	}
	if doc.Columns.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%q must be a mapping of column name to cardinality", "columns")
	}

	s := New()
	content := doc.Columns.Content
	for i := 0; i+1 < len(content); i += 2 {
		key, val := content[i], content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: column entries must be scalar name: cardinality pairs", key.Line)
		}
		if _, ok := s.index[key.Value]; ok {
			return nil, fmt.Errorf("line %d: duplicate column %q", key.Line, key.Value)
		}
		c, err := ParseCardinality(val.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: column %q: %w", val.Line, key.Value, err)
		}
		s.add(key.Value, c)
	}

	if s.Len() == 0 {
		return nil, fmt.Errorf("schema declares no columns")
	}
	return s, nil
}
