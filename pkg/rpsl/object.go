package rpsl

import (
	"fmt"
	"io"
	"strings"
)

// Attribute is a single name/value pair within an RPSL object.
// Values are whitespace-trimmed with continuation lines already joined.
// Attributes are not modified after the parser builds them.
type Attribute struct {
	Name  string
	Value string
}

// Object is one RPSL record: an ordered sequence of attributes as they
// appeared in the source, duplicates preserved.
type Object struct {
	Attributes []Attribute
}

// Class returns the name of the class attribute (the first attribute),
// or "" for an empty object.
func (o *Object) Class() string {
	if len(o.Attributes) == 0 {
		return ""
	}
	return o.Attributes[0].Name
}

// Key returns the value of the class attribute (the object's primary key),
// or "" for an empty object.
func (o *Object) Key() string {
	if len(o.Attributes) == 0 {
		return ""
	}
	return o.Attributes[0].Value
}

// Len returns the number of attributes.
func (o *Object) Len() int {
	return len(o.Attributes)
}

// Get returns all values for the given attribute name in source order.
func (o *Object) Get(name string) []string {
	var values []string
	for _, a := range o.Attributes {
		if a.Name == name {
			values = append(values, a.Value)
		}
	}
	return values
}

// First returns the first value for the given attribute name.
// The second return value reports whether the attribute is present.
func (o *Object) First(name string) (string, bool) {
	for _, a := range o.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// WriteTo re-serializes the object as "name: value" lines followed by a
// blank separator line. Parsing the output yields an equivalent object
// (whitespace normalization aside).
func (o *Object) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, a := range o.Attributes {
		n, err := fmt.Fprintf(w, "%s: %s\n", a.Name, a.Value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	n, err := io.WriteString(w, "\n")
	total += int64(n)
	return total, err
}

// String returns the serialized form of the object.
func (o *Object) String() string {
	var sb strings.Builder
	o.WriteTo(&sb) //nolint:errcheck // strings.Builder does not fail
	return sb.String()
}
