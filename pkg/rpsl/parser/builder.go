package parser

import (
	"strings"

	"mercator-hq/callisto/pkg/rpsl"
)

// builder assembles classified lines into objects. It holds at most one
// in-progress object and, within it, one in-progress attribute whose value
// may still grow through continuation lines.
type builder struct {
	attrs    []rpsl.Attribute
	curName  string
	curValue strings.Builder
	open     bool
}

// attribute finalizes any open attribute and opens a new one.
func (b *builder) attribute(name, value string) {
	b.closeAttr()
	b.curName = name
	b.curValue.Reset()
	b.curValue.WriteString(value)
	b.open = true
}

// continuation appends trimmed continuation text to the open attribute,
// joined by a single space. Empty continuation text adds nothing, so values
// stay free of trailing whitespace.
func (b *builder) continuation(text string) {
	if !b.open || text == "" {
		return
	}
	if b.curValue.Len() > 0 {
		b.curValue.WriteByte(' ')
	}
	b.curValue.WriteString(text)
}

// attrOpen reports whether an attribute is open to receive continuations.
func (b *builder) attrOpen() bool {
	return b.open
}

// class returns the class-attribute value of the in-progress object, if any.
// Used for error context on malformed lines inside an object.
func (b *builder) class() string {
	if len(b.attrs) == 0 {
		if b.open {
			return b.curValue.String()
		}
		return ""
	}
	return b.attrs[0].Value
}

// closeAttr pushes the open attribute, if any, onto the object.
func (b *builder) closeAttr() {
	if !b.open {
		return
	}
	b.attrs = append(b.attrs, rpsl.Attribute{
		Name:  b.curName,
		Value: b.curValue.String(),
	})
	b.open = false
}

// flush finalizes the in-progress object, as on a blank line or end of
// input. It returns nil when nothing accumulated (consecutive blank lines
// produce no object).
func (b *builder) flush() *rpsl.Object {
	b.closeAttr()
	if len(b.attrs) == 0 {
		return nil
	}
	obj := &rpsl.Object{Attributes: b.attrs}
	b.attrs = nil
	return obj
}
