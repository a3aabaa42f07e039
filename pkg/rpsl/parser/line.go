package parser

import "strings"

// LineClass identifies how a raw input line participates in an object.
type LineClass int

const (
	// LineComment is a line whose first non-whitespace character is '%' or
	// '#'. Carries nothing forward and closes nothing.
	LineComment LineClass = iota
	// LineBlank is an empty or whitespace-only line: the object separator.
	LineBlank
	// LineContinuation extends the value of the most recently opened
	// attribute. Marked by a leading space, tab, or '+'.
	LineContinuation
	// LineAttribute opens a new attribute: "name: value".
	LineAttribute
	// LineEndOfSource is the literal "EOF" terminator found at the end of
	// APNIC dump files.
	LineEndOfSource
	// LineMalformed is anything else; the read policy decides whether it
	// aborts the stream or is skipped.
	LineMalformed
)

// String returns the class name, for diagnostics.
func (c LineClass) String() string {
	switch c {
	case LineComment:
		return "comment"
	case LineBlank:
		return "blank"
	case LineContinuation:
		return "continuation"
	case LineAttribute:
		return "attribute"
	case LineEndOfSource:
		return "end-of-source"
	case LineMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Line is one classified input line.
type Line struct {
	Class LineClass

	// Name and Value are set for LineAttribute. Name is the text before the
	// first colon, trimmed; Value is the remainder, trimmed.
	Name  string
	Value string

	// Text is the trimmed continuation text for LineContinuation, or a
	// short diagnostic message for LineMalformed.
	Text string
}

// classify classifies one line of input with its terminator already
// stripped. attrOpen reports whether the current object has an attribute
// open to receive continuation lines.
//
// Precedence follows the format rules: comment, blank, continuation,
// attribute; anything left is malformed.
func classify(raw string, attrOpen bool) Line {
	trimmed := strings.TrimSpace(raw)

	if len(trimmed) > 0 && (trimmed[0] == '%' || trimmed[0] == '#') {
		return Line{Class: LineComment}
	}

	if trimmed == "" {
		return Line{Class: LineBlank}
	}

	if isContinuationMarker(raw[0]) {
		if !attrOpen {
			return Line{Class: LineMalformed, Text: "continuation line with no open attribute"}
		}
		text := trimmed
		if text[0] == '+' {
			// The '+' marker itself is not part of the value.
			text = strings.TrimSpace(text[1:])
		}
		return Line{Class: LineContinuation, Text: text}
	}

	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		if trimmed == "EOF" {
			return Line{Class: LineEndOfSource}
		}
		return Line{Class: LineMalformed, Text: "expected an attribute"}
	}

	name := strings.TrimSpace(raw[:colon])
	if name == "" {
		return Line{Class: LineMalformed, Text: "empty attribute name"}
	}

	return Line{
		Class: LineAttribute,
		Name:  name,
		Value: strings.TrimSpace(raw[colon+1:]),
	}
}

// isContinuationMarker reports whether ch in column one marks a
// continuation line.
func isContinuationMarker(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '+'
}
