package rpslerr

import (
	"fmt"
	"strings"
)

// ErrorType categorizes the kind of error encountered during a read.
type ErrorType string

const (
	// ErrorTypeSyntax is a malformed input line.
	ErrorTypeSyntax ErrorType = "syntax"
	// ErrorTypeSchema is a schema projection failure, e.g. a duplicate
	// value for a single-valued column. Scoped to one object.
	ErrorTypeSchema ErrorType = "schema"
	// ErrorTypeIO is a failure of the underlying byte source. Always fatal:
	// a truncated object cannot be safely completed.
	ErrorTypeIO ErrorType = "io"
)

// Position locates an error in the input stream.
type Position struct {
	// Line is the 1-based input line number, 0 if unknown (e.g. projection
	// errors, which are positioned by object instead).
	Line int

	// Object is the 1-based ordinal of the enclosing object, 0 if the error
	// occurred outside any object.
	Object int
}

// IsValid reports whether the position carries any location information.
func (p Position) IsValid() bool {
	return p.Line > 0 || p.Object > 0
}

// String formats the position as "line N" / "object M" / "line N (object M)".
func (p Position) String() string {
	switch {
	case p.Line > 0 && p.Object > 0:
		return fmt.Sprintf("line %d (object %d)", p.Line, p.Object)
	case p.Line > 0:
		return fmt.Sprintf("line %d", p.Line)
	case p.Object > 0:
		return fmt.Sprintf("object %d", p.Object)
	default:
		return "unknown position"
	}
}

// Error is a rich error with position and object context.
type Error struct {
	Type     ErrorType // Category of error
	Message  string    // Error message
	Pos      Position  // Input position
	ObjectID string    // Class-attribute value of the enclosing object, if known
	Attr     string    // Attribute or column name involved, if any
	LineText string    // Offending raw line, if any
	Err      error     // Wrapped cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] %s", e.Type, e.Message)
	if e.Attr != "" {
		fmt.Fprintf(&sb, " (attribute %q)", e.Attr)
	}
	if e.Pos.IsValid() {
		fmt.Fprintf(&sb, " at %s", e.Pos)
	}
	if e.ObjectID != "" {
		fmt.Fprintf(&sb, " in object %q", e.ObjectID)
	}
	if e.LineText != "" {
		fmt.Fprintf(&sb, ": %q", e.LineText)
	}
	return sb.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewSyntaxError creates a malformed-line error.
func NewSyntaxError(message string, pos Position, lineText string) *Error {
	return &Error{
		Type:     ErrorTypeSyntax,
		Message:  message,
		Pos:      pos,
		LineText: lineText,
	}
}

// NewDuplicateSingleError creates a duplicate single-valued attribute error
// for one object. It identifies the column and the object's primary key.
func NewDuplicateSingleError(attr, objectID string, object int) *Error {
	return &Error{
		Type:     ErrorTypeSchema,
		Message:  "duplicate value for single-valued attribute",
		Pos:      Position{Object: object},
		ObjectID: objectID,
		Attr:     attr,
	}
}

// NewIOError wraps a failure of the underlying byte source.
func NewIOError(err error, pos Position) *Error {
	return &Error{
		Type:    ErrorTypeIO,
		Message: fmt.Sprintf("source read failed: %v", err),
		Pos:     pos,
		Err:     err,
	}
}

// ErrorList accumulates recoverable errors from a lenient read.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// Error implements the error interface, formatting all errors.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "found %d error(s):\n", el.Count())
	for _, err := range el.Errors {
		sb.WriteString("  ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}
