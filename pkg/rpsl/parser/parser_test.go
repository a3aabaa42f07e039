package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/rpsl"
	"mercator-hq/callisto/pkg/rpsl/rpslerr"
)

func readAll(t *testing.T, input string) []*rpsl.Object {
	t.Helper()
	objects, err := NewReader(strings.NewReader(input)).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	return objects
}

func TestReader_TwoObjects(t *testing.T) {
	input := "route: 192.0.2.0/24\norigin: AS65000\n\nroute: 198.51.100.0/24\norigin: AS65001\n"
	objects := readAll(t, input)

	if len(objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(objects))
	}
	for i, obj := range objects {
		if obj.Len() != 2 {
			t.Errorf("object %d has %d attributes, want 2", i, obj.Len())
		}
		if obj.Class() != "route" {
			t.Errorf("object %d class = %q, want %q", i, obj.Class(), "route")
		}
	}
	if objects[0].Key() != "192.0.2.0/24" {
		t.Errorf("object 0 key = %q, want %q", objects[0].Key(), "192.0.2.0/24")
	}
	if objects[1].Attributes[1].Value != "AS65001" {
		t.Errorf("object 1 origin = %q, want %q", objects[1].Attributes[1].Value, "AS65001")
	}
}

func TestReader_Empty(t *testing.T) {
	if objects := readAll(t, ""); len(objects) != 0 {
		t.Errorf("got %d objects from empty input, want 0", len(objects))
	}
	if objects := readAll(t, "\n\n\n"); len(objects) != 0 {
		t.Errorf("got %d objects from blank input, want 0", len(objects))
	}
}

func TestReader_NoTrailingBlankLine(t *testing.T) {
	objects := readAll(t, "aut-num: AS65000\nas-name: EXAMPLE")
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}
	if objects[0].Attributes[1].Value != "EXAMPLE" {
		t.Errorf("as-name = %q, want %q", objects[0].Attributes[1].Value, "EXAMPLE")
	}
}

func TestReader_ContinuationJoining(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"space marker", "remarks: foo\n  bar\n", "foo bar"},
		{"tab marker", "remarks: foo\n\tbar\n", "foo bar"},
		{"plus marker", "remarks: foo\n+ bar\n", "foo bar"},
		{"multiple continuations", "remarks: a\n  b\n  c\n", "a b c"},
		{"empty first line", "remarks:\n  starts on second line\n", "starts on second line"},
		{"bare plus adds nothing", "remarks: foo\n+\n+ bar\n", "foo bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := readAll(t, tt.input)
			if len(objects) != 1 {
				t.Fatalf("got %d objects, want 1", len(objects))
			}
			v, ok := objects[0].First("remarks")
			if !ok {
				t.Fatal("remarks attribute missing")
			}
			if v != tt.want {
				t.Errorf("remarks = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestReader_ContinuationThenNextAttribute(t *testing.T) {
	input := "descr: line one\n  line two\nadmin-c: EX1-RIPE\n"
	objects := readAll(t, input)
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}
	if objects[0].Len() != 2 {
		t.Fatalf("object has %d attributes, want 2", objects[0].Len())
	}
	if v, _ := objects[0].First("descr"); v != "line one line two" {
		t.Errorf("descr = %q, want %q", v, "line one line two")
	}
	if v, _ := objects[0].First("admin-c"); v != "EX1-RIPE" {
		t.Errorf("admin-c = %q, want %q", v, "EX1-RIPE")
	}
}

func TestReader_CommentsIgnoredEverywhere(t *testing.T) {
	input := "% header comment\nroute: 192.0.2.0/24\n# mid-object comment\norigin: AS65000\n% trailing\n\n# between objects\nroute: 198.51.100.0/24\norigin: AS65001\n"
	objects := readAll(t, input)

	if len(objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(objects))
	}
	for i, obj := range objects {
		if obj.Len() != 2 {
			t.Errorf("object %d has %d attributes, want 2 (comment leaked in?)", i, obj.Len())
		}
		for _, a := range obj.Attributes {
			if strings.Contains(a.Value, "comment") {
				t.Errorf("comment text leaked into attribute %q = %q", a.Name, a.Value)
			}
		}
	}
}

func TestReader_CommentDoesNotCloseObject(t *testing.T) {
	// A comment between two attributes must not split the object.
	input := "person: Test Person\n% interleaved\naddress: Example Street 1\n"
	objects := readAll(t, input)
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}
}

func TestReader_EOFMarker(t *testing.T) {
	input := "route: 192.0.2.0/24\norigin: AS65000\n\nEOF\nroute: 203.0.113.0/24\n"
	objects := readAll(t, input)

	// Everything after the EOF literal is ignored.
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}
}

func TestReader_EOFMarkerClosesOpenObject(t *testing.T) {
	objects := readAll(t, "route: 192.0.2.0/24\nEOF\n")
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}
}

func TestReader_CRLF(t *testing.T) {
	input := "route: 192.0.2.0/24\r\norigin: AS65000\r\n\r\n"
	objects := readAll(t, input)
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}
	if v, _ := objects[0].First("origin"); v != "AS65000" {
		t.Errorf("origin = %q, want %q (CR not stripped?)", v, "AS65000")
	}
}

func TestReader_StrictMalformedLine(t *testing.T) {
	input := "route: 192.0.2.0/24\nthis line has no colon\norigin: AS65000\n"
	r := NewReader(strings.NewReader(input))

	_, err := r.Next()
	if err == nil {
		t.Fatal("Next() should fail on a malformed line in strict mode")
	}

	var perr *rpslerr.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *rpslerr.Error", err)
	}
	if perr.Type != rpslerr.ErrorTypeSyntax {
		t.Errorf("error type = %q, want %q", perr.Type, rpslerr.ErrorTypeSyntax)
	}
	if perr.Pos.Line != 2 {
		t.Errorf("error line = %d, want 2", perr.Pos.Line)
	}
	if perr.Pos.Object != 1 {
		t.Errorf("error object = %d, want 1", perr.Pos.Object)
	}
	if perr.ObjectID != "192.0.2.0/24" {
		t.Errorf("error object ID = %q, want %q", perr.ObjectID, "192.0.2.0/24")
	}

	// The reader stays dead.
	if _, err := r.Next(); err == nil {
		t.Error("Next() after a strict failure should keep returning the error")
	}
}

func TestReader_LenientMalformedLine(t *testing.T) {
	input := "route: 192.0.2.0/24\nbogus line\norigin: AS65000\n\nroute: 198.51.100.0/24\norigin: AS65001\n"
	r := NewReader(strings.NewReader(input)).WithLenient(true)

	objects, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed in lenient mode: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(objects))
	}
	if objects[0].Len() != 2 {
		t.Errorf("object 0 has %d attributes, want 2 (bogus line should be skipped)", objects[0].Len())
	}

	skipped := r.Skipped()
	if skipped.Count() != 1 {
		t.Fatalf("Skipped() has %d entries, want 1", skipped.Count())
	}
	if skipped.Errors[0].Pos.Line != 2 {
		t.Errorf("skipped line = %d, want 2", skipped.Errors[0].Pos.Line)
	}
}

func TestReader_SourceFailureIsFatal(t *testing.T) {
	r := NewReader(io.MultiReader(
		strings.NewReader("route: 192.0.2.0/24\n"),
		&failingReader{},
	))

	_, err := r.Next()
	if err == nil {
		t.Fatal("Next() should surface the source failure")
	}
	var perr *rpslerr.Error
	if !errors.As(err, &perr) || perr.Type != rpslerr.ErrorTypeIO {
		t.Fatalf("error = %v, want *rpslerr.Error of type io", err)
	}
	if _, err := r.Next(); err == nil {
		t.Error("source failures must stay fatal on subsequent calls")
	}
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestReader_ObjectCountMatchesBlocks(t *testing.T) {
	// Objects = blank-delimited non-empty blocks, regardless of how many
	// blank lines separate them.
	input := "a: 1\n\n\n\nb: 2\n\nc: 3\n\n\n"
	r := NewReader(strings.NewReader(input))
	objects, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(objects) != 3 {
		t.Errorf("got %d objects, want 3", len(objects))
	}
	if r.Objects() != 3 {
		t.Errorf("Objects() = %d, want 3", r.Objects())
	}
}

func TestReader_RoundTrip(t *testing.T) {
	input := "route: 192.0.2.0/24\ndescr: multi\n  line\norigin: AS65000\n\naut-num: AS65000\nmnt-by: M1\nmnt-by: M2\n\n"
	first := readAll(t, input)

	var sb strings.Builder
	for _, obj := range first {
		if _, err := obj.WriteTo(&sb); err != nil {
			t.Fatalf("WriteTo() failed: %v", err)
		}
	}

	second := readAll(t, sb.String())
	if len(second) != len(first) {
		t.Fatalf("round trip changed object count: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("object %d changed across round trip:\n%q\n%q",
				i, first[i].String(), second[i].String())
		}
	}
}

func TestReader_AfterEOF(t *testing.T) {
	r := NewReader(strings.NewReader("route: 192.0.2.0/24\n"))
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := r.Next(); err != io.EOF {
			t.Fatalf("Next() after end = %v, want io.EOF", err)
		}
	}
}
