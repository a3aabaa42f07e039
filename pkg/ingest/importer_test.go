package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/rpsl/schema"
	"mercator-hq/callisto/pkg/sink"
)

const sampleDump = `% AS block assignments

aut-num:    AS64500
as-name:    EXAMPLE-AS
descr:      Example
            network
mnt-by:     MAINT-A
mnt-by:     MAINT-B

route:      192.0.2.0/24
origin:     AS64500
`

func writeTempDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dump: %v", err)
	}
	return path
}

func TestImporter_SchemaLess(t *testing.T) {
	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{Objects: mem})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	result, err := imp.ImportFile(context.Background(), writeTempDump(t, sampleDump))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	if result.Objects != 2 {
		t.Errorf("objects = %d, want 2", result.Objects)
	}
	if len(mem.Objects) != 2 {
		t.Fatalf("sink received %d objects, want 2", len(mem.Objects))
	}
	if mem.Objects[0].Class() != "aut-num" {
		t.Errorf("first class = %q, want aut-num", mem.Objects[0].Class())
	}
	if got := mem.Objects[0].Get("descr"); len(got) != 1 || got[0] != "Example network" {
		t.Errorf("continuation not joined: %v", got)
	}
	if result.BatchID == "" {
		t.Error("batch ID not set")
	}
}

func TestImporter_GzipFixture(t *testing.T) {
	for _, path := range []string{
		"testdata/registry.db.txt",
		"testdata/registry.db.gz",
	} {
		mem := sink.NewMemorySink()
		imp, err := NewImporter(Options{Objects: mem})
		if err != nil {
			t.Fatalf("NewImporter: %v", err)
		}

		result, err := imp.ImportFile(context.Background(), path)
		if err != nil {
			t.Fatalf("%s: ImportFile: %v", path, err)
		}
		if result.Objects != 4 {
			t.Errorf("%s: objects = %d, want 4", path, result.Objects)
		}

		person := mem.Objects[1]
		if person.Class() != "person" {
			t.Fatalf("%s: second class = %q, want person", path, person.Class())
		}
		if got, _ := person.First("address"); got != "Example Street 1 1234 AB Amsterdam Netherlands" {
			t.Errorf("%s: plus continuations not joined: %q", path, got)
		}
		// descr present with empty value on the last route.
		if got, ok := mem.Objects[3].First("descr"); !ok || got != "" {
			t.Errorf("%s: empty descr = %q, %v", path, got, ok)
		}
	}
}

func TestImporter_SchemaMode(t *testing.T) {
	sch := schema.New().Single("aut-num").Single("as-name").Multi("mnt-by")
	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{Schema: sch, Records: mem})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	result, err := imp.ImportFile(context.Background(), writeTempDump(t, sampleDump))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	if result.Records != 2 {
		t.Errorf("records = %d, want 2", result.Records)
	}
	if len(mem.Records) != 2 {
		t.Fatalf("sink received %d records, want 2", len(mem.Records))
	}

	if v, ok := mem.Records[0].Single("as-name"); !ok || v != "EXAMPLE-AS" {
		t.Errorf("as-name = %q, %v", v, ok)
	}
	if got := mem.Records[0].Multi("mnt-by"); len(got) != 2 {
		t.Errorf("mnt-by = %v, want 2 values", got)
	}
	// The route object declares none of the single columns.
	if _, ok := mem.Records[1].Single("aut-num"); ok {
		t.Error("aut-num should be absent on the route record")
	}
}

func TestImporter_SchemaErrorSkipsObject(t *testing.T) {
	dump := "person: A\nnic-hdl: X1\nnic-hdl: X2\n\nperson: B\nnic-hdl: Y1\n"
	sch := schema.New().Single("person").Single("nic-hdl")

	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{Schema: sch, Records: mem})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	result, err := imp.ImportFile(context.Background(), writeTempDump(t, dump))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	if result.SchemaErrors != 1 {
		t.Errorf("schema errors = %d, want 1", result.SchemaErrors)
	}
	if result.Records != 1 {
		t.Errorf("records = %d, want 1", result.Records)
	}
	if v, _ := mem.Records[0].Single("person"); v != "B" {
		t.Errorf("surviving record person = %q, want B", v)
	}
}

func TestImporter_StrictFailsOnMalformed(t *testing.T) {
	dump := "aut-num: AS1\nno colon here\n"
	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{Objects: mem})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	_, err = imp.ImportFile(context.Background(), writeTempDump(t, dump))
	if err == nil {
		t.Fatal("expected error for malformed line in strict mode")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should locate the line: %v", err)
	}
}

func TestImporter_LenientSkipsMalformed(t *testing.T) {
	dump := "aut-num: AS1\nno colon here\nas-name: A\n"
	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{Objects: mem, Lenient: true})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	result, err := imp.ImportFile(context.Background(), writeTempDump(t, dump))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.SkippedLines != 1 {
		t.Errorf("skipped lines = %d, want 1", result.SkippedLines)
	}
	if result.Objects != 1 {
		t.Errorf("objects = %d, want 1", result.Objects)
	}
}

func TestImporter_ReportsProgress(t *testing.T) {
	var buf bytes.Buffer
	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{
		Objects:  mem,
		Progress: cli.NewProgressReporter(&buf),
	})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	if _, err := imp.ImportFile(context.Background(), writeTempDump(t, sampleDump)); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if !strings.Contains(buf.String(), "Processed 2 objects") {
		t.Errorf("final count missing from progress output: %q", buf.String())
	}
}

func TestImporter_ProgressReportsFailure(t *testing.T) {
	var buf bytes.Buffer
	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{
		Objects:  mem,
		Progress: cli.NewProgressReporter(&buf),
	})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	if _, err := imp.ImportFile(context.Background(), writeTempDump(t, "no colon\n")); err == nil {
		t.Fatal("expected error for malformed input")
	}
	if !strings.Contains(buf.String(), "Error") {
		t.Errorf("failure missing from progress output: %q", buf.String())
	}
}

func TestImporter_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mem := sink.NewMemorySink()
	imp, err := NewImporter(Options{Objects: mem})
	if err != nil {
		t.Fatalf("NewImporter: %v", err)
	}

	if _, err := imp.ImportFile(ctx, writeTempDump(t, sampleDump)); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewImporter_Validation(t *testing.T) {
	if _, err := NewImporter(Options{}); err == nil {
		t.Error("expected error without any sink")
	}
	if _, err := NewImporter(Options{Schema: schema.New().Single("a")}); err == nil {
		t.Error("expected error for schema mode without record sink")
	}
}
