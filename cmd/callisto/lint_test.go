package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/rpsl/schema"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dump: %v", err)
	}
	return path
}

func TestLintFile_Clean(t *testing.T) {
	path := writeDump(t, "aut-num: AS1\nas-name: A\n\nroute: 192.0.2.0/24\n")

	result, err := lintFile(path, nil)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if result.Objects != 2 {
		t.Errorf("objects = %d, want 2", result.Objects)
	}
	if len(result.Problems) != 0 {
		t.Errorf("problems = %v, want none", result.Problems)
	}
}

func TestLintFile_SyntaxProblems(t *testing.T) {
	path := writeDump(t, "aut-num: AS1\nbroken line\n: nameless\n")

	result, err := lintFile(path, nil)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if len(result.Problems) != 2 {
		t.Fatalf("problems = %d, want 2: %v", len(result.Problems), result.Problems)
	}
	if !strings.Contains(result.Problems[0], "line 2") {
		t.Errorf("problem should locate line 2: %s", result.Problems[0])
	}
}

func TestLintFile_SchemaProblems(t *testing.T) {
	path := writeDump(t, "person: A\nnic-hdl: X1\nnic-hdl: X2\n")
	sch := schema.New().Single("person").Single("nic-hdl")

	result, err := lintFile(path, sch)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if len(result.Problems) != 1 {
		t.Fatalf("problems = %d, want 1: %v", len(result.Problems), result.Problems)
	}
	if !strings.Contains(result.Problems[0], "nic-hdl") {
		t.Errorf("problem should name the column: %s", result.Problems[0])
	}
}

func TestLintFile_Missing(t *testing.T) {
	if _, err := lintFile(filepath.Join(t.TempDir(), "nope.db"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}
