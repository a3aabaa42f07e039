package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parse.Mode != ModeStrict {
		t.Errorf("Parse.Mode = %q, want strict by default", cfg.Parse.Mode)
	}
	if cfg.Parse.MaxLineBytes != 1<<20 {
		t.Errorf("Parse.MaxLineBytes = %d, want 1MB", cfg.Parse.MaxLineBytes)
	}
	if cfg.Sink.Backend != BackendStdout {
		t.Errorf("Sink.Backend = %q, want stdout", cfg.Sink.Backend)
	}
	if cfg.Sink.SQLite.Driver != "pure" {
		t.Errorf("Sink.SQLite.Driver = %q, want pure", cfg.Sink.SQLite.Driver)
	}
	if cfg.Mirror.Debounce != 2*time.Second {
		t.Errorf("Mirror.Debounce = %v, want 2s", cfg.Mirror.Debounce)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(Default()) failed: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
source:
  path: /data/ripe.db.gz
parse:
  mode: lenient
sink:
  backend: sqlite
  table: routes
  sqlite:
    path: /tmp/reg.db
    driver: cgo
mirror:
  schedule: "0 4 * * *"
  watch: true
telemetry:
  logging:
    level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Source.Path != "/data/ripe.db.gz" {
		t.Errorf("Source.Path = %q", cfg.Source.Path)
	}
	if cfg.Parse.Mode != ModeLenient {
		t.Errorf("Parse.Mode = %q, want lenient", cfg.Parse.Mode)
	}
	if cfg.Sink.SQLite.Driver != "cgo" {
		t.Errorf("Sink.SQLite.Driver = %q, want cgo", cfg.Sink.SQLite.Driver)
	}
	if !cfg.Mirror.Watch {
		t.Error("Mirror.Watch should be true")
	}
	// Defaults still fill unset fields.
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("Telemetry.Logging.Format = %q, want json default", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad mode", "parse:\n  mode: relaxed\n", "parse.mode"},
		{"bad backend", "sink:\n  backend: parquet\n", "sink.backend"},
		{"bad driver", "sink:\n  sqlite:\n    driver: turbo\n", "sink.sqlite.driver"},
		{"bad schedule", "mirror:\n  schedule: never\n", "mirror.schedule"},
		{"bad level", "telemetry:\n  logging:\n    level: loud\n", "logging.level"},
		{"csv without schema", "sink:\n  backend: csv\n", "requires a schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() on a missing file should fail")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "source:\n  path: /from/file\nparse:\n  mode: strict\n")

	t.Setenv("CALLISTO_SOURCE_PATH", "/from/env")
	t.Setenv("CALLISTO_PARSE_MODE", "lenient")
	t.Setenv("CALLISTO_MIRROR_DEBOUNCE", "10s")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() failed: %v", err)
	}
	if cfg.Source.Path != "/from/env" {
		t.Errorf("Source.Path = %q, env should win over file", cfg.Source.Path)
	}
	if cfg.Parse.Mode != ModeLenient {
		t.Errorf("Parse.Mode = %q, want lenient from env", cfg.Parse.Mode)
	}
	if cfg.Mirror.Debounce != 10*time.Second {
		t.Errorf("Mirror.Debounce = %v, want 10s from env", cfg.Mirror.Debounce)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidEnv(t *testing.T) {
	path := writeConfig(t, "parse:\n  mode: strict\n")
	t.Setenv("CALLISTO_PARSE_MODE", "relaxed")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Error("invalid env override should fail validation")
	}
}
