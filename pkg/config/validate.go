package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for inconsistencies. It is called after
// defaults and after environment overrides.
func Validate(cfg *Config) error {
	switch cfg.Parse.Mode {
	case ModeStrict, ModeLenient:
	default:
		return fmt.Errorf("parse.mode: unknown mode %q (want %q or %q)",
			cfg.Parse.Mode, ModeStrict, ModeLenient)
	}
	if cfg.Parse.MaxLineBytes <= 0 {
		return fmt.Errorf("parse.max_line_bytes: must be positive, got %d", cfg.Parse.MaxLineBytes)
	}

	switch cfg.Sink.Backend {
	case BackendSQLite, BackendJSONL, BackendCSV, BackendStdout:
	default:
		return fmt.Errorf("sink.backend: unknown backend %q", cfg.Sink.Backend)
	}
	if cfg.Sink.Backend == BackendCSV && cfg.Schema.Path == "" {
		return fmt.Errorf("sink.backend: csv output requires a schema")
	}
	switch cfg.Sink.SQLite.Driver {
	case "cgo", "pure":
	default:
		return fmt.Errorf("sink.sqlite.driver: unknown driver %q (want cgo or pure)",
			cfg.Sink.SQLite.Driver)
	}

	if cfg.Mirror.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Mirror.Schedule); err != nil {
			return fmt.Errorf("mirror.schedule: invalid cron expression %q: %w",
				cfg.Mirror.Schedule, err)
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level: unknown level %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format: unknown format %q", cfg.Telemetry.Logging.Format)
	}

	if r := cfg.Telemetry.Tracing.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("telemetry.tracing.sample_ratio: must be in [0, 1], got %g", r)
	}

	return nil
}
