package config

import "time"

// ApplyDefaults fills in default values for anything unset.
func ApplyDefaults(cfg *Config) {
	if cfg.Parse.Mode == "" {
		// Strict by default: silently dropping registry data is unsafe
		// for downstream consumers.
		cfg.Parse.Mode = ModeStrict
	}
	if cfg.Parse.MaxLineBytes <= 0 {
		cfg.Parse.MaxLineBytes = 1 << 20
	}

	if cfg.Sink.Backend == "" {
		cfg.Sink.Backend = BackendStdout
	}
	if cfg.Sink.Table == "" {
		cfg.Sink.Table = "records"
	}
	if cfg.Sink.SQLite.Path == "" {
		cfg.Sink.SQLite.Path = "data/registry.db"
	}
	if cfg.Sink.SQLite.Driver == "" {
		cfg.Sink.SQLite.Driver = "pure"
	}
	if cfg.Sink.SQLite.MaxOpenConns <= 0 {
		cfg.Sink.SQLite.MaxOpenConns = 4
	}
	if cfg.Sink.SQLite.BusyTimeout <= 0 {
		cfg.Sink.SQLite.BusyTimeout = 5 * time.Second
	}

	if cfg.Mirror.Debounce <= 0 {
		cfg.Mirror.Debounce = 2 * time.Second
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
	if cfg.Telemetry.Metrics.Listen == "" {
		cfg.Telemetry.Metrics.Listen = ":9090"
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = "/metrics"
	}
	if cfg.Telemetry.Tracing.SampleRatio <= 0 {
		cfg.Telemetry.Tracing.SampleRatio = 1.0
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = "callisto"
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = "localhost:4317"
	}
}
