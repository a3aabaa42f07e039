package config

import "time"

// Config is the root configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Parse     ParseConfig     `yaml:"parse"`
	Schema    SchemaConfig    `yaml:"schema"`
	Sink      SinkConfig      `yaml:"sink"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SourceConfig locates the registry dump to read.
type SourceConfig struct {
	// Path is the dump file. Gzip compression is detected by content.
	Path string `yaml:"path"`
}

// ParseConfig controls the parser.
type ParseConfig struct {
	// Mode is the malformed-line policy: "strict" (default) or "lenient".
	Mode string `yaml:"mode"`

	// MaxLineBytes bounds a single input line.
	MaxLineBytes int `yaml:"max_line_bytes"`
}

// Parse modes.
const (
	ModeStrict  = "strict"
	ModeLenient = "lenient"
)

// SchemaConfig selects schema mode. An empty path means schema-less mode.
type SchemaConfig struct {
	// Path is a YAML schema declaration file.
	Path string `yaml:"path"`
}

// SinkConfig selects and configures the output sink.
type SinkConfig struct {
	// Backend is one of "sqlite", "jsonl", "csv", "stdout".
	Backend string `yaml:"backend"`

	// Path is the output file for the jsonl and csv backends.
	Path string `yaml:"path"`

	// Table is the destination table for schema-mode sqlite output.
	Table string `yaml:"table"`

	SQLite SQLiteSinkConfig `yaml:"sqlite"`
}

// Sink backends.
const (
	BackendSQLite = "sqlite"
	BackendJSONL  = "jsonl"
	BackendCSV    = "csv"
	BackendStdout = "stdout"
)

// SQLiteSinkConfig configures the SQLite backend.
type SQLiteSinkConfig struct {
	Path         string        `yaml:"path"`
	Driver       string        `yaml:"driver"` // "cgo" or "pure"
	MaxOpenConns int           `yaml:"max_open_conns"`
	DisableWAL   bool          `yaml:"disable_wal"`
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
}

// MirrorConfig configures the long-running mirror service.
type MirrorConfig struct {
	// Schedule is a cron expression for periodic re-import. Empty disables
	// scheduled imports.
	Schedule string `yaml:"schedule"`

	// Watch re-imports when the source file changes on disk.
	Watch bool `yaml:"watch"`

	// Debounce coalesces bursts of filesystem events into one import.
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig groups observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level     string `yaml:"level"`  // debug, info, warn, error
	Format    string `yaml:"format"` // json, text
	AddSource bool   `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus endpoint of the mirror service.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	Path    string `yaml:"path"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // OTLP gRPC endpoint
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	ServiceName string  `yaml:"service_name"`
}
