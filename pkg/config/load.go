package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration, used when no config file is
// given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies CALLISTO_* environment variable overrides, which always take
// precedence over file values.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies CALLISTO_SECTION_FIELD environment variables.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CALLISTO_SOURCE_PATH"); val != "" {
		cfg.Source.Path = val
	}
	if val := os.Getenv("CALLISTO_PARSE_MODE"); val != "" {
		cfg.Parse.Mode = val
	}
	if val := os.Getenv("CALLISTO_PARSE_MAX_LINE_BYTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Parse.MaxLineBytes = i
		}
	}
	if val := os.Getenv("CALLISTO_SCHEMA_PATH"); val != "" {
		cfg.Schema.Path = val
	}

	if val := os.Getenv("CALLISTO_SINK_BACKEND"); val != "" {
		cfg.Sink.Backend = val
	}
	if val := os.Getenv("CALLISTO_SINK_PATH"); val != "" {
		cfg.Sink.Path = val
	}
	if val := os.Getenv("CALLISTO_SINK_TABLE"); val != "" {
		cfg.Sink.Table = val
	}
	if val := os.Getenv("CALLISTO_SINK_SQLITE_PATH"); val != "" {
		cfg.Sink.SQLite.Path = val
	}
	if val := os.Getenv("CALLISTO_SINK_SQLITE_DRIVER"); val != "" {
		cfg.Sink.SQLite.Driver = val
	}

	if val := os.Getenv("CALLISTO_MIRROR_SCHEDULE"); val != "" {
		cfg.Mirror.Schedule = val
	}
	if val := os.Getenv("CALLISTO_MIRROR_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Mirror.Watch = b
		}
	}
	if val := os.Getenv("CALLISTO_MIRROR_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Mirror.Debounce = d
		}
	}

	if val := os.Getenv("CALLISTO_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_METRICS_LISTEN"); val != "" {
		cfg.Telemetry.Metrics.Listen = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}
