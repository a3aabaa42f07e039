// Package logging provides the structured logger used across callisto.
//
// It is a thin wrapper over log/slog that parses level and format from
// configuration and installs itself as the process default, so library
// packages can log through slog.Default() without holding a handle.
package logging
