package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - streaming RPSL registry dump parser and mirror",
	Long: `Callisto parses WHOIS/IRR registry dumps written in the Routing Policy
Specification Language (RPSL) and turns them into structured data.

It streams dumps of any size in bounded memory, optionally projects
objects against a declared column schema, and writes the result to
SQLite, JSON lines, or CSV. The mirror command keeps a local database
in sync with a dump file on a schedule or on file changes.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig returns the effective configuration: built-in defaults when no
// config file is given, the file plus CALLISTO_* overrides otherwise. The
// --verbose flag forces debug logging either way.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile == "" {
		cfg = config.Default()
	} else {
		cfg, err = config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			return nil, err
		}
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// setupLogging installs the configured logger as the process default.
func setupLogging(cfg *config.Config) error {
	_, err := logging.Setup(cfg.Telemetry.Logging, os.Stderr)
	return err
}
