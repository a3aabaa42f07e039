package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/ingest"
	"mercator-hq/callisto/pkg/rpsl/schema"
)

var exportFlags struct {
	schemaPath string
	backend    string
	out        string
	table      string
	lenient    bool
	progress   bool
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Import a registry dump into a sink",
	Long: `Import an RPSL registry dump into the configured sink.

Without a schema, whole objects are written (sqlite, jsonl, stdout).
With a schema declaration, objects are projected into typed records
first: single-valued columns become scalars (null when absent), multi-
valued columns become arrays (empty when absent). Objects that violate
the schema are skipped and counted, the import continues.

Examples:
  # Whole objects into SQLite
  callisto export ripe.db.gz --backend sqlite

  # Typed records via a schema declaration
  callisto export ripe.db.gz --schema route.yaml --backend sqlite --table routes

  # Records as CSV
  callisto export ripe.db.gz --schema route.yaml --backend csv --out routes.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.schemaPath, "schema", "s", "", "YAML schema declaration (enables projection)")
	exportCmd.Flags().StringVar(&exportFlags.backend, "backend", "", "sink backend: sqlite, jsonl, csv, stdout")
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", "", "output file for jsonl/csv backends")
	exportCmd.Flags().StringVar(&exportFlags.table, "table", "", "destination table for schema-mode sqlite")
	exportCmd.Flags().BoolVar(&exportFlags.lenient, "lenient", false, "skip malformed lines instead of failing")
	exportCmd.Flags().BoolVar(&exportFlags.progress, "progress", false, "report progress on stderr")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	// Flags override file configuration.
	if exportFlags.schemaPath != "" {
		cfg.Schema.Path = exportFlags.schemaPath
	}
	if exportFlags.backend != "" {
		cfg.Sink.Backend = exportFlags.backend
	}
	if exportFlags.out != "" {
		cfg.Sink.Path = exportFlags.out
	}
	if exportFlags.table != "" {
		cfg.Sink.Table = exportFlags.table
	}
	if exportFlags.lenient {
		cfg.Parse.Mode = config.ModeLenient
	}

	var sch *schema.Schema
	if cfg.Schema.Path != "" {
		sch, err = schema.Load(cfg.Schema.Path)
		if err != nil {
			return cli.NewConfigError("schema.path", err.Error())
		}
	}

	opts := ingest.Options{
		Schema:       sch,
		Lenient:      cfg.Parse.Mode == config.ModeLenient,
		MaxLineBytes: cfg.Parse.MaxLineBytes,
	}
	if exportFlags.progress {
		opts.Progress = cli.NewProgressReporter(os.Stderr)
	}

	var out interface{ Close() error }
	if sch != nil {
		recordSink, err := ingest.BuildRecordSink(&cfg.Sink, sch)
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		opts.Records = recordSink
		out = recordSink
	} else {
		objectSink, err := ingest.BuildObjectSink(&cfg.Sink)
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		opts.Objects = objectSink
		out = objectSink
	}

	imp, err := ingest.NewImporter(opts)
	if err != nil {
		return cli.NewCommandError("export", err)
	}

	result, importErr := imp.ImportFile(cmd.Context(), args[0])
	if cerr := out.Close(); cerr != nil && importErr == nil {
		importErr = cerr
	}
	if importErr != nil {
		return cli.NewCommandError("export", importErr)
	}

	fmt.Printf("✓ Imported %d objects", result.Objects)
	if sch != nil {
		fmt.Printf(", %d records", result.Records)
	}
	if result.SkippedLines > 0 {
		fmt.Printf(", %d lines skipped", result.SkippedLines)
	}
	if result.SchemaErrors > 0 {
		fmt.Printf(", %d objects rejected by schema", result.SchemaErrors)
	}
	fmt.Printf(" in %s\n", result.Duration.Round(time.Millisecond))
	if _, ok := out.(interface{ BatchID() string }); ok {
		fmt.Printf("  batch %s\n", result.BatchID)
	}
	return nil
}
