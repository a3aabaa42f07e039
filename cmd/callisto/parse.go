package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/rpsl/parser"
	"mercator-hq/callisto/pkg/rpsl/source"
	"mercator-hq/callisto/pkg/sink"
)

var parseFlags struct {
	format       string
	lenient      bool
	maxLineBytes int
	progress     bool
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a registry dump and print its objects",
	Long: `Parse an RPSL registry dump and print every object to stdout.

Gzip-compressed dumps are detected by content, regardless of file name.
Text output reproduces the objects in canonical RPSL form; JSON output
writes one JSON object per line.

Examples:
  # Canonical text
  callisto parse ripe.db

  # One JSON object per line
  callisto parse ripe.db.gz --format json

  # Skip malformed lines instead of failing
  callisto parse dirty.db --lenient`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseFlags.format, "format", "text", "output format: text, json")
	parseCmd.Flags().BoolVar(&parseFlags.lenient, "lenient", false, "skip malformed lines instead of failing")
	parseCmd.Flags().IntVar(&parseFlags.maxLineBytes, "max-line-bytes", 0, "maximum input line length (0 = default)")
	parseCmd.Flags().BoolVar(&parseFlags.progress, "progress", false, "report progress on stderr")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	rc, err := source.Open(args[0])
	if err != nil {
		return cli.NewCommandError("parse", err)
	}
	defer rc.Close()

	reader := parser.NewReader(rc).WithLenient(parseFlags.lenient)
	if parseFlags.maxLineBytes > 0 {
		reader = reader.WithMaxLineBytes(parseFlags.maxLineBytes)
	}

	var jsonSink *sink.JSONLObjectSink
	if parseFlags.format == "json" {
		jsonSink = sink.NewJSONLObjectSink(os.Stdout)
	}

	var progress cli.ProgressReporter
	if parseFlags.progress {
		progress = cli.NewProgressReporter(os.Stderr)
		progress.Start()
	}

	for {
		obj, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if progress != nil {
				progress.Error(err)
			}
			return cli.NewCommandError("parse", err)
		}
		if progress != nil {
			progress.Increment()
		}

		if jsonSink != nil {
			if err := jsonSink.WriteObject(cmd.Context(), obj); err != nil {
				return cli.NewCommandError("parse", err)
			}
			continue
		}
		if _, err := obj.WriteTo(os.Stdout); err != nil {
			return cli.NewCommandError("parse", err)
		}
	}
	if progress != nil {
		progress.Finish()
	}

	if skipped := reader.Skipped(); skipped.HasErrors() {
		fmt.Fprintf(os.Stderr, "skipped %d malformed line(s)\n", skipped.Count())
		if verbose {
			fmt.Fprint(os.Stderr, skipped.Error())
		}
	}
	return nil
}
