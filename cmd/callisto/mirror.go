package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/ingest"
	"mercator-hq/callisto/pkg/rpsl/schema"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/telemetry/tracing"
)

var mirrorFlags struct {
	sourcePath string
	schedule   string
	watch      bool
}

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Keep a sink in sync with a registry dump file",
	Long: `Run Callisto as a long-lived mirror service.

The mirror imports the configured source file at startup, then re-imports
on a cron schedule, whenever the file changes on disk, or both. Each
import is a fresh batch in the sink. When enabled, Prometheus metrics are
served over HTTP.

Examples:
  # Re-import nightly and on file changes
  callisto mirror --config callisto.yaml

  # Ad-hoc: watch one file into SQLite with defaults
  callisto mirror --source ripe.db --watch`,
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)

	mirrorCmd.Flags().StringVar(&mirrorFlags.sourcePath, "source", "", "override source file path")
	mirrorCmd.Flags().StringVar(&mirrorFlags.schedule, "schedule", "", "override cron schedule")
	mirrorCmd.Flags().BoolVar(&mirrorFlags.watch, "watch", false, "re-import when the source file changes")
}

func runMirror(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	if mirrorFlags.sourcePath != "" {
		cfg.Source.Path = mirrorFlags.sourcePath
	}
	if mirrorFlags.schedule != "" {
		cfg.Mirror.Schedule = mirrorFlags.schedule
	}
	if mirrorFlags.watch {
		cfg.Mirror.Watch = true
	}
	if cfg.Source.Path == "" {
		return cli.NewConfigError("source.path", "mirror requires a source file")
	}

	var sch *schema.Schema
	if cfg.Schema.Path != "" {
		sch, err = schema.Load(cfg.Schema.Path)
		if err != nil {
			return cli.NewConfigError("schema.path", err.Error())
		}
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("mirror", err)
	}
	defer tracer.Shutdown(context.Background())

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	var metricsServer *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              cfg.Telemetry.Metrics.Listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Printf("metrics server stopped: %v\n", err)
			}
		}()
	}

	// Each cycle opens a fresh sink so every import lands in its own batch.
	runImport := func(ctx context.Context) error {
		return importOnce(ctx, cfg, sch, collector, tracer)
	}

	m, err := ingest.NewMirror(cfg.Mirror, cfg.Source.Path, runImport)
	if err != nil {
		return cli.NewCommandError("mirror", err)
	}

	ctx := cli.SetupSignalHandler()
	if err := m.Start(ctx); err != nil {
		return cli.NewCommandError("mirror", err)
	}

	fmt.Printf("✓ Mirroring %s\n", cfg.Source.Path)
	if next := m.NextRun(); next != nil {
		fmt.Printf("  next scheduled import: %s\n", next.Format(time.RFC3339))
	}
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("  metrics: http://%s%s\n", cfg.Telemetry.Metrics.Listen, cfg.Telemetry.Metrics.Path)
	}

	<-ctx.Done()
	m.Stop()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}
	return nil
}

// importOnce runs one import cycle with a sink of its own.
func importOnce(ctx context.Context, cfg *config.Config, sch *schema.Schema,
	collector *metrics.Collector, tracer *tracing.Tracer) error {

	opts := ingest.Options{
		Schema:       sch,
		Lenient:      cfg.Parse.Mode == config.ModeLenient,
		MaxLineBytes: cfg.Parse.MaxLineBytes,
		Metrics:      collector,
		Tracer:       tracer,
	}

	var out interface{ Close() error }
	if sch != nil {
		recordSink, err := ingest.BuildRecordSink(&cfg.Sink, sch)
		if err != nil {
			return err
		}
		opts.Records = recordSink
		out = recordSink
	} else {
		objectSink, err := ingest.BuildObjectSink(&cfg.Sink)
		if err != nil {
			return err
		}
		opts.Objects = objectSink
		out = objectSink
	}

	imp, err := ingest.NewImporter(opts)
	if err != nil {
		out.Close()
		return err
	}

	_, importErr := imp.ImportFile(ctx, cfg.Source.Path)
	if cerr := out.Close(); cerr != nil && importErr == nil {
		importErr = cerr
	}
	return importErr
}
