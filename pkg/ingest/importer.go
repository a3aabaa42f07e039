package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/rpsl/parser"
	"mercator-hq/callisto/pkg/rpsl/rpslerr"
	"mercator-hq/callisto/pkg/rpsl/schema"
	"mercator-hq/callisto/pkg/rpsl/source"
	"mercator-hq/callisto/pkg/sink"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/telemetry/tracing"
)

// Options configures an Importer.
type Options struct {
	// Schema enables projection. Nil means schema-less import: whole objects
	// go to the object sink.
	Schema *schema.Schema

	// Objects receives parsed objects in schema-less mode.
	Objects sink.ObjectSink

	// Records receives projected records in schema mode.
	Records sink.RecordSink

	// Lenient skips malformed lines instead of failing the import.
	Lenient bool

	// MaxLineBytes bounds a single input line. Zero uses the parser default.
	MaxLineBytes int

	// Metrics is optional. Nil disables instrumentation.
	Metrics *metrics.Collector

	// Tracer is optional. Nil disables spans.
	Tracer *tracing.Tracer

	// Progress is optional. When set it is started, incremented per object,
	// and finished (or failed) around the read loop.
	Progress cli.ProgressReporter

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Result summarizes one completed import.
type Result struct {
	Path         string        `json:"path"`
	BatchID      string        `json:"batch_id"`
	Objects      int           `json:"objects"`
	Records      int           `json:"records"`
	SkippedLines int           `json:"skipped_lines"`
	SchemaErrors int           `json:"schema_errors"`
	Duration     time.Duration `json:"duration"`
}

// Importer runs dump imports. It is single-use per call, not per instance:
// each ImportFile opens the source fresh and streams it to the sink.
type Importer struct {
	opts   Options
	logger *slog.Logger
}

// NewImporter validates the options and creates an importer.
func NewImporter(opts Options) (*Importer, error) {
	if opts.Schema != nil && opts.Records == nil {
		return nil, errors.New("schema mode requires a record sink")
	}
	if opts.Schema == nil && opts.Objects == nil {
		return nil, errors.New("schema-less mode requires an object sink")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		opts:   opts,
		logger: logger.With("component", "ingest"),
	}, nil
}

// batchIDer is satisfied by the SQLite sinks, which tag rows with a batch.
type batchIDer interface {
	BatchID() string
}

func (imp *Importer) batchID() string {
	if imp.opts.Schema != nil {
		if b, ok := imp.opts.Records.(batchIDer); ok {
			return b.BatchID()
		}
	} else if b, ok := imp.opts.Objects.(batchIDer); ok {
		return b.BatchID()
	}
	return uuid.NewString()
}

// ImportFile opens path (gzip detected by content) and imports it.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer rc.Close()

	if imp.opts.Tracer == nil {
		return imp.ImportReader(ctx, rc, path)
	}

	ctx, span := imp.opts.Tracer.StartImport(ctx, path)
	res, err := imp.ImportReader(ctx, rc, path)
	if res != nil {
		tracing.EndImport(span, res.Objects, res.BatchID, err)
	} else {
		tracing.EndImport(span, 0, "", err)
	}
	return res, err
}

// ImportReader imports from an already-open stream. The path is used only
// for logging and the result.
func (imp *Importer) ImportReader(ctx context.Context, r io.Reader, path string) (*Result, error) {
	start := time.Now()
	result := &Result{
		Path:    path,
		BatchID: imp.batchID(),
	}

	counted := &countingReader{r: r}
	reader := parser.NewReader(counted).WithLenient(imp.opts.Lenient)
	if imp.opts.MaxLineBytes > 0 {
		reader = reader.WithMaxLineBytes(imp.opts.MaxLineBytes)
	}

	imp.logger.Info("import started",
		"path", path,
		"batch_id", result.BatchID,
		"schema", imp.opts.Schema != nil,
		"lenient", imp.opts.Lenient,
	)
	if imp.opts.Progress != nil {
		imp.opts.Progress.Start()
	}

	for {
		if err := ctx.Err(); err != nil {
			imp.failProgress(err)
			return result, err
		}

		obj, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			imp.recordError(err)
			imp.failProgress(err)
			return result, fmt.Errorf("import of %s failed: %w", path, err)
		}

		result.Objects++
		if imp.opts.Progress != nil {
			imp.opts.Progress.Increment()
		}
		if imp.opts.Metrics != nil {
			imp.opts.Metrics.RecordObject(obj.Class(), obj.Len())
		}

		if imp.opts.Schema == nil {
			if err := imp.opts.Objects.WriteObject(ctx, obj); err != nil {
				imp.failProgress(err)
				return result, fmt.Errorf("sink write failed: %w", err)
			}
			continue
		}

		rec, err := schema.Project(obj, imp.opts.Schema)
		if err != nil {
			// Projection failures are scoped to one object; log and move on.
			if perr, ok := err.(*rpslerr.Error); ok {
				perr.Pos.Object = result.Objects
			}
			result.SchemaErrors++
			imp.recordError(err)
			imp.logger.Warn("object skipped", "error", err)
			continue
		}
		if err := imp.opts.Records.WriteRecord(ctx, rec); err != nil {
			imp.failProgress(err)
			return result, fmt.Errorf("sink write failed: %w", err)
		}
		result.Records++
	}
	if imp.opts.Progress != nil {
		imp.opts.Progress.Finish()
	}

	result.SkippedLines = reader.Skipped().Count()
	for _, serr := range reader.Skipped().Errors {
		imp.recordError(serr)
	}

	result.Duration = time.Since(start)
	if imp.opts.Metrics != nil {
		imp.opts.Metrics.RecordBytes(counted.n)
		imp.opts.Metrics.RecordImport(result.Duration, result.Objects)
	}

	imp.logger.Info("import finished",
		"path", path,
		"batch_id", result.BatchID,
		"objects", result.Objects,
		"records", result.Records,
		"skipped_lines", result.SkippedLines,
		"schema_errors", result.SchemaErrors,
		"duration", result.Duration,
	)
	return result, nil
}

func (imp *Importer) failProgress(err error) {
	if imp.opts.Progress != nil {
		imp.opts.Progress.Error(err)
	}
}

// countingReader counts decompressed source bytes for metrics.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (imp *Importer) recordError(err error) {
	if imp.opts.Metrics == nil {
		return
	}
	var perr *rpslerr.Error
	if errors.As(err, &perr) {
		imp.opts.Metrics.RecordError(string(perr.Type))
		return
	}
	imp.opts.Metrics.RecordError(string(rpslerr.ErrorTypeIO))
}
