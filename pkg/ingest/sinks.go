package ingest

import (
	"fmt"
	"io"
	"os"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/rpsl/schema"
	"mercator-hq/callisto/pkg/sink"
)

// sqliteConfig maps sink configuration onto the sink package's options.
func sqliteConfig(cfg *config.SQLiteSinkConfig) *sink.SQLiteConfig {
	return &sink.SQLiteConfig{
		Path:         cfg.Path,
		Driver:       cfg.Driver,
		MaxOpenConns: cfg.MaxOpenConns,
		WALMode:      !cfg.DisableWAL,
		BusyTimeout:  cfg.BusyTimeout,
	}
}

// openOutput opens the sink output file, or stdout for an empty path.
func openOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

// fileObjectSink couples a writer-backed sink to the file it writes.
type fileObjectSink struct {
	sink.ObjectSink
	file io.Closer
}

func (s *fileObjectSink) Close() error {
	err := s.ObjectSink.Close()
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type fileRecordSink struct {
	sink.RecordSink
	file io.Closer
}

func (s *fileRecordSink) Close() error {
	err := s.RecordSink.Close()
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// BuildObjectSink creates the configured sink for schema-less imports.
func BuildObjectSink(cfg *config.SinkConfig) (sink.ObjectSink, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sink.NewSQLiteSink(sqliteConfig(&cfg.SQLite))
	case config.BackendJSONL:
		w, closer, err := openOutput(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &fileObjectSink{ObjectSink: sink.NewJSONLObjectSink(w), file: closer}, nil
	case config.BackendStdout:
		return sink.NewJSONLObjectSink(os.Stdout), nil
	case config.BackendCSV:
		return nil, fmt.Errorf("csv output requires a schema")
	default:
		return nil, fmt.Errorf("unknown sink backend %q", cfg.Backend)
	}
}

// BuildRecordSink creates the configured sink for schema-mode imports.
func BuildRecordSink(cfg *config.SinkConfig, sch *schema.Schema) (sink.RecordSink, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sink.NewSQLiteRecordSink(sqliteConfig(&cfg.SQLite), sch, cfg.Table)
	case config.BackendJSONL:
		w, closer, err := openOutput(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &fileRecordSink{RecordSink: sink.NewJSONLRecordSink(w), file: closer}, nil
	case config.BackendCSV:
		w, closer, err := openOutput(cfg.Path)
		if err != nil {
			return nil, err
		}
		s, err := sink.NewCSVRecordSink(w, sch)
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, err
		}
		return &fileRecordSink{RecordSink: s, file: closer}, nil
	case config.BackendStdout:
		return sink.NewJSONLRecordSink(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown sink backend %q", cfg.Backend)
	}
}
