package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"mercator-hq/callisto/pkg/rpsl"
	"mercator-hq/callisto/pkg/rpsl/schema"
)

// SQLite driver selection. The cgo driver (mattn/go-sqlite3) is faster; the
// pure-Go driver (modernc.org/sqlite) works in CGO_ENABLED=0 builds.
const (
	DriverCgo  = "cgo"
	DriverPure = "pure"
)

// SQLiteConfig contains configuration for the SQLite sinks.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver selects the SQLite driver: "cgo" or "pure".
	// Default: "pure"
	Driver string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/registry.db",
		Driver:       DriverPure,
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

func (c *SQLiteConfig) driverName() (string, error) {
	switch c.Driver {
	case DriverCgo:
		return "sqlite3", nil
	case DriverPure, "":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unknown sqlite driver %q (want %q or %q)", c.Driver, DriverCgo, DriverPure)
	}
}

// openDB opens and tunes the database shared by both SQLite sinks.
func openDB(cfg *SQLiteConfig) (*sql.DB, error) {
	name, err := cfg.driverName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	if cfg.WALMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

const objectSchema = `
CREATE TABLE IF NOT EXISTS batches (
    id         TEXT PRIMARY KEY,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS objects (
    batch_id   TEXT    NOT NULL,
    seq        INTEGER NOT NULL,
    class      TEXT    NOT NULL,
    object_key TEXT    NOT NULL,
    PRIMARY KEY (batch_id, seq)
);

CREATE TABLE IF NOT EXISTS attributes (
    batch_id   TEXT    NOT NULL,
    object_seq INTEGER NOT NULL,
    seq        INTEGER NOT NULL,
    name       TEXT    NOT NULL,
    value      TEXT    NOT NULL,
    PRIMARY KEY (batch_id, object_seq, seq)
);

CREATE INDEX IF NOT EXISTS idx_objects_class ON objects(class);
CREATE INDEX IF NOT EXISTS idx_attributes_name ON attributes(name);
`

// SQLiteSink writes raw objects into an objects/attributes table pair.
// Every sink instance writes one import batch, tagged with a fresh UUID.
type SQLiteSink struct {
	db         *sql.DB
	batchID    string
	seq        int64
	insertObj  *sql.Stmt
	insertAttr *sql.Stmt
	logger     *slog.Logger
}

// NewSQLiteSink creates a schema-less SQLite sink.
func NewSQLiteSink(cfg *SQLiteConfig) (*SQLiteSink, error) {
	if cfg == nil {
		cfg = DefaultSQLiteConfig()
	}
	logger := slog.Default().With("component", "sink.sqlite")

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(objectSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	batchID := uuid.NewString()
	if _, err := db.Exec("INSERT INTO batches (id, created_at) VALUES (?, ?)",
		batchID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register batch: %w", err)
	}

	insertObj, err := db.Prepare("INSERT INTO objects (batch_id, seq, class, object_key) VALUES (?, ?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare object insert: %w", err)
	}
	insertAttr, err := db.Prepare("INSERT INTO attributes (batch_id, object_seq, seq, name, value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		insertObj.Close()
		db.Close()
		return nil, fmt.Errorf("failed to prepare attribute insert: %w", err)
	}

	logger.Info("sqlite sink opened",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"batch_id", batchID,
	)

	return &SQLiteSink{
		db:         db,
		batchID:    batchID,
		insertObj:  insertObj,
		insertAttr: insertAttr,
		logger:     logger,
	}, nil
}

// BatchID returns the UUID tagging this import batch.
func (s *SQLiteSink) BatchID() string {
	return s.batchID
}

// WriteObject inserts one object and its attributes.
func (s *SQLiteSink) WriteObject(ctx context.Context, obj *rpsl.Object) error {
	seq := s.seq
	s.seq++

	if _, err := s.insertObj.ExecContext(ctx, s.batchID, seq, obj.Class(), obj.Key()); err != nil {
		return fmt.Errorf("failed to insert object %d: %w", seq, err)
	}
	for i, a := range obj.Attributes {
		if _, err := s.insertAttr.ExecContext(ctx, s.batchID, seq, i, a.Name, a.Value); err != nil {
			return fmt.Errorf("failed to insert attribute %d of object %d: %w", i, seq, err)
		}
	}
	return nil
}

// Close releases the prepared statements and the database handle.
func (s *SQLiteSink) Close() error {
	s.insertObj.Close()
	s.insertAttr.Close()
	s.logger.Debug("sqlite sink closed", "batch_id", s.batchID, "objects", s.seq)
	return s.db.Close()
}

// SQLiteRecordSink writes typed records into one table shaped by the
// declared schema: TEXT per Single column (NULL when absent), a JSON array
// of strings per Multi column.
type SQLiteRecordSink struct {
	db      *sql.DB
	schema  *schema.Schema
	table   string
	batchID string
	seq     int64
	insert  *sql.Stmt
	logger  *slog.Logger
}

// NewSQLiteRecordSink creates a schema-mode SQLite sink writing to the
// given table, creating it from the schema if needed.
func NewSQLiteRecordSink(cfg *SQLiteConfig, sch *schema.Schema, table string) (*SQLiteRecordSink, error) {
	if cfg == nil {
		cfg = DefaultSQLiteConfig()
	}
	if sch == nil || sch.Len() == 0 {
		return nil, fmt.Errorf("record sink requires a non-empty schema")
	}
	if table == "" {
		table = "records"
	}
	logger := slog.Default().With("component", "sink.sqlite", "table", table)

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(recordTableDDL(sch, table)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %q: %w", table, err)
	}

	insert, err := db.Prepare(recordInsertSQL(sch, table))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare record insert: %w", err)
	}

	batchID := uuid.NewString()
	logger.Info("sqlite record sink opened",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"batch_id", batchID,
		"columns", sch.Len(),
	)

	return &SQLiteRecordSink{
		db:      db,
		schema:  sch,
		table:   table,
		batchID: batchID,
		insert:  insert,
		logger:  logger,
	}, nil
}

// BatchID returns the UUID tagging this import batch.
func (s *SQLiteRecordSink) BatchID() string {
	return s.batchID
}

// WriteRecord inserts one projected record.
func (s *SQLiteRecordSink) WriteRecord(ctx context.Context, rec *schema.Record) error {
	args := make([]any, 0, s.schema.Len()+2)
	args = append(args, s.batchID, s.seq)
	s.seq++

	for _, col := range s.schema.Columns() {
		switch col.Cardinality {
		case schema.Single:
			if v, ok := rec.Single(col.Name); ok {
				args = append(args, v)
			} else {
				args = append(args, nil)
			}
		case schema.Multi:
			encoded, err := json.Marshal(rec.Multi(col.Name))
			if err != nil {
				return fmt.Errorf("failed to encode column %q: %w", col.Name, err)
			}
			args = append(args, string(encoded))
		}
	}

	if _, err := s.insert.ExecContext(ctx, args...); err != nil {
		return fmt.Errorf("failed to insert record %d: %w", s.seq-1, err)
	}
	return nil
}

// Close releases the prepared statement and the database handle.
func (s *SQLiteRecordSink) Close() error {
	s.insert.Close()
	s.logger.Debug("sqlite record sink closed", "batch_id", s.batchID, "records", s.seq)
	return s.db.Close()
}

// quoteIdent quotes an SQL identifier; RPSL attribute names contain '-'.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func recordTableDDL(sch *schema.Schema, table string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE IF NOT EXISTS %s (\n", quoteIdent(table))
	sb.WriteString("    batch_id TEXT NOT NULL,\n")
	sb.WriteString("    seq      INTEGER NOT NULL")
	for _, col := range sch.Columns() {
		fmt.Fprintf(&sb, ",\n    %s TEXT", quoteIdent(col.Name))
		if col.Cardinality == schema.Multi {
			// Multi columns always hold a JSON array, at minimum [].
			sb.WriteString(" NOT NULL")
		}
	}
	sb.WriteString(",\n    PRIMARY KEY (batch_id, seq)\n);")
	return sb.String()
}

func recordInsertSQL(sch *schema.Schema, table string) string {
	cols := []string{"batch_id", "seq"}
	for _, col := range sch.Columns() {
		cols = append(cols, quoteIdent(col.Name))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), placeholders)
}
