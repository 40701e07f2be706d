package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"attest-hq/attest/pkg/report"
)

// schema is the run record table. Probe and claim results are stored as a
// JSON document: they are only ever read back whole, and the queried
// columns (id, started_at, passed) have their own columns and indexes.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	spec_name TEXT NOT NULL,
	spec_file TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	record TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// SQLiteStorage persists run records in a SQLite database.
type SQLiteStorage struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStorage opens or creates a run record database at path. Parent
// directories are created as needed.
func NewSQLiteStorage(path string, logger *slog.Logger) (*SQLiteStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create report schema: %w", err)
	}

	s := &SQLiteStorage{
		db:     db,
		logger: logger.With("component", "report_storage"),
	}
	s.logger.Debug("report storage opened", "path", path)
	return s, nil
}

// Save stores a finished run record.
func (s *SQLiteStorage) Save(ctx context.Context, record *report.RunRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode run record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, spec_name, spec_file, started_at, finished_at, passed, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 	finished_at = excluded.finished_at,
		 	passed = excluded.passed,
		 	record = excluded.record`,
		record.ID,
		record.SpecName,
		record.SpecFile,
		record.StartedAt.UnixNano(),
		record.FinishedAt.UnixNano(),
		boolToInt(record.Passed),
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}
	return nil
}

// Get returns the record with the given id.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*report.RunRecord, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM runs WHERE id = ?`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, report.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run record: %w", err)
	}

	return decodeRecord(doc)
}

// List returns up to limit records, newest first.
func (s *SQLiteStorage) List(ctx context.Context, limit int) ([]*report.RunRecord, error) {
	query := `SELECT record FROM runs ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	defer rows.Close()

	var records []*report.RunRecord
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		record, err := decodeRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count run records: %w", err)
	}
	return n, nil
}

// DeleteOlderThan removes records started before cutoff.
func (s *SQLiteStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE started_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune run records: %w", err)
	}
	return res.RowsAffected()
}

// TrimToCount keeps only the newest max records.
func (s *SQLiteStorage) TrimToCount(ctx context.Context, max int) (int64, error) {
	if max <= 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)`, max)
	if err != nil {
		return 0, fmt.Errorf("failed to trim run records: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func decodeRecord(doc string) (*report.RunRecord, error) {
	var record report.RunRecord
	if err := json.Unmarshal([]byte(doc), &record); err != nil {
		return nil, fmt.Errorf("failed to decode run record: %w", err)
	}
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
