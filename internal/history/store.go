// Package history keeps a local log of report runs. The reporting core
// never touches it; only the CLI host writes and reads entries.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry represents a single report run.
type Entry struct {
	ID           int
	ReportFile   string
	PrimaryTable string
	Query        string
	ExecutedAt   time.Time
	Duration     time.Duration
	RowCount     int
	Success      bool
	ErrorMessage string
}

// Store manages run-log persistence.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the sqlite run log at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Add records a report run.
func (s *Store) Add(entry Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO report_runs
		(report_file, primary_table, query, duration_ms, row_count, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ReportFile,
		entry.PrimaryTable,
		entry.Query,
		entry.Duration.Milliseconds(),
		entry.RowCount,
		entry.Success,
		entry.ErrorMessage,
	)
	return err
}

// Recent retrieves the most recent run entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, report_file, primary_table, query, executed_at,
		       duration_ms, row_count, success, error_message
		FROM report_runs
		ORDER BY executed_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMs int64

		// The TIMESTAMP decltype makes the driver hand back a time.Time.
		err := rows.Scan(
			&e.ID,
			&e.ReportFile,
			&e.PrimaryTable,
			&e.Query,
			&e.ExecutedAt,
			&durationMs,
			&e.RowCount,
			&e.Success,
			&e.ErrorMessage,
		)
		if err != nil {
			return nil, err
		}

		e.Duration = time.Duration(durationMs) * time.Millisecond

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
