// Package history persists a row per build invocation to a SQLite
// database under .cache/, so "fortuna build --stats" can report the
// incremental-rebuild ratio across recent runs. It is purely an
// operator-feedback feature: nothing in the build engine reads it
// back, and its failures never gate the exit code.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the SQLite build-history database.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if absent) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("history: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	store := &Store{db: db}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return store, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Run is one recorded build invocation.
type Run struct {
	RunID          string
	StartedAt      time.Time
	Duration       time.Duration
	SourcesTotal   int
	SourcesRebuilt int
	Parallel       bool
	Success        bool
	FullRebuild    bool
	ErrorMessage   string
}

// Record inserts one Run. If RunID is empty, a fresh one is assigned.
func (s *Store) Record(r Run) error {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO build_runs
		 (run_id, started_at, duration_ms, sources_total, sources_rebuilt, parallel, success, full_rebuild, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.StartedAt, r.Duration.Milliseconds(), r.SourcesTotal, r.SourcesRebuilt,
		r.Parallel, r.Success, r.FullRebuild, r.ErrorMessage,
	)
	return err
}

// Recent returns the last n build runs, most recent first.
func (s *Store) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, started_at, duration_ms, sources_total, sources_rebuilt, parallel, success, full_rebuild, error_message
		 FROM build_runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		if err := rows.Scan(&r.RunID, &r.StartedAt, &durationMs, &r.SourcesTotal, &r.SourcesRebuilt,
			&r.Parallel, &r.Success, &r.FullRebuild, &r.ErrorMessage); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
