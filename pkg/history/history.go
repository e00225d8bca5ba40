// Package history persists a summary row per completed analysis run, so
// the TUI can show how a codebase's complexity moves over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded analysis.
type Run struct {
	ID            int64
	Root          string
	CreatedAt     time.Time
	Files         int
	Functions     int
	TotalNLOC     int
	AvgCCN        float64
	CriticalCount int
	WarningCount  int
}

// Store wraps the SQLite history database.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	root           TEXT NOT NULL,
	created_at     TIMESTAMP NOT NULL,
	files          INTEGER NOT NULL,
	functions      INTEGER NOT NULL,
	total_nloc     INTEGER NOT NULL,
	avg_ccn        REAL NOT NULL,
	critical_count INTEGER NOT NULL,
	warning_count  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root, created_at DESC);
`

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a run row and returns it with its assigned ID.
func (s *Store) Record(run Run) (Run, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`
		INSERT INTO runs (root, created_at, files, functions, total_nloc, avg_ccn, critical_count, warning_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Root, run.CreatedAt.UTC(), run.Files, run.Functions,
		run.TotalNLOC, run.AvgCCN, run.CriticalCount, run.WarningCount,
	)
	if err != nil {
		return run, fmt.Errorf("recording run: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return run, nil
}

// Recent returns up to limit runs for the given root, newest first.
func (s *Store) Recent(root string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, root, created_at, files, functions, total_nloc, avg_ccn, critical_count, warning_count
		FROM runs
		WHERE root = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, root, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.Root, &createdAt, &r.Files, &r.Functions,
			&r.TotalNLOC, &r.AvgCCN, &r.CriticalCount, &r.WarningCount); err != nil {
			continue
		}
		if createdAt.Valid {
			r.CreatedAt = createdAt.Time
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// DefaultPath returns the history database path under the given state dir.
func DefaultPath(stateDir string) string {
	if stateDir == "" {
		return ""
	}
	return filepath.Join(stateDir, "history.db")
}
