// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry records one completed simulation run.
type RunEntry struct {
	ID             int64
	Width          int
	Height         int
	Seed           int64
	CardinalWeight int
	DiagonalWeight int
	Boundary       string
	Ticks          int  // Ticks actually executed
	Settled        bool // Whether the grid reached a fixed point
	SettledAt      int  // Tick at which it settled; meaningful only if Settled
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			cardinal_weight INTEGER NOT NULL,
			diagonal_weight INTEGER NOT NULL,
			boundary TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			settled INTEGER NOT NULL DEFAULT 0,
			settled_at INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_size ON runs(width, height);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed run. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	var settledAt sql.NullInt64
	if run.Settled {
		settledAt = sql.NullInt64{Int64: int64(run.SettledAt), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (width, height, seed, cardinal_weight, diagonal_weight, boundary, ticks, settled, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Width,
		run.Height,
		run.Seed,
		run.CardinalWeight,
		run.DiagonalWeight,
		run.Boundary,
		run.Ticks,
		run.Settled,
		settledAt,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, width, height, seed, cardinal_weight, diagonal_weight, boundary,
		        ticks, settled, settled_at, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsForSize retrieves the most recent runs for a given grid size.
func (s *Store) RunsForSize(width, height, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, width, height, seed, cardinal_weight, diagonal_weight, boundary,
		        ticks, settled, settled_at, created_at
		 FROM runs
		 WHERE width = ? AND height = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		width, height, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// scanRuns reads run rows into entries.
func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var settledAt sql.NullInt64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Width,
			&e.Height,
			&e.Seed,
			&e.CardinalWeight,
			&e.DiagonalWeight,
			&e.Boundary,
			&e.Ticks,
			&e.Settled,
			&settledAt,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if settledAt.Valid {
			e.SettledAt = int(settledAt.Int64)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
