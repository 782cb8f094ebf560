// SPDX-License-Identifier: MIT

// Package store keeps a SQLite history of slideshow runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrClosed is returned by operations on a closed History.
var ErrClosed = errors.New("store: history closed")

// Run is one recorded pipeline execution.
type Run struct {
	ID        uuid.UUID
	Input     string
	Output    string
	Slides    int
	Status    string
	Objective float64
	Score     int
	Elapsed   time.Duration
	CreatedAt time.Time
	// Err is the failure message of an unsuccessful run, empty otherwise.
	Err string
}

// History is a SQLite-backed run log. It is safe for concurrent use,
// including Close racing with in-flight calls.
type History struct {
	mu sync.RWMutex // guards db; Close takes it exclusively
	db *sql.DB
}

// Open opens (creating when missing) the history database at path.
func Open(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	// SQLite serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history: %w", err)
	}

	h := &History{db: db}
	if err := h.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return h, nil
}

func (h *History) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		input      TEXT NOT NULL,
		output     TEXT NOT NULL,
		slides     INTEGER NOT NULL,
		status     TEXT NOT NULL,
		objective  REAL NOT NULL,
		score      INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		error      TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := h.db.Exec(query)
	return err
}

// Close releases the database.
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// Record inserts r. A zero ID or CreatedAt is filled in; the stored run is returned.
func (h *History) Record(ctx context.Context, r Run) (Run, error) {
	if h == nil {
		return Run{}, ErrClosed
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.db == nil {
		return Run{}, ErrClosed
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `INSERT INTO runs (id, input, output, slides, status, objective, score, elapsed_ns, created_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := h.db.ExecContext(ctx, query,
		r.ID.String(), r.Input, r.Output, r.Slides, r.Status, r.Objective, r.Score,
		int64(r.Elapsed), r.CreatedAt.UnixNano(), r.Err)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	return r, nil
}

// Recent returns up to limit runs, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Run, error) {
	if h == nil {
		return nil, ErrClosed
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.db == nil {
		return nil, ErrClosed
	}
	query := `
		SELECT id, input, output, slides, status, objective, score, elapsed_ns, created_at, error
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			id        string
			elapsed   int64
			createdAt int64
		)
		if err := rows.Scan(&id, &r.Input, &r.Output, &r.Slides, &r.Status, &r.Objective,
			&r.Score, &elapsed, &createdAt, &r.Err); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse run id %q: %w", id, err)
		}
		r.Elapsed = time.Duration(elapsed)
		r.CreatedAt = time.Unix(0, createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return runs, nil
}

// Best returns the highest-scoring successful run recorded for input.
// ok is false when none exists.
func (h *History) Best(ctx context.Context, input string) (r Run, ok bool, err error) {
	if h == nil {
		return Run{}, false, ErrClosed
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.db == nil {
		return Run{}, false, ErrClosed
	}
	query := `
		SELECT id, output, slides, status, objective, score, elapsed_ns, created_at
		FROM runs
		WHERE input = ? AND error = ''
		ORDER BY score DESC, created_at ASC
		LIMIT 1
	`
	var (
		id        string
		elapsed   int64
		createdAt int64
	)
	err = h.db.QueryRowContext(ctx, query, input).Scan(&id, &r.Output, &r.Slides, &r.Status,
		&r.Objective, &r.Score, &elapsed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("failed to get best run: %w", err)
	}
	if r.ID, err = uuid.Parse(id); err != nil {
		return Run{}, false, fmt.Errorf("failed to parse run id %q: %w", id, err)
	}
	r.Input = input
	r.Elapsed = time.Duration(elapsed)
	r.CreatedAt = time.Unix(0, createdAt)

	return r, true, nil
}
