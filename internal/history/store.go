// Package history persists completed processing runs to SQLite so the
// API and CLI can list past work.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/crossbom/crossbom/internal/process"
)

// ErrNotFound is returned when a run id has no record.
var ErrNotFound = errors.New("run not found")

// Run is one completed processing run.
type Run struct {
	ID            uuid.UUID     `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	InputFile     string        `json:"input_file"`
	MasterFile    string        `json:"master_file"`
	ProjectColumn string        `json:"project_column"`
	OutputFile    string        `json:"output_file"`
	Stats         process.Stats `json:"stats"`
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	input_file TEXT NOT NULL,
	master_file TEXT NOT NULL,
	project_column TEXT NOT NULL,
	output_file TEXT NOT NULL,
	stats TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
`

// Open opens (and migrates) the run store at path. Use ":memory:" for
// an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a completed run. A zero ID or CreatedAt is filled in.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	query := `
		INSERT INTO runs (id, created_at, input_file, master_file, project_column, output_file, stats)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		run.ID.String(), run.CreatedAt, run.InputFile, run.MasterFile,
		run.ProjectColumn, run.OutputFile, string(stats),
	)
	return err
}

// GetByID retrieves one run.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*Run, error) {
	query := `
		SELECT id, created_at, input_file, master_file, project_column, output_file, stats
		FROM runs WHERE id = ?
	`
	run, err := scanRun(s.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, created_at, input_file, master_file, project_column, output_file, stats
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run   Run
		id    string
		stats string
	)
	err := sc.Scan(&id, &run.CreatedAt, &run.InputFile, &run.MasterFile,
		&run.ProjectColumn, &run.OutputFile, &stats)
	if err != nil {
		return nil, err
	}

	run.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse run id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(stats), &run.Stats); err != nil {
		return nil, fmt.Errorf("decode stats for run %s: %w", id, err)
	}
	return &run, nil
}
