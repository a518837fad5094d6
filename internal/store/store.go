// Package store persists analysis history in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/provenance-cli/internal/model"
)

// ErrRunNotFound means no saved run carries the requested id.
var ErrRunNotFound = eris.New("store: run not found")

// Run is one saved analysis.
type Run struct {
	ID        string                  `json:"id"`
	File      string                  `json:"file"`
	Verdict   string                  `json:"verdict"`
	Taint     float64                 `json:"taint"`
	Report    *model.ProvenanceReport `json:"report,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// Store wraps the SQLite history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and configures WAL mode.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	file       TEXT NOT NULL,
	verdict    TEXT NOT NULL,
	taint      REAL NOT NULL,
	report     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Migrate creates the schema if needed.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport stores one analysis result and returns the created run.
func (s *Store) SaveReport(ctx context.Context, r *model.ProvenanceReport) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	reportJSON, err := json.Marshal(r)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal report")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, file, verdict, taint, report, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, r.File, r.Verdict, r.Taint, string(reportJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: insert run")
	}

	return &Run{
		ID:        id,
		File:      r.File,
		Verdict:   r.Verdict,
		Taint:     r.Taint,
		Report:    r,
		CreatedAt: now,
	}, nil
}

// ListRuns returns saved runs newest first, without report payloads.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file, verdict, taint, created_at FROM runs ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.File, &r.Verdict, &r.Taint, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "store: iterate runs")
}

// GetRun loads one saved run, including its full report.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, file, verdict, taint, report, created_at FROM runs WHERE id = ?`,
		id,
	)

	var r Run
	var reportJSON string
	if err := row.Scan(&r.ID, &r.File, &r.Verdict, &r.Taint, &reportJSON, &r.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, eris.Wrapf(ErrRunNotFound, "id %s", id)
		}
		return nil, eris.Wrap(err, "store: get run")
	}

	var report model.ProvenanceReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal report")
	}
	r.Report = &report

	return &r, nil
}
