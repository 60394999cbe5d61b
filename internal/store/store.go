// Package store persists Monte Carlo runs and their per-trial thresholds in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("store: run not found")

var schema = []string{`
CREATE TABLE IF NOT EXISTS percolation_runs (
	run_id        TEXT PRIMARY KEY,
	grid_size     INTEGER NOT NULL,
	trials        INTEGER NOT NULL,
	seed          INTEGER NOT NULL,
	mean          REAL NOT NULL,
	stddev        REAL NOT NULL,
	confidence_lo REAL NOT NULL,
	confidence_hi REAL NOT NULL,
	created_at_ns INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS percolation_trials (
	run_id      TEXT NOT NULL REFERENCES percolation_runs(run_id) ON DELETE CASCADE,
	trial_index INTEGER NOT NULL,
	open_sites  INTEGER NOT NULL,
	threshold   REAL NOT NULL,
	PRIMARY KEY (run_id, trial_index)
)`,
}

// Run is one recorded Monte Carlo experiment.
type Run struct {
	RunID        string  `json:"run_id"`
	GridSize     int     `json:"grid_size"`
	Trials       int     `json:"trials"`
	Seed         int64   `json:"seed"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"stddev"`
	ConfidenceLo float64 `json:"confidence_lo"`
	ConfidenceHi float64 `json:"confidence_hi"`
	CreatedAtNs  int64   `json:"created_at_ns"`
}

// TrialRecord is a single stored trial.
type TrialRecord struct {
	Index     int
	OpenSites int
	Threshold float64
}

// Store provides persistence for percolation runs.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRun stores run and its trials in one transaction.
// If run.RunID is empty, a new UUID is generated; a zero CreatedAtNs is set to now.
func (s *Store) InsertRun(run *Run, trials []TrialRecord) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAtNs == 0 {
		run.CreatedAtNs = time.Now().UnixNano()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO percolation_runs (
			run_id, grid_size, trials, seed, mean, stddev,
			confidence_lo, confidence_hi, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.GridSize, run.Trials, run.Seed, run.Mean, run.StdDev,
		run.ConfidenceLo, run.ConfidenceHi, run.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO percolation_trials (run_id, trial_index, open_sites, threshold)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare trial insert: %w", err)
	}
	defer stmt.Close()
	for _, t := range trials {
		if _, err := stmt.Exec(run.RunID, t.Index, t.OpenSites, t.Threshold); err != nil {
			return fmt.Errorf("insert trial %d: %w", t.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, grid_size, trials, seed, mean, stddev,
		       confidence_lo, confidence_hi, created_at_ns
		FROM percolation_runs WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(&r.RunID, &r.GridSize, &r.Trials, &r.Seed, &r.Mean, &r.StdDev,
		&r.ConfidenceLo, &r.ConfidenceHi, &r.CreatedAtNs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	return &r, nil
}

// ListRuns returns the most recent runs first. limit ≤ 0 returns all runs.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, grid_size, trials, seed, mean, stddev,
		       confidence_lo, confidence_hi, created_at_ns
		FROM percolation_runs
		ORDER BY created_at_ns DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.GridSize, &r.Trials, &r.Seed, &r.Mean, &r.StdDev,
			&r.ConfidenceLo, &r.ConfidenceHi, &r.CreatedAtNs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Trials returns the stored trials of a run ordered by trial index.
func (s *Store) Trials(runID string) ([]TrialRecord, error) {
	rows, err := s.db.Query(`
		SELECT trial_index, open_sites, threshold
		FROM percolation_trials WHERE run_id = ?
		ORDER BY trial_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	defer rows.Close()

	var out []TrialRecord
	for rows.Next() {
		var t TrialRecord
		if err := rows.Scan(&t.Index, &t.OpenSites, &t.Threshold); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

// DeleteRun removes a run and its trials.
func (s *Store) DeleteRun(runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM percolation_trials WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete trials: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM percolation_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	return tx.Commit()
}
