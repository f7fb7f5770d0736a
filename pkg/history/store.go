// Package history persists run summaries in a local SQLite
// database so pass-rate trends survive across invocations.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"digital.vasic.careerquest/pkg/report"
)

// RunRecord is one suite run as stored in the database.
type RunRecord struct {
	ID          string    `db:"id"`
	BaseURL     string    `db:"base_url"`
	GeneratedAt time.Time `db:"generated_at"`
	TotalChecks int       `db:"total_checks"`
	Passed      int       `db:"passed"`
	Failed      int       `db:"failed"`
	PassRate    float64   `db:"pass_rate"`
	DurationMs  int64     `db:"duration_ms"`
}

// CheckRecord is one check result within a stored run.
type CheckRecord struct {
	RunID            string `db:"run_id"`
	CheckID          string `db:"check_id"`
	CheckName        string `db:"check_name"`
	Status           string `db:"status"`
	DurationMs       int64  `db:"duration_ms"`
	AssertionsPassed int    `db:"assertions_passed"`
	AssertionsTotal  int    `db:"assertions_total"`
	Detail           string `db:"detail"`
}

// Store wraps the SQLite connection.
type Store struct {
	db *sqlx.DB
}

// Open connects to the history database at path, creating the
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf(
				"create history directory: %w", err,
			)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect history db: %w", err)
	}

	// SQLite does not support multiple writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			base_url TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL,
			total_checks INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			pass_rate REAL NOT NULL,
			duration_ms INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS check_results (
			run_id TEXT NOT NULL REFERENCES runs(id),
			check_id TEXT NOT NULL,
			check_name TEXT NOT NULL,
			status TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			assertions_passed INTEGER NOT NULL,
			assertions_total INTEGER NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, check_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("create check_results table: %w", err)
	}
	return nil
}

// SaveRun stores a run summary and its per-check rows in one
// transaction.
func (s *Store) SaveRun(summary *report.RunSummary) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (
			id, base_url, generated_at, total_checks,
			passed, failed, pass_rate, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		summary.ID,
		summary.BaseURL,
		summary.GeneratedAt,
		summary.TotalChecks,
		summary.PassedChecks,
		summary.FailedChecks,
		summary.PassRate,
		summary.TotalDuration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, c := range summary.Checks {
		_, err = tx.Exec(`
			INSERT INTO check_results (
				run_id, check_id, check_name, status,
				duration_ms, assertions_passed,
				assertions_total, detail
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			summary.ID,
			string(c.CheckID),
			c.CheckName,
			c.Status,
			c.Duration.Milliseconds(),
			c.AssertionsPassed,
			c.AssertionsTotal,
			c.Detail,
		)
		if err != nil {
			return fmt.Errorf(
				"insert check result %s: %w", c.CheckID, err,
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := s.db.Select(&runs, `
		SELECT * FROM runs
		ORDER BY generated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent runs: %w", err)
	}
	return runs, nil
}

// CheckResults returns the per-check rows for a run, in check
// ID order.
func (s *Store) CheckResults(runID string) ([]CheckRecord, error) {
	var results []CheckRecord
	err := s.db.Select(&results, `
		SELECT * FROM check_results
		WHERE run_id = ?
		ORDER BY check_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf(
			"select check results for %s: %w", runID, err,
		)
	}
	return results, nil
}

// FailureStreak returns how many consecutive recent runs failed,
// newest first, stopping at the first passing run.
func (s *Store) FailureStreak() (int, error) {
	var failed []int
	err := s.db.Select(&failed, `
		SELECT failed FROM runs
		ORDER BY generated_at DESC
	`)
	if err != nil {
		return 0, fmt.Errorf("select run outcomes: %w", err)
	}
	streak := 0
	for _, f := range failed {
		if f == 0 {
			break
		}
		streak++
	}
	return streak, nil
}
