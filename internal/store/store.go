// Package store persists assessment runs in SQLite: per-run scores and
// metric values for inspection, plus a run log and the cross-run metric
// history that feeds dynamic benchmarks.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/quality-assessor/internal/assess"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS assessment_runs (
	run_id       TEXT PRIMARY KEY,
	app_name     TEXT NOT NULL,
	app_type     TEXT NOT NULL,
	overall      REAL NOT NULL,
	created_at   TEXT NOT NULL,
	report_json  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goal_scores (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id  TEXT NOT NULL,
	name    TEXT NOT NULL,
	path    TEXT NOT NULL,
	score   REAL NOT NULL,
	weight  REAL NOT NULL,
	metrics INTEGER NOT NULL,
	FOREIGN KEY (run_id) REFERENCES assessment_runs(run_id)
);
CREATE INDEX IF NOT EXISTS idx_goal_scores_name ON goal_scores(name);

CREATE TABLE IF NOT EXISTS metric_values (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	acronym     TEXT NOT NULL,
	name        TEXT NOT NULL,
	unit        TEXT NOT NULL,
	value       REAL NOT NULL,
	interpreted REAL NOT NULL,
	goal        TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES assessment_runs(run_id)
);
CREATE INDEX IF NOT EXISTS idx_metric_values_acronym ON metric_values(acronym);

CREATE TABLE IF NOT EXISTS run_log (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL,
	stage      TEXT NOT NULL,
	decision   TEXT NOT NULL,
	reason     TEXT,
	created_at TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store manages assessment persistence in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region save-run

// SaveRun writes one assessment result transactionally: the run row with
// its full JSON report, plus the per-goal and per-metric rows.
func (s *Store) SaveRun(res *assess.Result) error {
	report, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO assessment_runs (run_id, app_name, app_type, overall, created_at, report_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.RunID, res.Application.Name, res.Application.Type, res.Overall,
		res.CreatedAt.Format(time.RFC3339Nano), string(report),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, g := range res.Goals {
		_, err = tx.Exec(
			`INSERT INTO goal_scores (run_id, name, path, score, weight, metrics)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			res.RunID, g.Name, g.Path, g.Score, g.Weight, g.Metrics,
		)
		if err != nil {
			return fmt.Errorf("insert goal score: %w", err)
		}
	}

	for _, m := range res.Metrics {
		_, err = tx.Exec(
			`INSERT INTO metric_values (run_id, acronym, name, unit, value, interpreted, goal)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			res.RunID, m.Acronym, m.Name, m.Unit, m.Value, m.Interpreted, m.Goal,
		)
		if err != nil {
			return fmt.Errorf("insert metric value: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// #endregion save-run

// #region queries

// RunSummary is one row of the run listing.
type RunSummary struct {
	RunID     string
	AppName   string
	AppType   string
	Overall   float64
	CreatedAt time.Time
}

// RecentRuns returns the n most recent runs, newest first.
func (s *Store) RecentRuns(n int) ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT run_id, app_name, app_type, overall, created_at
		 FROM assessment_runs ORDER BY created_at DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt string
		if err := rows.Scan(&r.RunID, &r.AppName, &r.AppType, &r.Overall, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunDetail loads the full report of one run.
func (s *Store) RunDetail(runID string) (*assess.Result, error) {
	var report string
	err := s.db.QueryRow(
		`SELECT report_json FROM assessment_runs WHERE run_id = ?`, runID,
	).Scan(&report)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	var res assess.Result
	if err := json.Unmarshal([]byte(report), &res); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &res, nil
}

// MetricHistory returns up to limit past raw values of a metric, oldest
// first. Dynamic benchmarks seed from this.
func (s *Store) MetricHistory(acronym string, limit int) ([]float64, error) {
	rows, err := s.db.Query(
		`SELECT mv.value FROM metric_values mv
		 JOIN assessment_runs r ON r.run_id = mv.run_id
		 WHERE mv.acronym = ?
		 ORDER BY r.created_at DESC LIMIT ?`, acronym, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query metric history: %w", err)
	}
	defer rows.Close()

	var newestFirst []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		newestFirst = append(newestFirst, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]float64, len(newestFirst))
	for i, v := range newestFirst {
		out[len(out)-1-i] = v
	}
	return out, nil
}

// #endregion queries

// #region run-log

// LogEntry is one appended decision record of a run.
type LogEntry struct {
	RunID     string
	Stage     string
	Decision  string
	Reason    string
	CreatedAt time.Time
}

// Log appends one entry to the run log.
func (s *Store) Log(e LogEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO run_log (run_id, stage, decision, reason, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.RunID, e.Stage, e.Decision, e.Reason, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// RunLog returns the log entries of one run in append order.
func (s *Store) RunLog(runID string) ([]LogEntry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, stage, decision, reason, created_at
		 FROM run_log WHERE run_id = ? ORDER BY id ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run log: %w", err)
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		var createdAt string
		if err := rows.Scan(&e.RunID, &e.Stage, &e.Decision, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion run-log

// #region goal-history

// GoalPoint is one historical score of a goal.
type GoalPoint struct {
	RunID     string
	Score     float64
	CreatedAt time.Time
}

// GoalHistory returns up to limit past scores of a goal, newest first.
func (s *Store) GoalHistory(name string, limit int) ([]GoalPoint, error) {
	rows, err := s.db.Query(
		`SELECT gs.run_id, gs.score, r.created_at
		 FROM goal_scores gs
		 JOIN assessment_runs r ON r.run_id = gs.run_id
		 WHERE gs.name = ? COLLATE NOCASE
		 ORDER BY r.created_at DESC LIMIT ?`, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query goal history: %w", err)
	}
	defer rows.Close()

	var out []GoalPoint
	for rows.Next() {
		var p GoalPoint
		var createdAt string
		if err := rows.Scan(&p.RunID, &p.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("scan goal point: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// #endregion queries
