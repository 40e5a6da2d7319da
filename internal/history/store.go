// Package history persists check runs and their findings in SQLite, for the
// checklog inspector and for tracking how a codebase's spelling drifts over
// time.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	started_at      TEXT NOT NULL,
	finished_at     TEXT NOT NULL,
	wordlist        TEXT NOT NULL,
	files_checked   INTEGER NOT NULL,
	files_errored   INTEGER NOT NULL,
	words_submitted INTEGER NOT NULL,
	misspellings    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	file        TEXT NOT NULL,
	line        INTEGER NOT NULL,
	word        TEXT NOT NULL,
	guesses     TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
CREATE INDEX IF NOT EXISTS idx_findings_word ON findings(word);
`

// #endregion schema

// #region store-struct
// Store manages run history in SQLite.
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

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region record-run
// RecordRun persists one run and its findings in a single transaction and
// returns the generated run id.
func (s *Store) RecordRun(run RunRecord, findings []Finding) (string, error) {
	id := run.RunID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs
		 (run_id, started_at, finished_at, wordlist,
		  files_checked, files_errored, words_submitted, misspellings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Wordlist,
		run.FilesChecked,
		run.FilesErrored,
		run.WordsSubmitted,
		run.Misspellings,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, f := range findings {
		_, err = tx.Exec(
			`INSERT INTO findings (run_id, file, line, word, guesses, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, f.File, f.Line, f.Word,
			strings.Join(f.Guesses, ", "),
			now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return "", fmt.Errorf("insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// #endregion record-run

// #region queries
// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, started_at, finished_at, wordlist,
		        files_checked, files_errored, words_submitted, misspellings
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished string
		err := rows.Scan(&rec.RunID, &started, &finished, &rec.Wordlist,
			&rec.FilesChecked, &rec.FilesErrored,
			&rec.WordsSubmitted, &rec.Misspellings)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by id.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var started, finished string
	err := s.db.QueryRow(
		`SELECT run_id, started_at, finished_at, wordlist,
		        files_checked, files_errored, words_submitted, misspellings
		 FROM runs WHERE run_id = ?`, runID).
		Scan(&rec.RunID, &started, &finished, &rec.Wordlist,
			&rec.FilesChecked, &rec.FilesErrored,
			&rec.WordsSubmitted, &rec.Misspellings)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	return rec, nil
}

// RunFindings returns a run's findings ordered by file then line.
func (s *Store) RunFindings(runID string) ([]Finding, error) {
	rows, err := s.db.Query(
		`SELECT run_id, file, line, word, guesses, created_at
		 FROM findings WHERE run_id = ? ORDER BY file, line`, runID)
	if err != nil {
		return nil, fmt.Errorf("run findings: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var f Finding
		var guesses, created string
		if err := rows.Scan(&f.RunID, &f.File, &f.Line, &f.Word, &guesses, &created); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		if guesses != "" {
			f.Guesses = strings.Split(guesses, ", ")
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// #endregion queries
