package history

import (
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun() (RunRecord, []Finding) {
	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	run := RunRecord{
		StartedAt:      started,
		FinishedAt:     started.Add(2 * time.Second),
		Wordlist:       "base,go",
		FilesChecked:   3,
		FilesErrored:   1,
		WordsSubmitted: 412,
		Misspellings:   2,
	}
	findings := []Finding{
		{File: "main.go", Line: 10, Word: "recieve", Guesses: []string{"receive", "relieve"}},
		{File: "util.go", Line: 3, Word: "xyzzy"},
	}
	return run, findings
}

func TestRecordAndGetRun(t *testing.T) {
	s := tempStore(t)
	run, findings := sampleRun()

	id, err := s.RecordRun(run, findings)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if id == "" {
		t.Fatal("RecordRun returned empty id")
	}

	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Wordlist != run.Wordlist || got.FilesChecked != 3 || got.Misspellings != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, run.StartedAt)
	}
}

func TestRecordRunKeepsExplicitID(t *testing.T) {
	s := tempStore(t)
	run, _ := sampleRun()
	run.RunID = "run-fixed"

	id, err := s.RecordRun(run, nil)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if id != "run-fixed" {
		t.Errorf("id = %q, want run-fixed", id)
	}
}

func TestRunFindings(t *testing.T) {
	s := tempStore(t)
	run, findings := sampleRun()

	id, err := s.RecordRun(run, findings)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := s.RunFindings(id)
	if err != nil {
		t.Fatalf("RunFindings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d findings, want 2", len(got))
	}
	if got[0].File != "main.go" || got[0].Word != "recieve" {
		t.Errorf("first finding = %+v", got[0])
	}
	if len(got[0].Guesses) != 2 || got[0].Guesses[0] != "receive" {
		t.Errorf("guesses = %v, want [receive relieve]", got[0].Guesses)
	}
	if got[1].Guesses != nil {
		t.Errorf("empty guesses should stay nil, got %v", got[1].Guesses)
	}
	if got[0].RunID != id || got[1].RunID != id {
		t.Error("findings should carry the run id")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := tempStore(t)
	run, _ := sampleRun()

	older := run
	older.RunID = "run-old"
	if _, err := s.RecordRun(older, nil); err != nil {
		t.Fatalf("RecordRun old: %v", err)
	}

	newer := run
	newer.RunID = "run-new"
	newer.StartedAt = run.StartedAt.Add(time.Hour)
	if _, err := s.RecordRun(newer, nil); err != nil {
		t.Fatalf("RecordRun new: %v", err)
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "run-new" || runs[1].RunID != "run-old" {
		t.Errorf("order wrong: %+v", runs)
	}

	runs, err = s.ListRuns(1)
	if err != nil {
		t.Fatalf("ListRuns limit: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "run-new" {
		t.Errorf("limit 1 should keep only the newest run: %+v", runs)
	}
}

func TestGetRunMissing(t *testing.T) {
	s := tempStore(t)
	if _, err := s.GetRun("nope"); err == nil {
		t.Error("missing run should error")
	}
}
