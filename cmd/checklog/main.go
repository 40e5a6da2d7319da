package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"kodespel/internal/history"
)

// #region main

func main() {
	dbPath := flag.String("db", os.Getenv("KODESPEL_DB"), "path to the run-history database")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: checklog --db path/to/kodespel.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	store, err := history.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runDetailMode(store, *runID, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID        string `json:"run_id"`
	StartedAt    string `json:"started_at"`
	Duration     string `json:"duration"`
	Wordlist     string `json:"wordlist"`
	Files        int    `json:"files_checked"`
	Errored      int    `json:"files_errored"`
	Submitted    int    `json:"words_submitted"`
	Misspellings int    `json:"misspellings"`
}

func runListMode(store *history.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	// Store returns DESC, reverse for chronological display.
	rows := make([]listRow, len(runs))
	for i, run := range runs {
		rows[len(runs)-1-i] = listRow{
			RunID:        run.RunID,
			StartedAt:    run.StartedAt.Format("2006-01-02T15:04:05Z"),
			Duration:     run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
			Wordlist:     run.Wordlist,
			Files:        run.FilesChecked,
			Errored:      run.FilesErrored,
			Submitted:    run.WordsSubmitted,
			Misspellings: run.Misspellings,
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	return printListTable(rows)
}

func printListTable(rows []listRow) error {
	fmt.Printf("%-12s  %-20s  %8s  %5s  %5s  %9s  %6s  %s\n",
		"Run", "Started", "Elapsed", "Files", "Errs", "Submitted", "Missps", "Wordlist")
	fmt.Printf("%-12s+-%-20s+-%8s+-%5s+-%5s+-%9s+-%6s+-%s\n",
		"------------", "--------------------", "--------", "-----", "-----",
		"---------", "------", "--------")

	for _, r := range rows {
		fmt.Printf("%-12s  %-20s  %8s  %5d  %5d  %9d  %6d  %s\n",
			shortID(r.RunID), r.StartedAt, r.Duration,
			r.Files, r.Errored, r.Submitted, r.Misspellings, r.Wordlist)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	listRow
	Findings []findingRow `json:"findings"`
}

type findingRow struct {
	File    string   `json:"file"`
	Line    int      `json:"line"`
	Word    string   `json:"word"`
	Guesses []string `json:"guesses,omitempty"`
}

func runDetailMode(store *history.Store, runID string, jsonOut bool) error {
	run, err := resolveRun(store, runID)
	if err != nil {
		return err
	}
	findings, err := store.RunFindings(run.RunID)
	if err != nil {
		return err
	}

	out := detailOutput{
		listRow: listRow{
			RunID:        run.RunID,
			StartedAt:    run.StartedAt.Format("2006-01-02T15:04:05Z"),
			Duration:     run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
			Wordlist:     run.Wordlist,
			Files:        run.FilesChecked,
			Errored:      run.FilesErrored,
			Submitted:    run.WordsSubmitted,
			Misspellings: run.Misspellings,
		},
	}
	for _, f := range findings {
		out.Findings = append(out.Findings, findingRow{
			File: f.File, Line: f.Line, Word: f.Word, Guesses: f.Guesses,
		})
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:       %s\n", out.RunID)
	fmt.Printf("Started:   %s\n", out.StartedAt)
	fmt.Printf("Elapsed:   %s\n", out.Duration)
	fmt.Printf("Wordlist:  %s\n", out.Wordlist)
	fmt.Printf("Files:     %d checked, %d errored\n", out.Files, out.Errored)
	fmt.Printf("Words:     %d submitted, %d misspelled\n", out.Submitted, out.Misspellings)

	if len(out.Findings) > 0 {
		fmt.Printf("\nFindings:\n")
		for _, f := range out.Findings {
			fmt.Printf("  %s:%d: %s: %s?\n",
				f.File, f.Line, f.Word, strings.Join(f.Guesses, ", "))
		}
	}
	return nil
}

// resolveRun accepts a full run id or an unambiguous prefix, so the short ids
// from list mode work directly.
func resolveRun(store *history.Store, runID string) (history.RunRecord, error) {
	run, err := store.GetRun(runID)
	if err == nil {
		return run, nil
	}

	runs, listErr := store.ListRuns(1000)
	if listErr != nil {
		return history.RunRecord{}, err
	}
	var match *history.RunRecord
	for i := range runs {
		if strings.HasPrefix(runs[i].RunID, runID) {
			if match != nil {
				return history.RunRecord{}, fmt.Errorf("run id %q is ambiguous", runID)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return history.RunRecord{}, err
	}
	return *match, nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
