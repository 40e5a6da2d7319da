package history

// #region imports
import (
	"time"
)

// #endregion imports

// #region types

// RunRecord summarizes one kodespel invocation.
type RunRecord struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	Wordlist       string
	FilesChecked   int
	FilesErrored   int
	WordsSubmitted int
	Misspellings   int
}

// Finding is one misspelling occurrence recorded for a run.
type Finding struct {
	RunID     string
	File      string
	Line      int
	Word      string
	Guesses   []string
	CreatedAt time.Time
}

// #endregion types
