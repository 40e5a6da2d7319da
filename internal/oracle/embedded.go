package oracle

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"
)

// #region tuning

const (
	// maxSuggestions caps the candidate list per flagged word.
	maxSuggestions = 5
	// minSimilarity is the Jaro-Winkler floor below which a dictionary word
	// is not offered as a candidate.
	minSimilarity = 0.84
)

// #endregion tuning

// #region embedded-struct

// Embedded is an in-process Oracle backed directly by the active wordlist.
// It exists for hosts without an ispell binary and for tests: acceptance is
// exact (case-folded) wordlist membership, and candidates for flagged words
// are ranked by string similarity. Verdict semantics match the external
// oracle: accepted words are silent, flagged words carry zero or more
// candidates.
type Embedded struct {
	opts Options

	words   mapset.Set[string] // case-folded accept set
	entries []string           // wordlist entries, candidate pool
	pending []string
	opened  bool
	total   int
}

// NewEmbedded returns an embedded oracle with the given options.
func NewEmbedded(opts Options) *Embedded {
	return &Embedded{opts: opts}
}

// #endregion embedded-struct

// #region open

// Open loads the wordlist file: one word per line, blank lines and
// #-comments skipped.
func (o *Embedded) Open(wordlist string) error {
	if o.opened {
		return fmt.Errorf("%w: open while open", ErrProtocol)
	}

	f, err := os.Open(wordlist)
	if err != nil {
		return fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	words := mapset.NewSet[string]()
	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		if words.Add(strings.ToLower(entry)) {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read wordlist: %w", err)
	}

	o.words = words
	o.entries = entries
	o.pending = nil
	o.opened = true
	return nil
}

// #endregion open

// #region send

// Send queues one word for the current batch.
func (o *Embedded) Send(word string) error {
	if !o.opened {
		return fmt.Errorf("%w: send while closed", ErrProtocol)
	}
	o.pending = append(o.pending, word)
	return nil
}

// #endregion send

// #region drain

// Drain judges every queued word and returns the flagged ones.
func (o *Embedded) Drain() (Report, error) {
	if !o.opened {
		return nil, fmt.Errorf("%w: drain while closed", ErrProtocol)
	}

	report := make(Report)
	for _, word := range o.pending {
		if o.accepts(word) {
			continue
		}
		if _, seen := report[word]; seen {
			continue
		}
		report[word] = o.suggest(word)
		o.total++
	}
	o.pending = nil
	return report, nil
}

// accepts mirrors the external oracle's judgment: short words pass, known
// words pass, and with AllowCompound two known words run together pass.
func (o *Embedded) accepts(word string) bool {
	if len(word) <= o.opts.MinWordLength {
		return true
	}
	folded := strings.ToLower(word)
	if o.words.Contains(folded) {
		return true
	}
	if o.opts.AllowCompound {
		for i := 2; i <= len(folded)-2; i++ {
			if o.words.Contains(folded[:i]) && o.words.Contains(folded[i:]) {
				return true
			}
		}
	}
	return false
}

// suggest ranks wordlist entries by similarity to word. A nil return means
// flagged with no candidates.
func (o *Embedded) suggest(word string) []string {
	matches, err := edlib.FuzzySearchSetThreshold(
		strings.ToLower(word), o.entries, maxSuggestions, minSimilarity,
		edlib.JaroWinkler)
	if err != nil {
		return nil
	}
	var guesses []string
	for _, m := range matches {
		if m != "" {
			guesses = append(guesses, m)
		}
	}
	return guesses
}

// #endregion drain

// #region close

// Close drops the loaded wordlist; the oracle may be reopened.
func (o *Embedded) Close() error {
	o.words = nil
	o.entries = nil
	o.pending = nil
	o.opened = false
	return nil
}

// #endregion close

// #region total

// TotalFlagged returns the lifetime count of verdicts produced.
func (o *Embedded) TotalFlagged() int {
	return o.total
}

// #endregion total
