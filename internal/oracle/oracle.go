// Package oracle defines the spelling oracle abstraction and its
// implementations: an external ispell process driven over a line protocol,
// and an embedded in-process checker for hosts without ispell.
package oracle

// #region report

// Report maps each flagged word to its suggested replacements. A word absent
// from the report was accepted; a word present with a nil slice was flagged
// with no suggestions.
type Report map[string][]string

// Flagged reports whether word drew a verdict, distinguishing "flagged with
// no suggestions" from "accepted".
func (r Report) Flagged(word string) bool {
	_, ok := r[word]
	return ok
}

// #endregion report

// #region options

// Options tunes how the oracle judges words. They take effect on Open, so
// set them before opening a batch.
type Options struct {
	// AllowCompound permits unhyphenated compound words, eg. "getall".
	AllowCompound bool
	// MinWordLength makes the oracle accept any word of this many characters
	// or fewer without checking it.
	MinWordLength int
}

// #endregion options

// #region interface

// Oracle checks batches of words against a wordlist. One batch per
// Open/Drain cycle: Open binds the wordlist, Send submits words, Drain
// signals end-of-input and collects every verdict, Close releases the
// channel. After Close the oracle may be reopened, typically with a
// different wordlist. An Oracle is not safe for concurrent use; concurrent
// checks each own their own instance.
type Oracle interface {
	Open(wordlist string) error
	Send(word string) error
	Drain() (Report, error)
	Close() error

	// TotalFlagged is a lifetime diagnostic counter of verdicts seen across
	// all batches since the oracle was created.
	TotalFlagged() int
}

// #endregion interface
