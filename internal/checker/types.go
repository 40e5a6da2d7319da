package checker

// #region error-record

// ErrorRecord is one reported misspelling occurrence: the 1-based line it
// appeared on, the word as it appeared in the source, and the oracle's
// suggested replacements (possibly empty).
type ErrorRecord struct {
	Line    int
	Word    string
	Guesses []string
}

// #endregion error-record

// #region options

// Options tunes one Checker. Oracle-side tunables (compound words, minimum
// word length) belong to oracle.Options and are fixed when the oracle is
// constructed, before any channel is opened.
type Options struct {
	// Unique collapses repeated occurrences of the same misspelling to its
	// first (lowest) line.
	Unique bool
	// ExcludePatterns are regular expressions removed from each line before
	// tokenization. Compiled once as a single case-insensitive alternation
	// with word-boundary semantics.
	ExcludePatterns []string
	// StripLiterals are exact substrings removed from each line at word
	// boundaries before tokenization.
	StripLiterals []string
}

// #endregion options

// #region result

// Result summarizes one file check. Findings are data, not errors: an empty
// Records slice is a clean file.
type Result struct {
	// Records is sorted ascending by line number, ties in discovery order.
	Records []ErrorRecord
	// Submitted counts unique words sent to the oracle.
	Submitted int
	// Flagged counts raw oracle verdicts, before case-fold suppression.
	Flagged int
	// Warnings are non-fatal conditions observed during the check, such as
	// a non-zero oracle exit after all verdicts were read.
	Warnings []string
}

// #endregion result

// #region word-index

// wordIndex maps each word to the 1-based lines it occurred on, preserving
// first-seen order so every unique word is submitted to the oracle exactly
// once. Lines are recorded in ascending order as the file is scanned; a word
// repeated on one line occupies one slot per occurrence.
type wordIndex struct {
	lines map[string][]int
	order []string
}

func newWordIndex() *wordIndex {
	return &wordIndex{lines: make(map[string][]int)}
}

func (x *wordIndex) add(word string, line int) {
	if _, seen := x.lines[word]; !seen {
		x.order = append(x.order, word)
	}
	x.lines[word] = append(x.lines[word], line)
}

// #endregion word-index
