// Package checker drives one complete file check: tokenize every line,
// index word locations, submit each unique word to the spelling oracle once,
// and reconcile the verdicts back to line-numbered error records.
package checker

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"kodespel/internal/oracle"
	"kodespel/internal/tokenizer"
)

// #region checker-struct

// Checker spell-checks source files against a single Oracle. It owns the
// oracle's channel for the duration of each check; a Checker is not safe
// for concurrent use, so concurrent file checks each construct their own.
type Checker struct {
	oracle  oracle.Oracle
	opts    Options
	exclude *regexp.Regexp
	strip   *tokenizer.Stripper
}

// New builds a Checker around or. The exclude patterns are compiled here,
// once, so an invalid pattern fails the run before any file is touched.
func New(or oracle.Oracle, opts Options) (*Checker, error) {
	c := &Checker{oracle: or, opts: opts}
	if len(opts.ExcludePatterns) > 0 {
		expr := `(?i)\b(?:` + strings.Join(opts.ExcludePatterns, "|") + `)\b`
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile exclude patterns: %w", err)
		}
		c.exclude = re
	}
	if len(opts.StripLiterals) > 0 {
		c.strip = tokenizer.NewStripper(opts.StripLiterals)
	}
	return c, nil
}

// #endregion checker-struct

// #region check-file

// sniffLen is how many leading bytes are inspected for NUL to reject
// binary files.
const sniffLen = 8000

// CheckFile opens and checks one file. Binary files (NUL in the leading
// bytes) are rejected with a read error. filename doubles as the reporting
// label.
func (c *Checker) CheckFile(filename, wordlist string) (Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Result{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if bytes.IndexByte(head[:n], 0) >= 0 {
		return Result{}, fmt.Errorf("read %s: binary file", filename)
	}

	return c.Check(io.MultiReader(bytes.NewReader(head[:n]), f), filename, wordlist)
}

// #endregion check-file

// #region check

// Check runs one complete check of src against wordlist. The exchange is
// the safe default: index the whole file, open the oracle, write every
// unique word, half-close, then drain all verdicts.
func (c *Checker) Check(src io.Reader, filename, wordlist string) (Result, error) {
	index, err := c.buildIndex(src)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := c.oracle.Open(wordlist); err != nil {
		return Result{}, fmt.Errorf("check %s: %w", filename, err)
	}
	report, checkErr := c.exchange(index)
	closeErr := c.oracle.Close()
	if checkErr != nil {
		return Result{}, fmt.Errorf("check %s: %w", filename, checkErr)
	}

	res := Result{
		Records:   c.reconcile(index, report),
		Submitted: len(index.order),
		Flagged:   len(report),
	}
	if closeErr != nil {
		res.Warnings = append(res.Warnings, closeErr.Error())
	}
	return res, nil
}

// buildIndex scans src line by line, applying the exclude and strip
// pre-passes, and records every word occurrence.
func (c *Checker) buildIndex(src io.Reader) (*wordIndex, error) {
	index := newWordIndex()
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if c.exclude != nil {
			line = c.exclude.ReplaceAllString(line, "")
		}
		if c.strip != nil {
			line = c.strip.Apply(line)
		}
		for _, word := range tokenizer.SplitLine(line) {
			index.add(word, lineNum)
		}
	}
	return index, scanner.Err()
}

// exchange submits every unique word in first-seen order, signals
// end-of-input, and collects the verdicts.
func (c *Checker) exchange(index *wordIndex) (oracle.Report, error) {
	for _, word := range index.order {
		if err := c.oracle.Send(word); err != nil {
			return nil, err
		}
	}
	return c.oracle.Drain()
}

// #endregion check

// #region reconcile

// reconcile joins the verdicts against the word index. Iterates in
// discovery order so equal-line ties sort stably by first occurrence.
func (c *Checker) reconcile(index *wordIndex, report oracle.Report) []ErrorRecord {
	var records []ErrorRecord
	for _, word := range index.order {
		guesses, flagged := report[word]
		if !flagged {
			continue
		}
		// The oracle accepts "JSON" but not "json": swallow flags that are
		// only wrong because of case mismatch.
		if matchesOwnGuess(word, guesses) {
			continue
		}
		lines := index.lines[word]
		if c.opts.Unique {
			lines = lines[:1]
		}
		for _, line := range lines {
			records = append(records, ErrorRecord{Line: line, Word: word, Guesses: guesses})
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Line < records[j].Line
	})
	return records
}

func matchesOwnGuess(word string, guesses []string) bool {
	for _, g := range guesses {
		if strings.EqualFold(word, g) {
			return true
		}
	}
	return false
}

// #endregion reconcile
