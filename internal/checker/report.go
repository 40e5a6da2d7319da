package checker

import (
	"fmt"
	"io"
	"strings"
)

// #region report

// WriteReport formats records one per line to w:
//
//	filename:line: word: suggestion1, suggestion2?
//
// A word flagged with no suggestions keeps the trailing "?" with an empty
// list. Pure formatting; the only side effect is writing to w.
func WriteReport(w io.Writer, filename string, records []ErrorRecord) error {
	for _, rec := range records {
		_, err := fmt.Fprintf(w, "%s:%d: %s: %s?\n",
			filename, rec.Line, rec.Word, strings.Join(rec.Guesses, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}

// #endregion report
