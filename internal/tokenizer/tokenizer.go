// Package tokenizer splits lines of source code into natural-language words.
// The trick is knowing how to take identifiers apart: getRemaningObjects
// becomes "get", "Remaning", "Objects"; get_remaning_objects, SOME_CONSTENT
// and HTTPRepsonse are all handled correctly.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// #region grammar

// A word can match one of 3 alternatives, tried in order at each position:
//
//  1. A run of letters interspersed with single apostrophes: aren't,
//     O'Reilly, rock'n'roll. Covers regular English in comments and string
//     literals. Not the common case, but it has to come first or alternative
//     2 would split it at the apostrophe.
//
//  2. A string of letters, optionally capitalized. Covers almost everything:
//     getNext, get_next, GetNext, HTTP_NOT_FOUND, HttpResponse.
//
//  3. A string of uppercase letters not immediately followed by a lowercase
//     letter. Needed for uppercase acronyms in mixed-case identifiers:
//     "HTTPResponse", "getHTTPResponse".
//
// Digits and punctuation are never part of a word and act as separators.
// The lookahead in alternative 3 is why this is regexp2 and not stdlib RE2.
const wordPattern = `[A-Za-z]+(?:'[A-Za-z]+)+` +
	`|[A-Z]?[a-z]+` +
	`|[A-Z]+(?![a-z])`

var wordRE = regexp2.MustCompile(wordPattern, regexp2.None)

// #endregion grammar

// #region split

// SplitLine returns the words contained in one line of source text, left to
// right. Eg. "match = pat.search(current_line, 0, pos)" splits into
// ["match", "pat", "search", "current", "line", "pos"]. Pure: no state
// carries across calls or lines.
func SplitLine(line string) []string {
	var words []string
	m, _ := wordRE.FindStringMatch(line)
	for m != nil {
		words = append(words, m.String())
		m, _ = wordRE.FindNextMatch(m)
	}
	return words
}

// #endregion split

// #region stripper

// Stripper removes caller-specified literal substrings from a line before
// tokenization, so known non-words (boilerplate license text, project codes)
// never reach the oracle. Matches are exact and whole-word: a literal is only
// removed when not flanked by letters. Removed text is replaced by a space,
// so line numbers are unaffected.
type Stripper struct {
	literals []string
}

// NewStripper builds a Stripper for the given literals. Empty literals are
// dropped. A nil or empty list yields a Stripper whose Apply is the identity.
func NewStripper(literals []string) *Stripper {
	s := &Stripper{}
	for _, lit := range literals {
		if lit != "" {
			s.literals = append(s.literals, lit)
		}
	}
	return s
}

// Apply returns line with every whole-word occurrence of each literal
// replaced by a single space.
func (s *Stripper) Apply(line string) string {
	for _, lit := range s.literals {
		line = stripLiteral(line, lit)
	}
	return line
}

func stripLiteral(line, lit string) string {
	var b strings.Builder
	for {
		i := strings.Index(line, lit)
		if i < 0 {
			break
		}
		end := i + len(lit)
		if wordBounded(line, i, end) {
			b.WriteString(line[:i])
			b.WriteByte(' ')
		} else {
			b.WriteString(line[:end])
		}
		line = line[end:]
	}
	b.WriteString(line)
	return b.String()
}

// wordBounded reports whether line[start:end] is not flanked by letters.
func wordBounded(line string, start, end int) bool {
	if start > 0 {
		r := rune(line[start-1])
		if unicode.IsLetter(r) {
			return false
		}
	}
	if end < len(line) {
		r := rune(line[end])
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// #endregion stripper
