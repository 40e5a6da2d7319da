// ispellfake speaks just enough of the ispell -a pipe protocol to stand in
// for the real binary during development and manual testing: banner line,
// terse-mode directive, ^word requests, &/# verdicts with a trailing blank
// line per request. Acceptance and suggestions come from the -p wordlist.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"
)

// #region main

func main() {
	log.SetFlags(0)
	log.SetPrefix("ispellfake: ")

	pipeMode := flag.Bool("a", false, "pipe mode (the only supported mode)")
	compound := flag.Bool("C", false, "accept run-together word pairs")
	wordLen := flag.Int("W", 0, "accept words of this length or shorter")
	wordlist := flag.String("p", "", "personal wordlist file")
	flag.Parse()

	if !*pipeMode {
		fmt.Fprintln(os.Stderr, "usage: ispellfake -a [-C] [-W n] [-p wordlist]")
		os.Exit(2)
	}

	o := &oracle{
		compound: *compound,
		wordLen:  *wordLen,
		words:    mapset.NewSet[string](),
	}
	if *wordlist != "" {
		if err := o.load(*wordlist); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if err := o.serve(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

// #endregion main

// #region oracle

const banner = "@(#) International Ispell Version 3.4.06 (but really ispellfake)\n"

type oracle struct {
	compound bool
	wordLen  int
	terse    bool

	words   mapset.Set[string] // case-folded accept set
	entries []string           // candidate pool for suggestions
}

func (o *oracle) load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load wordlist: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		if o.words.Add(strings.ToLower(entry)) {
			o.entries = append(o.entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("load wordlist: %w", err)
	}
	return nil
}

// serve runs the request loop: one reply block (verdict plus blank separator)
// per request line, until stdin closes.
func (o *oracle) serve(in *os.File, outFile *os.File) error {
	out := bufio.NewWriter(outFile)
	if _, err := out.WriteString(banner); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			continue
		case line == "!":
			o.terse = true
			continue
		case strings.HasPrefix(line, "^"):
			o.reply(out, line[1:])
		default:
			// Anything else would be whole-line checking; unsupported here.
			fmt.Fprintln(out, "")
		}
		if err := out.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (o *oracle) reply(out *bufio.Writer, word string) {
	if o.accepts(word) {
		if !o.terse {
			fmt.Fprintln(out, "*")
		}
		fmt.Fprintln(out, "")
		return
	}

	guesses := o.suggest(word)
	if len(guesses) > 0 {
		fmt.Fprintf(out, "& %s %d 0: %s\n", word, len(guesses), strings.Join(guesses, ", "))
	} else {
		fmt.Fprintf(out, "# %s 0\n", word)
	}
	fmt.Fprintln(out, "")
}

// #endregion oracle

// #region judgement

const (
	maxSuggestions = 5
	minSimilarity  = 0.84
)

func (o *oracle) accepts(word string) bool {
	if len(word) <= o.wordLen {
		return true
	}
	folded := strings.ToLower(word)
	if o.words.Contains(folded) {
		return true
	}
	if o.compound {
		for i := 2; i <= len(folded)-2; i++ {
			if o.words.Contains(folded[:i]) && o.words.Contains(folded[i:]) {
				return true
			}
		}
	}
	return false
}

func (o *oracle) suggest(word string) []string {
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

// #endregion judgement
