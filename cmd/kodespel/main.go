package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"kodespel/internal/checker"
	"kodespel/internal/config"
	"kodespel/internal/history"
	"kodespel/internal/oracle"
	"kodespel/internal/wordlist"
)

// #region flags

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	dicts    stringList
	ignore   stringList
	strip    stringList
	all      bool
	unique   bool
	compound bool
	wordLen  int
	jobs     int

	listDicts bool
	dumpDict  bool
	makeDict  string

	oracleKind string
	command    string
	logDB      string
}

func parseFlags() (options, []string) {
	var opts options
	flag.Var(&opts.dicts, "d", "dictionary name or file (repeatable)")
	flag.Var(&opts.ignore, "I", "regex whose matches are never checked (repeatable)")
	flag.Var(&opts.strip, "S", "literal substring removed before checking (repeatable)")
	flag.BoolVar(&opts.all, "a", false, "report every occurrence of each misspelling")
	flag.BoolVar(&opts.unique, "u", true, "report each misspelling once, at its first line")
	flag.BoolVar(&opts.compound, "compound", true, "accept run-together word pairs")
	flag.IntVar(&opts.wordLen, "W", 3, "accept words of this length or shorter")
	flag.IntVar(&opts.jobs, "j", runtime.NumCPU(), "check up to N files concurrently")
	flag.BoolVar(&opts.listDicts, "list-dicts", false, "list builtin dictionaries and exit")
	flag.BoolVar(&opts.dumpDict, "dump-dict", false, "dump the effective wordlist and exit")
	flag.StringVar(&opts.makeDict, "make-dict", "", "write unknown words to `file` instead of reporting")
	flag.StringVar(&opts.oracleKind, "oracle", "", "oracle implementation: ispell or embedded")
	flag.StringVar(&opts.command, "command", "", "oracle binary to spawn (default ispell)")
	flag.StringVar(&opts.logDB, "log-db", "", "record this run in a history database")
	flag.Parse()
	return opts, flag.Args()
}

// applyConfig fills in every option the command line left untouched from the
// discovered config file. flag.Visit only sees flags the user actually set.
func applyConfig(opts *options, cfg config.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["d"] {
		opts.dicts = append(opts.dicts, cfg.Dictionaries...)
	}
	if !set["I"] {
		opts.ignore = append(opts.ignore, cfg.Ignore...)
	}
	if !set["S"] {
		opts.strip = append(opts.strip, cfg.Strip...)
	}
	if !set["u"] && !set["a"] {
		opts.unique = config.BoolOr(cfg.Unique, opts.unique)
	}
	if !set["compound"] {
		opts.compound = config.BoolOr(cfg.Compound, opts.compound)
	}
	if !set["W"] {
		opts.wordLen = config.IntOr(cfg.WordLen, opts.wordLen)
	}
	if !set["j"] {
		opts.jobs = config.IntOr(cfg.Jobs, opts.jobs)
	}
	if !set["oracle"] {
		opts.oracleKind = config.StringOr(opts.oracleKind, cfg.Oracle)
	}
	if !set["command"] {
		opts.command = config.StringOr(opts.command, cfg.Command)
	}
	if !set["log-db"] {
		opts.logDB = config.StringOr(opts.logDB, cfg.LogDB)
	}
}

// #endregion flags

// #region main

func main() {
	log.SetFlags(0)
	log.SetPrefix("kodespel: ")

	opts, args := parseFlags()

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg, _, err := config.Discover(wd)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	applyConfig(&opts, cfg)
	if opts.logDB == "" {
		opts.logDB = os.Getenv("KODESPEL_DB")
	}
	if opts.all {
		opts.unique = false
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}

	builtins := wordlist.NewBuiltins()

	if opts.listDicts {
		for _, name := range builtins.Names() {
			fmt.Println(name)
		}
		return
	}

	cache := wordlist.NewCache(builtins)
	defer cache.Close()

	if opts.dumpDict {
		if err := dumpDict(cache, opts); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: kodespel [options] file-or-dir ...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	inputs, err := wordlist.FindInputs(args)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(inputs) == 0 {
		log.Fatalf("no source files under %s", strings.Join(args, " "))
	}

	run := checkAll(cache, opts, inputs)

	if opts.makeDict != "" {
		if err := writeMakeDict(opts.makeDict, run.results); err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		for _, fr := range run.results {
			checker.WriteReport(os.Stdout, fr.input, fr.result.Records)
		}
	}

	if opts.logDB != "" {
		if err := recordRun(opts.logDB, run); err != nil {
			log.Printf("history: %v", err)
		}
	}

	if run.errored > 0 || run.misspellings > 0 {
		os.Exit(1)
	}
}

// #endregion main

// #region check-all

type fileResult struct {
	input  string
	result checker.Result
	err    error
}

type runSummary struct {
	started      time.Time
	finished     time.Time
	wordlist     string
	results      []fileResult
	checked      int
	errored      int
	submitted    int
	misspellings int
}

// checkAll checks every input, up to jobs files in flight. Each check owns a
// fresh oracle so channels are never shared between goroutines; results are
// collected by index and reported in input order after the group finishes.
func checkAll(cache *wordlist.Cache, opts options, inputs []string) runSummary {
	run := runSummary{
		started: time.Now(),
		results: make([]fileResult, len(inputs)),
	}

	var g errgroup.Group
	g.SetLimit(opts.jobs)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			run.results[i] = checkOne(cache, opts, input)
			return nil
		})
	}
	g.Wait()
	run.finished = time.Now()

	warned := make(map[string]bool)
	for i := range run.results {
		fr := &run.results[i]
		if fr.err != nil {
			log.Printf("%s: %v", fr.input, fr.err)
			run.errored++
			continue
		}
		run.checked++
		run.submitted += fr.result.Submitted
		run.misspellings += len(fr.result.Records)
		for _, w := range fr.result.Warnings {
			if !warned[w] {
				warned[w] = true
				log.Printf("warning: %s", w)
			}
		}
	}
	run.wordlist = strings.Join(dictNames(opts, ""), ",")
	return run
}

// checkOne resolves the per-file wordlist and runs one complete check.
func checkOne(cache *wordlist.Cache, opts options, input string) fileResult {
	fr := fileResult{input: input}

	lang, _ := wordlist.DetectLanguage(input)
	wl := cache.Get(dictNames(opts, lang))
	filename, missing, err := wl.Filename()
	if err != nil {
		fr.err = err
		return fr
	}
	for _, name := range missing {
		log.Printf("warning: dictionary %q not found", name)
	}

	or := newOracle(opts)
	c, err := checker.New(or, checker.Options{
		Unique:          opts.unique,
		ExcludePatterns: opts.ignore,
		StripLiterals:   opts.strip,
	})
	if err != nil {
		fr.err = err
		return fr
	}
	fr.result, fr.err = c.CheckFile(input, filename)
	return fr
}

// dictNames builds the wordlist name tuple: the implicit base dictionary, the
// configured extras, and the file's detected language dictionary.
func dictNames(opts options, lang string) []string {
	names := append([]string{"base"}, opts.dicts...)
	if lang != "" {
		names = append(names, lang)
	}
	return names
}

func newOracle(opts options) oracle.Oracle {
	oopts := oracle.Options{
		AllowCompound: opts.compound,
		MinWordLength: opts.wordLen,
	}
	if opts.oracleKind == "embedded" {
		return oracle.NewEmbedded(oopts)
	}
	return oracle.NewIspell(opts.command, oopts)
}

// #endregion check-all

// #region modes

// dumpDict prints the resolved effective wordlist, one word per line.
func dumpDict(cache *wordlist.Cache, opts options) error {
	wl := cache.Get(dictNames(opts, ""))
	filename, missing, err := wl.Filename()
	if err != nil {
		return err
	}
	for _, name := range missing {
		log.Printf("warning: dictionary %q not found", name)
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Println(scanner.Text())
	}
	return scanner.Err()
}

// writeMakeDict collects every unknown word across the run, lowercased,
// deduplicated and sorted, as a starting point for a project dictionary.
func writeMakeDict(filename string, results []fileResult) error {
	seen := make(map[string]bool)
	for _, fr := range results {
		for _, rec := range fr.result.Records {
			seen[strings.ToLower(rec.Word)] = true
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("make-dict: %w", err)
	}
	out := bufio.NewWriter(f)
	for _, w := range words {
		fmt.Fprintln(out, w)
	}
	if err := out.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("make-dict: %w", err)
	}
	return f.Close()
}

// #endregion modes

// #region history

func recordRun(dbPath string, run runSummary) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var findings []history.Finding
	for _, fr := range run.results {
		for _, rec := range fr.result.Records {
			findings = append(findings, history.Finding{
				File:    fr.input,
				Line:    rec.Line,
				Word:    rec.Word,
				Guesses: rec.Guesses,
			})
		}
	}

	_, err = store.RecordRun(history.RunRecord{
		StartedAt:      run.started,
		FinishedAt:     run.finished,
		Wordlist:       run.wordlist,
		FilesChecked:   run.checked,
		FilesErrored:   run.errored,
		WordsSubmitted: run.submitted,
		Misspellings:   run.misspellings,
	}, findings)
	return err
}

// #endregion history
