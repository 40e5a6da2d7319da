package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// #region wordlist

// Wordlist is a set of dictionaries, named by builtin name or filename,
// usable to spellcheck any number of files. Resolution to a single on-disk
// file is lazy and cached: one name resolves to its file directly, several
// names are merged (deduplicated) into a temporary .dict artifact that
// lives until Close.
type Wordlist struct {
	builtins *Builtins
	names    []string

	mu       sync.Mutex
	filename string
	missing  []string
	isTemp   bool
	resolved bool
}

// New creates an unresolved Wordlist over names.
func New(builtins *Builtins, names []string) *Wordlist {
	return &Wordlist{builtins: builtins, names: names}
}

func (w *Wordlist) String() string {
	return strings.Join(w.names, ",")
}

// #endregion wordlist

// #region resolve

// Filename resolves the wordlist to one on-disk file. Unresolvable names
// are skipped and returned as missing so the caller can warn: a partial
// wordlist is still useful, so only resolving nothing at all is an error.
// Safe for concurrent use; resolution happens once.
func (w *Wordlist) Filename() (string, []string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.resolved {
		return w.filename, w.missing, nil
	}

	var files []string
	for _, name := range w.names {
		fn, ok := w.resolve(name)
		if !ok {
			w.missing = append(w.missing, name)
			continue
		}
		files = append(files, fn)
	}
	if len(files) == 0 {
		return "", w.missing, fmt.Errorf("no dictionaries resolved from %s", w)
	}

	if len(files) == 1 {
		w.filename = files[0]
		w.resolved = true
		return w.filename, w.missing, nil
	}

	merged, err := mergeFiles(files)
	if err != nil {
		return "", w.missing, err
	}
	w.filename = merged
	w.isTemp = true
	w.resolved = true
	return w.filename, w.missing, nil
}

// resolve maps one name to a file: an existing path wins, then the builtin
// search path.
func (w *Wordlist) resolve(name string) (string, bool) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, true
	}
	return w.builtins.Find(name)
}

// Close removes the merged temporary artifact, if any. The Wordlist may be
// resolved again afterwards.
func (w *Wordlist) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isTemp || w.filename == "" {
		return nil
	}
	err := os.Remove(w.filename)
	w.filename = ""
	w.isTemp = false
	w.resolved = false
	w.missing = nil
	return err
}

// #endregion resolve

// #region merge

// mergeFiles combines dictionary files into one sorted, deduplicated temp
// file. The oracle never sees duplicate entries no matter how much the
// source dictionaries overlap.
func mergeFiles(files []string) (string, error) {
	words := mapset.NewSet[string]()
	for _, fn := range files {
		if err := readInto(words, fn); err != nil {
			return "", err
		}
	}

	sorted := words.ToSlice()
	sort.Strings(sorted)

	tmp, err := os.CreateTemp("", "kodespel-*.dict")
	if err != nil {
		return "", fmt.Errorf("create merged wordlist: %w", err)
	}
	out := bufio.NewWriter(tmp)
	for _, word := range sorted {
		fmt.Fprintln(out, word)
	}
	if err := out.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write merged wordlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close merged wordlist: %w", err)
	}
	return tmp.Name(), nil
}

func readInto(words mapset.Set[string], filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("read dictionary: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := scanner.Text()
		if strings.HasPrefix(word, "#") {
			continue
		}
		words.Add(word)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read dictionary %s: %w", filename, err)
	}
	return nil
}

// #endregion merge
