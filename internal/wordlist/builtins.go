// Package wordlist resolves dictionary names to on-disk wordlist files,
// merging multiple dictionaries into a single artifact the oracle can load,
// and maps source files to the language dictionary that should cover them.
package wordlist

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// #region builtins

// dictPathEnv overrides the dictionary search path (list-separated).
const dictPathEnv = "KODESPEL_DICT_PATH"

// Builtins is the collection of installed builtin dictionaries: *.dict
// files found on the search path.
type Builtins struct {
	path []string
}

// NewBuiltins builds the search path: the env override first, then
// executable-relative locations, then the system share directories, then a
// ./dict checkout directory.
func NewBuiltins() *Builtins {
	var path []string
	if env := os.Getenv(dictPathEnv); env != "" {
		path = append(path, filepath.SplitList(env)...)
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		path = append(path,
			filepath.Join(dir, "..", "share", "kodespel"),
			filepath.Join(dir, "dict"))
	}
	path = append(path,
		"/usr/local/share/kodespel",
		"/usr/share/kodespel",
		"dict")
	return &Builtins{path: path}
}

// Filenames returns every builtin dictionary file on the search path.
func (b *Builtins) Filenames() []string {
	var filenames []string
	for _, dir := range b.path {
		matches, err := filepath.Glob(filepath.Join(dir, "*.dict"))
		if err != nil {
			continue
		}
		filenames = append(filenames, matches...)
	}
	return filenames
}

// Names returns the sorted unique bare names of the builtin dictionaries.
func (b *Builtins) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, fn := range b.Filenames() {
		name := strings.TrimSuffix(filepath.Base(fn), ".dict")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Find resolves a bare dictionary name to its file, first match on the
// search path wins.
func (b *Builtins) Find(name string) (string, bool) {
	for _, dir := range b.path {
		fn := filepath.Join(dir, name+".dict")
		if info, err := os.Stat(fn); err == nil && !info.IsDir() {
			return fn, true
		}
	}
	return "", false
}

// #endregion builtins
