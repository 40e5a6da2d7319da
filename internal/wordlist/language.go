package wordlist

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// #region extensions

// extLang maps source-file extensions to language dictionary names.
var extLang = map[string]string{
	".go":   "go",
	".py":   "python",
	".pl":   "perl",
	".pm":   "perl",
	".c":    "c",
	".h":    "c",
	".cpp":  "c",
	".hpp":  "c",
	".java": "java",
}

// KnownExtension reports whether ext (including the dot) belongs to a
// supported language.
func KnownExtension(ext string) bool {
	_, ok := extLang[ext]
	return ok
}

// #endregion extensions

// #region detect

// DetectLanguage guesses the language dictionary for filename. Extension
// first; for executable extensionless scripts the shebang line is sniffed
// for an interpreter name.
func DetectLanguage(filename string) (string, bool) {
	if lang, ok := extLang[filepath.Ext(filename)]; ok {
		return lang, true
	}

	info, err := os.Stat(filename)
	if err != nil || info.Mode()&0o111 == 0 {
		return "", false
	}
	f, err := os.Open(filename)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", false
	}
	first := scanner.Text()
	if !strings.HasPrefix(first, "#!") {
		return "", false
	}
	switch {
	case strings.Contains(first, "python"):
		return "python", true
	case strings.Contains(first, "perl"):
		return "perl", true
	}
	return "", false
}

// #endregion detect

// #region inputs

// FindInputs expands the argument list: directories are walked recursively,
// keeping only files with a known source extension; explicit files are
// checked as given, whatever their extension.
func FindInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && KnownExtension(filepath.Ext(path)) {
				inputs = append(inputs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

// #endregion inputs
