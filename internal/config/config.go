// Package config loads kodespel defaults from a .kodespel.yml file.
// Command-line flags override the file; a handful of KODESPEL_* environment
// variables override hardcoded defaults for settings without flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// #region config

// configEnv names an explicit config file, bypassing discovery.
const configEnv = "KODESPEL_CONFIG"

// configName is the file looked up during discovery.
const configName = ".kodespel.yml"

// Config holds file-loadable defaults. Pointer fields distinguish "not set"
// from a zero value so the CLI only overrides what the file actually sets.
type Config struct {
	// Dictionaries are added on top of the implicit "base" dictionary.
	Dictionaries []string `yaml:"dictionaries"`
	// Ignore lists regex patterns whose matches are never spellchecked.
	Ignore []string `yaml:"ignore"`
	// Strip lists literal substrings removed before tokenization.
	Strip []string `yaml:"strip"`

	Unique   *bool  `yaml:"unique"`
	Compound *bool  `yaml:"compound"`
	WordLen  *int   `yaml:"wordlen"`
	Jobs     *int   `yaml:"jobs"`
	LogDB    string `yaml:"log_db"`

	// Oracle selects the implementation: "ispell" (default) or "embedded".
	Oracle string `yaml:"oracle"`
	// Command overrides the oracle binary name.
	Command string `yaml:"command"`
}

// #endregion config

// #region load

// Load parses one config file. A missing explicit file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the effective config: $KODESPEL_CONFIG if set, otherwise
// the first .kodespel.yml found in startDir or the home directory. No file
// at all is not an error; the zero Config is returned with an empty path.
func Discover(startDir string) (Config, string, error) {
	if path := os.Getenv(configEnv); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	candidates := []string{filepath.Join(startDir, configName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, configName))
	}
	for _, path := range candidates {
		cfg, err := Load(path)
		if err == nil {
			return cfg, path, nil
		}
		if !os.IsNotExist(err) {
			return Config{}, path, err
		}
	}
	return Config{}, "", nil
}

// #endregion load

// #region defaults

// BoolOr returns *p, or fallback when the file did not set it.
func BoolOr(p *bool, fallback bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}

// IntOr returns *p, or fallback when the file did not set it.
func IntOr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}

// StringOr returns s, or fallback when s is empty.
func StringOr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// #endregion defaults
