package wordlist

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"testing"
)

func TestDetectLanguageByExtension(t *testing.T) {
	tests := []struct {
		filename string
		lang     string
		ok       bool
	}{
		{"main.go", "go", true},
		{"tool.py", "python", true},
		{"legacy.pl", "perl", true},
		{"Legacy.pm", "perl", true},
		{"core.c", "c", true},
		{"core.h", "c", true},
		{"core.cpp", "c", true},
		{"core.hpp", "c", true},
		{"Main.java", "java", true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			lang, ok := DetectLanguage(tt.filename)
			if lang != tt.lang || ok != tt.ok {
				t.Errorf("DetectLanguage(%q) = (%q, %v), want (%q, %v)",
					tt.filename, lang, ok, tt.lang, tt.ok)
			}
		})
	}
}

func TestDetectLanguageByShebang(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	tests := []struct {
		name    string
		shebang string
		mode    os.FileMode
		lang    string
		ok      bool
	}{
		{"python-script", "#!/usr/bin/env python3\n", 0o755, "python", true},
		{"perl-script", "#!/usr/bin/perl -w\n", 0o755, "perl", true},
		{"shell-script", "#!/bin/sh\n", 0o755, "", false},
		{"not-executable", "#!/usr/bin/env python3\n", 0o644, "", false},
		{"no-shebang", "just text\n", 0o755, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := filepath.Join(t.TempDir(), "script")
			if err := os.WriteFile(fn, []byte(tt.shebang+"pass\n"), tt.mode); err != nil {
				t.Fatalf("write: %v", err)
			}
			lang, ok := DetectLanguage(fn)
			if lang != tt.lang || ok != tt.ok {
				t.Errorf("got (%q, %v), want (%q, %v)", lang, ok, tt.lang, tt.ok)
			}
		})
	}
}

func TestFindInputs(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"pkg/a.go",
		"pkg/b.py",
		"pkg/sub/c.c",
		"pkg/notes.txt",
		"pkg/binary.dat",
	}
	for _, f := range files {
		fn := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(fn, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	// A directory keeps only known extensions; explicit files pass through.
	inputs, err := FindInputs([]string{
		filepath.Join(dir, "pkg"),
		filepath.Join(dir, "pkg", "notes.txt"),
	})
	if err != nil {
		t.Fatalf("FindInputs: %v", err)
	}

	want := []string{
		filepath.Join(dir, "pkg", "a.go"),
		filepath.Join(dir, "pkg", "b.py"),
		filepath.Join(dir, "pkg", "sub", "c.c"),
		filepath.Join(dir, "pkg", "notes.txt"),
	}
	sort.Strings(inputs)
	sort.Strings(want)
	if !reflect.DeepEqual(inputs, want) {
		t.Errorf("inputs = %v, want %v", inputs, want)
	}

	if _, err := FindInputs([]string{filepath.Join(dir, "absent")}); err == nil {
		t.Error("missing input should error")
	}
}
