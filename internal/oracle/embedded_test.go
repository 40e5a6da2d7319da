package oracle

import (
	"os"
	"path/filepath"
	"testing"
)

func tempWordlist(t *testing.T, words string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.dict")
	if err := os.WriteFile(path, []byte(words), 0o644); err != nil {
		t.Fatalf("write wordlist: %v", err)
	}
	return path
}

func drainWords(t *testing.T, o Oracle, words ...string) Report {
	t.Helper()
	for _, w := range words {
		if err := o.Send(w); err != nil {
			t.Fatalf("Send(%q): %v", w, err)
		}
	}
	report, err := o.Drain()
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	return report
}

func TestEmbeddedAccepts(t *testing.T) {
	path := tempWordlist(t, "receive\nbuffer\nJSON\n\n# comment\nindex\n")
	o := NewEmbedded(Options{MinWordLength: 3})
	if err := o.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	report := drainWords(t, o, "receive", "Buffer", "json", "ab", "idx")

	// Known words pass regardless of case; short words pass unchecked.
	for _, w := range []string{"receive", "Buffer", "json", "ab", "idx"} {
		if report.Flagged(w) {
			t.Errorf("%q flagged, want accepted", w)
		}
	}
}

func TestEmbeddedFlagsWithSuggestions(t *testing.T) {
	path := tempWordlist(t, "receive\nbuffer\nindex\n")
	o := NewEmbedded(Options{MinWordLength: 3})
	if err := o.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	report := drainWords(t, o, "recieve", "qqqqzzzz")

	if !report.Flagged("recieve") {
		t.Fatal("misspelling not flagged")
	}
	found := false
	for _, g := range report["recieve"] {
		if g == "receive" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions for recieve = %v, want to include receive", report["recieve"])
	}

	if !report.Flagged("qqqqzzzz") {
		t.Fatal("garbage word not flagged")
	}
	if got := o.TotalFlagged(); got != 2 {
		t.Errorf("TotalFlagged = %d, want 2", got)
	}
}

func TestEmbeddedCompound(t *testing.T) {
	path := tempWordlist(t, "get\nall\nnext\n")

	tests := []struct {
		name    string
		opts    Options
		word    string
		flagged bool
	}{
		{"compound-allowed", Options{AllowCompound: true}, "getall", false},
		{"compound-denied", Options{}, "getall", true},
		{"half-unknown", Options{AllowCompound: true}, "getzzz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewEmbedded(tt.opts)
			if err := o.Open(path); err != nil {
				t.Fatalf("Open: %v", err)
			}
			report := drainWords(t, o, tt.word)
			if report.Flagged(tt.word) != tt.flagged {
				t.Errorf("Flagged(%q) = %v, want %v", tt.word, report.Flagged(tt.word), tt.flagged)
			}
		})
	}
}

func TestEmbeddedLifecycle(t *testing.T) {
	path := tempWordlist(t, "word\n")
	o := NewEmbedded(Options{})

	if err := o.Send("early"); err == nil {
		t.Error("Send before Open should fail")
	}
	if err := o.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := o.Open(path); err == nil {
		t.Error("double Open should fail")
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := o.Open(path); err != nil {
		t.Errorf("reopen: %v", err)
	}
}

func TestEmbeddedMissingWordlist(t *testing.T) {
	o := NewEmbedded(Options{})
	if err := o.Open(filepath.Join(t.TempDir(), "absent.dict")); err == nil {
		t.Error("Open with missing wordlist should fail")
	}
}
