package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeWordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadWordLists(t *testing.T) {
	path := writeWordFile(t, `{
		"words": {
			"4": ["able", "kite"],
			"5": ["CRANE", "crate", "toolong", "x"],
			"bad": ["NOPE"]
		}
	}`)

	wl, err := loadWordLists(path)
	if err != nil {
		t.Fatalf("loadWordLists: %v", err)
	}

	if got := wl.Lengths(); !slices.Equal(got, []int{4, 5}) {
		t.Errorf("Lengths() = %v, want [4 5]", got)
	}
	// Words are upper-cased on load and wrong-length entries are skipped.
	if !wl.IsValid("crane") || !wl.IsValid("CRATE") {
		t.Error("expected loaded words to validate case-insensitively")
	}
	if wl.IsValid("TOOLONG") || wl.IsValid("X") {
		t.Error("wrong-length entries should have been skipped")
	}
	if len(wl.lists[5]) != 2 {
		t.Errorf("5-letter list has %d words, want 2", len(wl.lists[5]))
	}
}

func TestLoadWordListsErrors(t *testing.T) {
	if _, err := loadWordLists(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeWordFile(t, "{broken")
	if _, err := loadWordLists(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestRandomWord(t *testing.T) {
	path := writeWordFile(t, `{"words": {"4": ["ABLE", "KITE"], "5": ["CRANE"]}}`)
	wl, err := loadWordLists(path)
	if err != nil {
		t.Fatalf("loadWordLists: %v", err)
	}

	for i := 0; i < 10; i++ {
		w := wl.RandomWord(4)
		if w != "ABLE" && w != "KITE" {
			t.Fatalf("RandomWord(4) = %q", w)
		}
	}

	// Unsupported lengths fall back to the default list.
	if w := wl.RandomWord(9); w != "CRANE" {
		t.Errorf("RandomWord(9) = %q, want default-length fallback", w)
	}
}

func TestDefaultWordListIntegrity(t *testing.T) {
	wl, err := loadWordLists("data/words.json")
	if err != nil {
		t.Fatalf("loadWordLists: %v", err)
	}
	lengths := wl.Lengths()
	if !slices.Contains(lengths, DefaultWordLength) {
		t.Fatalf("shipped word list missing default length %d", DefaultWordLength)
	}
	for _, length := range lengths {
		seen := map[string]struct{}{}
		for _, w := range wl.lists[length] {
			if len(w) != length {
				t.Errorf("word %q in length-%d list", w, length)
			}
			if _, dup := seen[w]; dup {
				t.Errorf("duplicate word %q in length-%d list", w, length)
			}
			seen[w] = struct{}{}
		}
	}
	// Words the tests and docs rely on.
	for _, w := range []string{"CRANE", "CRATE", "ERASE", "SPEED"} {
		if !wl.IsValid(w) {
			t.Errorf("shipped word list missing %q", w)
		}
	}
}
