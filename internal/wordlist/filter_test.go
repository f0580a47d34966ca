package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTypeable(t *testing.T) {
	if !Typeable("hello") {
		t.Fatalf("expected hello to be typeable")
	}
	if !Typeable("don't") {
		t.Fatalf("expected punctuation to be typeable")
	}
	for _, word := range []string{"", "two words", "tab\tword", "bell\a"} {
		if Typeable(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterDeduplicatesInOrder(t *testing.T) {
	got := Filter([]string{"b", "a", "", "b", "c a", "c"}, Typeable)
	want := []string{"b", "a", "c"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDefaultVocabulary(t *testing.T) {
	words := Default()
	if len(words) != DefaultSize {
		t.Fatalf("expected %d words, got %d", DefaultSize, len(words))
	}
	for _, word := range words {
		if word != strings.ToLower(word) {
			t.Fatalf("expected lowercase word, got %q", word)
		}
	}
	words[0] = "mutated"
	if Default()[0] == "mutated" {
		t.Fatalf("expected Default to return a fresh copy")
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	words, err := Load("  ")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(words) != DefaultSize {
		t.Fatalf("expected default vocabulary, got %d words", len(words))
	}
}

func TestLoadWordsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# comment\ncat\n\n  dog \ncat\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(words) != 2 || words[0] != "cat" || words[1] != "dog" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsLowercases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("The\nthe\nParis\nÉTÉ\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	want := []string{"the", "paris", "été"}
	if len(words) != len(want) {
		t.Fatalf("expected %v, got %v", want, words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, words)
		}
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n# nothing\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}
