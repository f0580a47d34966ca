package session

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/typesprint/internal/generator"
)

// scriptedGenerator hands out paragraphs in order and repeats the last one.
type scriptedGenerator struct {
	paragraphs [][]string
	calls      int
}

func (g *scriptedGenerator) Paragraph(_ []string, _ int) ([]string, error) {
	idx := g.calls
	if idx >= len(g.paragraphs) {
		idx = len(g.paragraphs) - 1
	}
	g.calls++
	return append([]string(nil), g.paragraphs[idx]...), nil
}

var epoch = time.Unix(1700000000, 0)

func newCatDog(t *testing.T, next ...[]string) (*Session, *scriptedGenerator) {
	t.Helper()
	gen := &scriptedGenerator{paragraphs: append([][]string{{"cat", "dog"}}, next...)}
	s, err := New(Config{
		Vocabulary:      []string{"cat", "dog"},
		ParagraphLength: 2,
		Duration:        30 * time.Second,
	}, gen, epoch)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, gen
}

func typeWord(t *testing.T, s *Session, word string) {
	t.Helper()
	for _, r := range word {
		if err := s.HandleCharacter(r); err != nil {
			t.Fatalf("HandleCharacter(%q) failed: %v", r, err)
		}
	}
	if err := s.HandleWordBoundary(); err != nil {
		t.Fatalf("HandleWordBoundary failed: %v", err)
	}
}

func TestNewInvalidConfiguration(t *testing.T) {
	gen := generator.New()
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty vocabulary", cfg: Config{ParagraphLength: 5, Duration: time.Second}},
		{name: "zero length", cfg: Config{Vocabulary: []string{"a"}, Duration: time.Second}},
		{name: "zero duration", cfg: Config{Vocabulary: []string{"a"}, ParagraphLength: 5}},
		{name: "negative duration", cfg: Config{Vocabulary: []string{"a"}, ParagraphLength: 5, Duration: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, gen, epoch)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestNewRejectsShortParagraph(t *testing.T) {
	gen := &scriptedGenerator{paragraphs: [][]string{{"cat"}}}
	_, err := New(Config{Vocabulary: []string{"cat"}, ParagraphLength: 2, Duration: time.Second}, gen, epoch)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewRejectsNilGenerator(t *testing.T) {
	_, err := New(Config{Vocabulary: []string{"cat"}, ParagraphLength: 1, Duration: time.Second}, nil, epoch)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestMatchingWordsWrapsParagraph(t *testing.T) {
	s, gen := newCatDog(t, []string{"dog", "dog"})

	typeWord(t, s, "cat")
	if got := s.Counters(); got != (Counters{WordCount: 1, CorrectChars: 3, TotalChars: 3}) {
		t.Fatalf("unexpected counters after first word: %+v", got)
	}
	if s.CurrentIndex() != 1 {
		t.Fatalf("expected index 1, got %d", s.CurrentIndex())
	}

	typeWord(t, s, "dog")
	if got := s.Counters(); got != (Counters{WordCount: 2, CorrectChars: 6, TotalChars: 6}) {
		t.Fatalf("unexpected counters after second word: %+v", got)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index to wrap to 0, got %d", s.CurrentIndex())
	}
	if gen.calls != 2 {
		t.Fatalf("expected a new paragraph, generator called %d times", gen.calls)
	}
	if !reflect.DeepEqual(s.Paragraph(), []string{"dog", "dog"}) {
		t.Fatalf("unexpected paragraph after wrap: %v", s.Paragraph())
	}
	if s.Typed() != "" {
		t.Fatalf("expected empty buffer, got %q", s.Typed())
	}
}

func TestMismatchKeepsTarget(t *testing.T) {
	s, _ := newCatDog(t)

	typeWord(t, s, "cag")
	if got := s.Counters(); got != (Counters{WordCount: 0, CorrectChars: 0, TotalChars: 3}) {
		t.Fatalf("unexpected counters after mismatch: %+v", got)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index unchanged, got %d", s.CurrentIndex())
	}
	if s.Typed() != "" {
		t.Fatalf("expected buffer cleared, got %q", s.Typed())
	}

	typeWord(t, s, "cat")
	if got := s.Counters(); got != (Counters{WordCount: 1, CorrectChars: 3, TotalChars: 6}) {
		t.Fatalf("unexpected counters after retry: %+v", got)
	}
}

func TestMatchIsCaseSensitive(t *testing.T) {
	s, _ := newCatDog(t)
	typeWord(t, s, "Cat")
	if s.Counters().WordCount != 0 || s.CurrentIndex() != 0 {
		t.Fatalf("expected case mismatch, got %+v at %d", s.Counters(), s.CurrentIndex())
	}
}

func TestEmptyBoundaryIsScoringNoop(t *testing.T) {
	s, _ := newCatDog(t)
	if err := s.HandleWordBoundary(); err != nil {
		t.Fatalf("HandleWordBoundary failed: %v", err)
	}
	if got := s.Counters(); got != (Counters{}) {
		t.Fatalf("expected zero counters, got %+v", got)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index unchanged, got %d", s.CurrentIndex())
	}
}

func TestBackspace(t *testing.T) {
	s, _ := newCatDog(t)
	if err := s.HandleBackspace(); err != nil {
		t.Fatalf("backspace on empty buffer failed: %v", err)
	}
	for _, r := range "cax" {
		_ = s.HandleCharacter(r)
	}
	if err := s.HandleBackspace(); err != nil {
		t.Fatalf("HandleBackspace failed: %v", err)
	}
	if s.Typed() != "ca" {
		t.Fatalf("expected %q, got %q", "ca", s.Typed())
	}
	typeWord(t, s, "t")
	if s.Counters().WordCount != 1 {
		t.Fatalf("expected corrected word to match, got %+v", s.Counters())
	}
}

func TestHandleCharacterIgnoresNonPrinting(t *testing.T) {
	s, _ := newCatDog(t)
	for _, r := range []rune{'\x00', '\t', ' ', '\u007f', 'é', '7', '!'} {
		if err := s.HandleCharacter(r); err != nil {
			t.Fatalf("HandleCharacter(%q) failed: %v", r, err)
		}
	}
	if s.Typed() != "é7!" {
		t.Fatalf("expected only visible runes, got %q", s.Typed())
	}
}

func TestTickFinishesAndRejectsInput(t *testing.T) {
	s, _ := newCatDog(t)
	if got := s.Tick(epoch.Add(29 * time.Second)); got != Active {
		t.Fatalf("expected Active, got %s", got)
	}
	if err := s.HandleCharacter('c'); err != nil {
		t.Fatalf("HandleCharacter failed: %v", err)
	}
	if got := s.Tick(epoch.Add(30 * time.Second)); got != Finished {
		t.Fatalf("expected Finished, got %s", got)
	}
	if got := s.Tick(epoch.Add(31 * time.Second)); got != Finished {
		t.Fatalf("expected Finished to stick, got %s", got)
	}
	for name, op := range map[string]func() error{
		"character": func() error { return s.HandleCharacter('a') },
		"backspace": s.HandleBackspace,
		"boundary":  s.HandleWordBoundary,
	} {
		if err := op(); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("%s: expected ErrInvalidState, got %v", name, err)
		}
	}
	if s.Typed() != "c" {
		t.Fatalf("expected buffer untouched after finish, got %q", s.Typed())
	}
}

func TestTickAndRenderAreIdempotent(t *testing.T) {
	s, _ := newCatDog(t)
	typeWord(t, s, "cat")
	_ = s.HandleCharacter('d')

	now := epoch.Add(10 * time.Second)
	first := s.Render(now)
	if s.Tick(now) != s.Tick(now) {
		t.Fatalf("expected repeated ticks to agree")
	}
	second := s.Render(now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical snapshots:\n%+v\n%+v", first, second)
	}
	if s.Counters() != (Counters{WordCount: 1, CorrectChars: 3, TotalChars: 3}) {
		t.Fatalf("render or tick changed counters: %+v", s.Counters())
	}
}

func TestRenderSnapshot(t *testing.T) {
	gen := &scriptedGenerator{paragraphs: [][]string{{"the", "cat", "sat"}}}
	s, err := New(Config{Vocabulary: []string{"x"}, ParagraphLength: 3, Duration: 30 * time.Second}, gen, epoch)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	typeWord(t, s, "the")
	_ = s.HandleCharacter('c')
	_ = s.HandleCharacter('x')

	snap := s.Render(epoch.Add(12500 * time.Millisecond))
	want := []Word{
		{Text: "the", State: WordPassed, Remaining: "the"},
		{Text: "cat", State: WordCurrent, Matched: "ca", Remaining: "t"},
		{Text: "sat", State: WordUpcoming, Remaining: "sat"},
	}
	if !reflect.DeepEqual(snap.Words, want) {
		t.Fatalf("unexpected words: %+v", snap.Words)
	}
	if snap.Typed != "cx" {
		t.Fatalf("expected typed %q, got %q", "cx", snap.Typed)
	}
	if snap.TimeLeft != 17500*time.Millisecond {
		t.Fatalf("unexpected time left: %s", snap.TimeLeft)
	}
	if snap.CurrentIndex != 1 {
		t.Fatalf("expected current index 1, got %d", snap.CurrentIndex)
	}
}

func TestRenderClampsOverlongInputAndTime(t *testing.T) {
	s, _ := newCatDog(t)
	for _, r := range "catalog" {
		_ = s.HandleCharacter(r)
	}
	snap := s.Render(epoch.Add(time.Minute))
	if snap.Words[0].Matched != "cat" || snap.Words[0].Remaining != "" {
		t.Fatalf("expected whole word matched, got %+v", snap.Words[0])
	}
	if snap.TimeLeft != 0 {
		t.Fatalf("expected time left clamped to 0, got %s", snap.TimeLeft)
	}
}

func TestSessionsHaveDistinctIDs(t *testing.T) {
	a, _ := newCatDog(t)
	b, _ := newCatDog(t)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected unique ids, got %q and %q", a.ID(), b.ID())
	}
}
