package session

import "time"

// WordState places a paragraph word relative to the cursor.
type WordState int

const (
	WordPassed WordState = iota
	WordCurrent
	WordUpcoming
)

// Word is one paragraph word prepared for display. For the current word,
// Matched is the prefix covered by the typed buffer's length and Remaining the
// rest; other words carry their whole text in Remaining.
type Word struct {
	Text      string
	State     WordState
	Matched   string
	Remaining string
}

// Snapshot is the display-ready view of a session at one instant.
type Snapshot struct {
	Words        []Word
	CurrentIndex int
	Typed        string
	TimeLeft     time.Duration
	Status       Status
	Counters     Counters
}

// Render builds a Snapshot without changing the session.
func (s *Session) Render(now time.Time) Snapshot {
	words := make([]Word, len(s.paragraph))
	for i, text := range s.paragraph {
		w := Word{Text: text, Remaining: text}
		switch {
		case i < s.currentIndex:
			w.State = WordPassed
		case i == s.currentIndex:
			w.State = WordCurrent
			w.Matched, w.Remaining = splitAt(text, len(s.typed))
		default:
			w.State = WordUpcoming
		}
		words[i] = w
	}
	return Snapshot{
		Words:        words,
		CurrentIndex: s.currentIndex,
		Typed:        string(s.typed),
		TimeLeft:     s.TimeLeft(now),
		Status:       s.status,
		Counters:     s.counters,
	}
}

func splitAt(text string, n int) (string, string) {
	runes := []rune(text)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n]), string(runes[n:])
}
