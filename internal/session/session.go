// Package session implements the state machine for a single timed typing attempt.
package session

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/verte-zerg/typesprint/internal/generator"
)

// ErrInvalidConfiguration reports an empty vocabulary or a non-positive length or duration.
var ErrInvalidConfiguration = generator.ErrInvalidConfiguration

// ErrInvalidState reports a mutating call on a finished session.
var ErrInvalidState = errors.New("invalid state")

// Status is the lifecycle state of a session.
type Status int

const (
	Active Status = iota
	Finished
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Generator produces the target paragraphs for a session.
type Generator interface {
	Paragraph(vocabulary []string, length int) ([]string, error)
}

// Config holds the per-session settings.
type Config struct {
	Vocabulary      []string
	ParagraphLength int
	Duration        time.Duration
}

// Validate checks cfg before a session is created.
func (c Config) Validate() error {
	if len(c.Vocabulary) == 0 {
		return fmt.Errorf("%w: vocabulary is empty", ErrInvalidConfiguration)
	}
	if c.ParagraphLength <= 0 {
		return fmt.Errorf("%w: paragraph length must be > 0, got %d", ErrInvalidConfiguration, c.ParagraphLength)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be > 0, got %s", ErrInvalidConfiguration, c.Duration)
	}
	return nil
}

// Counters are the scoring totals accumulated over a whole session.
type Counters struct {
	WordCount    int
	CorrectChars int
	TotalChars   int
}

// Session owns the state of one timed attempt. It is not safe for concurrent use.
type Session struct {
	id        string
	cfg       Config
	gen       Generator
	startTime time.Time
	status    Status

	paragraph    []string
	currentIndex int
	typed        []rune
	counters     Counters
}

// New starts a session at start with a freshly generated paragraph.
func New(cfg Config, gen Generator, start time.Time) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: generator is nil", ErrInvalidConfiguration)
	}
	s := &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		gen:       gen,
		startTime: start,
		status:    Active,
	}
	if err := s.regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string { return s.id }

// StartedAt returns the time captured when the session was created.
func (s *Session) StartedAt() time.Time { return s.startTime }

// Duration returns the configured session length.
func (s *Session) Duration() time.Duration { return s.cfg.Duration }

// Status returns the last status observed by Tick.
func (s *Session) Status() Status { return s.status }

// Counters returns the accumulated scoring totals.
func (s *Session) Counters() Counters { return s.counters }

// CurrentIndex returns the index of the word being typed.
func (s *Session) CurrentIndex() int { return s.currentIndex }

// Typed returns the unconfirmed input for the current word.
func (s *Session) Typed() string { return string(s.typed) }

// Paragraph returns a copy of the current target words.
func (s *Session) Paragraph() []string {
	return append([]string(nil), s.paragraph...)
}

// Elapsed returns now minus the session start.
func (s *Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.startTime)
}

// TimeLeft returns the remaining time, never negative.
func (s *Session) TimeLeft(now time.Time) time.Duration {
	left := s.cfg.Duration - s.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// HandleCharacter appends r to the typed buffer. Whitespace and runes without a
// visible glyph (caps lock, control keys) are ignored.
func (s *Session) HandleCharacter(r rune) error {
	if err := s.ensureActive("character input"); err != nil {
		return err
	}
	if unicode.IsSpace(r) || !unicode.IsGraphic(r) {
		return nil
	}
	s.typed = append(s.typed, r)
	return nil
}

// HandleBackspace removes the last typed rune, if any.
func (s *Session) HandleBackspace() error {
	if err := s.ensureActive("backspace"); err != nil {
		return err
	}
	if len(s.typed) == 0 {
		return nil
	}
	s.typed = s.typed[:len(s.typed)-1]
	return nil
}

// HandleWordBoundary confirms the typed buffer against the current word.
// A match scores the word and advances; a mismatch only counts the typed runes
// as attempted and keeps the same target. Confirming the last word of the
// paragraph replaces it with a new one.
func (s *Session) HandleWordBoundary() error {
	if err := s.ensureActive("word boundary"); err != nil {
		return err
	}
	typedLen := len(s.typed)
	if string(s.typed) != s.paragraph[s.currentIndex] {
		s.counters.TotalChars += typedLen
		s.typed = s.typed[:0]
		return nil
	}

	s.counters.WordCount++
	s.counters.CorrectChars += typedLen
	s.counters.TotalChars += typedLen
	s.typed = s.typed[:0]
	s.currentIndex++
	if s.currentIndex >= len(s.paragraph) {
		s.currentIndex = 0
		if err := s.regenerate(); err != nil {
			return err
		}
	}
	return nil
}

// Tick reports whether the session has run for its full duration. Once
// Finished is observed it stays Finished; counters are never touched.
func (s *Session) Tick(now time.Time) Status {
	if s.status == Finished {
		return Finished
	}
	if s.Elapsed(now) >= s.cfg.Duration {
		s.status = Finished
	}
	return s.status
}

func (s *Session) ensureActive(op string) error {
	if s.status != Active {
		return fmt.Errorf("%w: %s on %s session", ErrInvalidState, op, s.status)
	}
	return nil
}

func (s *Session) regenerate() error {
	words, err := s.gen.Paragraph(s.cfg.Vocabulary, s.cfg.ParagraphLength)
	if err != nil {
		return fmt.Errorf("failed to generate paragraph: %w", err)
	}
	if len(words) != s.cfg.ParagraphLength {
		return fmt.Errorf("%w: generator returned %d words, want %d", ErrInvalidConfiguration, len(words), s.cfg.ParagraphLength)
	}
	s.paragraph = words
	return nil
}
