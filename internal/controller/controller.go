// Package controller drives the start, play, timeout and restart lifecycle of
// typing sessions.
package controller

import (
	"fmt"
	"time"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
)

// State is the controller lifecycle state.
type State int

const (
	StartScreen State = iota
	Playing
	TimeoutPrompt
	Stopped
)

func (s State) String() string {
	switch s {
	case StartScreen:
		return "start-screen"
	case Playing:
		return "playing"
	case TimeoutPrompt:
		return "timeout-prompt"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Frame is everything a renderer needs after one step.
type Frame struct {
	State    State
	Snapshot session.Snapshot
	Metrics  stats.Metrics
	// Result is set only on the step where a session timed out.
	Result *model.Result
}

// Controller owns the current session and replaces it on every restart.
type Controller struct {
	cfg        session.Config
	gen        session.Generator
	state      State
	current    *session.Session
	finishedAt time.Time
}

// New returns a controller on the start screen.
func New(cfg session.Config, gen session.Generator) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: generator is nil", session.ErrInvalidConfiguration)
	}
	return &Controller{cfg: cfg, gen: gen, state: StartScreen}, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Config returns the session settings used for every new session.
func (c *Controller) Config() session.Config { return c.cfg }

// Session returns the current session, or nil outside Playing and TimeoutPrompt.
func (c *Controller) Session() *session.Session { return c.current }

// Step applies events in arrival order, then checks the session timer at now.
// Keystrokes only reach a Playing session; other events are dropped when the
// current state does not accept them.
func (c *Controller) Step(now time.Time, events []Event) (Frame, error) {
	for _, ev := range events {
		if c.state == Stopped {
			break
		}
		if err := c.apply(now, ev); err != nil {
			return c.frame(now), err
		}
	}

	var result *model.Result
	if c.state == Playing && c.current.Tick(now) == session.Finished {
		c.state = TimeoutPrompt
		c.finishedAt = now
		r := c.result()
		result = &r
	}
	f := c.frame(now)
	f.Result = result
	return f, nil
}

func (c *Controller) apply(now time.Time, ev Event) error {
	if ev.Kind == KindQuit {
		c.state = Stopped
		c.current = nil
		return nil
	}
	switch c.state {
	case StartScreen:
		if ev.Kind == KindConfirm {
			return c.start(now)
		}
	case Playing:
		return c.feed(ev)
	case TimeoutPrompt:
		switch ev.Kind {
		case KindYes:
			return c.start(now)
		case KindNo:
			c.state = Stopped
			c.current = nil
		}
	}
	return nil
}

func (c *Controller) feed(ev Event) error {
	var err error
	switch ev.Kind {
	case KindCharacter:
		err = c.current.HandleCharacter(ev.Rune)
	case KindBackspace:
		err = c.current.HandleBackspace()
	case KindWordBoundary:
		err = c.current.HandleWordBoundary()
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", ev.Kind, err)
	}
	return nil
}

func (c *Controller) start(now time.Time) error {
	s, err := session.New(c.cfg, c.gen, now)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	c.current = s
	c.finishedAt = time.Time{}
	c.state = Playing
	return nil
}

// clock freezes time at the moment a session timed out.
func (c *Controller) clock(now time.Time) time.Time {
	if c.state == TimeoutPrompt && !c.finishedAt.IsZero() {
		return c.finishedAt
	}
	return now
}

func (c *Controller) elapsedSeconds(now time.Time) float64 {
	elapsed := c.current.Elapsed(c.clock(now))
	if elapsed > c.cfg.Duration {
		elapsed = c.cfg.Duration
	}
	return elapsed.Seconds()
}

func (c *Controller) frame(now time.Time) Frame {
	f := Frame{State: c.state}
	if c.current == nil {
		return f
	}
	f.Snapshot = c.current.Render(c.clock(now))
	counters := c.current.Counters()
	f.Metrics = stats.Compute(counters.WordCount, counters.CorrectChars, counters.TotalChars, c.elapsedSeconds(now))
	return f
}

func (c *Controller) result() model.Result {
	counters := c.current.Counters()
	m := stats.Compute(counters.WordCount, counters.CorrectChars, counters.TotalChars, c.elapsedSeconds(c.finishedAt))
	return model.Result{
		SessionID:       c.current.ID(),
		StartedAt:       c.current.StartedAt(),
		EndedAt:         c.finishedAt,
		ParagraphLength: c.cfg.ParagraphLength,
		DurationMs:      c.cfg.Duration.Milliseconds(),
		WordCount:       counters.WordCount,
		CorrectChars:    counters.CorrectChars,
		TotalChars:      counters.TotalChars,
		WPM:             m.WPM,
		Accuracy:        m.Accuracy,
	}
}
