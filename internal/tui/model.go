package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesprint/internal/controller"
	"github.com/verte-zerg/typesprint/internal/model"
)

// frameInterval paces the Playing loop at 60 FPS.
const frameInterval = time.Second / 60

// Recorder persists results of sessions that ran out of time.
type Recorder interface {
	Record(ctx context.Context, r model.Result) (int64, error)
}

type tickMsg time.Time

// Model implements the Bubble Tea typing UI on top of a controller.
type Model struct {
	ctrl     *controller.Controller
	recorder Recorder
	now      func() time.Time

	keys  keyMap
	help  help.Model
	timer progress.Model

	width  int
	height int

	pending []controller.Event
	ticking bool
	frame   controller.Frame
	err     error
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	textStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	passedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	inputStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a typing TUI model. recorder may be nil.
func NewModel(ctrl *controller.Controller, recorder Recorder) *Model {
	timer := progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage())
	m := &Model{
		ctrl:     ctrl,
		recorder: recorder,
		now:      time.Now,
		keys:     defaultKeyMap(),
		help:     help.New(),
		timer:    timer,
	}
	m.frame = controller.Frame{State: ctrl.State()}
	return m
}

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		events := m.keys.translate(m.ctrl.State(), msg)
		if len(events) == 0 {
			return m, nil
		}
		m.pending = append(m.pending, events...)
		// Playing input waits for the next frame; the wait states react at once.
		if m.ctrl.State() == controller.Playing && events[0] != controller.Quit {
			return m, nil
		}
		return m, m.step(m.now())
	case tickMsg:
		m.ticking = false
		return m, m.step(time.Time(msg))
	default:
		return m, nil
	}
}

func (m *Model) step(now time.Time) tea.Cmd {
	events := m.pending
	m.pending = nil
	frame, err := m.ctrl.Step(now, events)
	m.frame = frame
	if err != nil {
		m.err = err
		return tea.Quit
	}
	if frame.Result != nil {
		m.record(*frame.Result)
	}
	switch frame.State {
	case controller.Stopped:
		return tea.Quit
	case controller.Playing:
		if !m.ticking {
			m.ticking = true
			return tick()
		}
	}
	return nil
}

func (m *Model) record(r model.Result) {
	if m.recorder == nil {
		return
	}
	if _, err := m.recorder.Record(context.Background(), r); err != nil {
		logErrf("failed to save result: %v\n", err)
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.frame.State {
	case controller.StartScreen:
		content = m.viewStart()
	case controller.Playing:
		content = m.viewPlaying()
	case controller.TimeoutPrompt:
		content = m.viewPrompt()
	default:
		return ""
	}
	helpLine := m.help.ShortHelpView(m.keys.helpFor(m.frame.State))
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + helpLine
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpLine)
	return body + "\n" + footer
}

func (m *Model) viewStart() string {
	seconds := int(m.ctrl.Config().Duration.Seconds())
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Typing Game"),
		"",
		textStyle.Render(fmt.Sprintf("Type as many words as you can in %d seconds!", seconds)),
		"",
		textStyle.Render("Press Enter to Start"),
	)
}

func (m *Model) viewPlaying() string {
	snap := m.frame.Snapshot
	contentWidth := m.contentWidth()
	duration := m.ctrl.Config().Duration

	m.timer.Width = contentWidth
	remaining := 0.0
	if duration > 0 {
		remaining = float64(snap.TimeLeft) / float64(duration)
	}
	paragraph := wrapStyledRunes(buildParagraphRunes(snap.Words, snap.Typed), contentWidth)

	return lipgloss.JoinVertical(lipgloss.Center,
		textStyle.Render(fmt.Sprintf("Time Left: %.2f seconds", snap.TimeLeft.Seconds())),
		m.timer.ViewAs(remaining),
		"",
		lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(paragraph),
		"",
		inputStyle.Render(snap.Typed+"_"),
		"",
		m.renderMetrics(),
	)
}

func (m *Model) viewPrompt() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Time's up!"),
		"",
		m.renderMetrics(),
		"",
		textStyle.Render("Do you want to restart? (y/n)"),
	)
}

func (m *Model) renderMetrics() string {
	segments := []string{
		fmt.Sprintf("WPM: %.2f", m.frame.Metrics.WPM),
		fmt.Sprintf("Accuracy: %.2f%%", m.frame.Metrics.Accuracy),
		fmt.Sprintf("Words: %d", m.frame.Snapshot.Counters.WordCount),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
