package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typesprint/internal/controller"
)

type keyMap struct {
	Start     key.Binding
	Yes       key.Binding
	No        key.Binding
	Quit      key.Binding
	Backspace key.Binding
	Confirm   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Yes:       key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "restart")),
		No:        key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "stop")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
		Confirm:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "confirm word")),
	}
}

// helpFor returns the bindings shown in the help line for a controller state.
func (k keyMap) helpFor(state controller.State) []key.Binding {
	switch state {
	case controller.StartScreen:
		return []key.Binding{k.Start, k.Quit}
	case controller.Playing:
		return []key.Binding{k.Confirm, k.Backspace, k.Quit}
	case controller.TimeoutPrompt:
		return []key.Binding{k.Yes, k.No, k.Quit}
	default:
		return nil
	}
}

// translate converts a key press into controller events for the given state.
func (k keyMap) translate(state controller.State, msg tea.KeyMsg) []controller.Event {
	if key.Matches(msg, k.Quit) {
		return []controller.Event{controller.Quit}
	}
	switch state {
	case controller.StartScreen:
		if key.Matches(msg, k.Start) {
			return []controller.Event{controller.Confirm}
		}
	case controller.TimeoutPrompt:
		switch {
		case key.Matches(msg, k.Yes):
			return []controller.Event{controller.Yes}
		case key.Matches(msg, k.No):
			return []controller.Event{controller.No}
		}
	case controller.Playing:
		switch msg.Type {
		case tea.KeyBackspace:
			return []controller.Event{controller.Backspace}
		case tea.KeySpace:
			return []controller.Event{controller.WordBoundary}
		case tea.KeyRunes:
			events := make([]controller.Event, 0, len(msg.Runes))
			for _, r := range msg.Runes {
				if r == ' ' {
					events = append(events, controller.WordBoundary)
					continue
				}
				events = append(events, controller.Character(r))
			}
			return events
		}
	}
	return nil
}
