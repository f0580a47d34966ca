package controller

import "fmt"

// Kind identifies an input event.
type Kind int

const (
	KindCharacter Kind = iota
	KindBackspace
	KindWordBoundary
	KindConfirm
	KindYes
	KindNo
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindBackspace:
		return "backspace"
	case KindWordBoundary:
		return "word-boundary"
	case KindConfirm:
		return "confirm"
	case KindYes:
		return "yes"
	case KindNo:
		return "no"
	case KindQuit:
		return "quit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one discrete input from the input source.
type Event struct {
	Kind Kind
	Rune rune
}

// Character returns a character input event for r.
func Character(r rune) Event {
	return Event{Kind: KindCharacter, Rune: r}
}

var (
	Backspace    = Event{Kind: KindBackspace}
	WordBoundary = Event{Kind: KindWordBoundary}
	Confirm      = Event{Kind: KindConfirm}
	Yes          = Event{Kind: KindYes}
	No           = Event{Kind: KindNo}
	Quit         = Event{Kind: KindQuit}
)
