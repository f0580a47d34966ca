// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesprint/internal/session"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildParagraphRunes styles every rune of the paragraph. Typed runes of the
// current word are compared with the target so mistakes show before the word
// is confirmed.
func buildParagraphRunes(words []session.Word, typed string) []styledRune {
	typedRunes := []rune(typed)
	out := make([]styledRune, 0, len(words)*6)
	for i, w := range words {
		if i > 0 {
			out = append(out, newStyledRune(' ', pendingStyle, true))
		}
		switch w.State {
		case session.WordPassed:
			for _, r := range w.Text {
				out = append(out, newStyledRune(r, passedStyle, false))
			}
		case session.WordCurrent:
			for j, r := range []rune(w.Matched) {
				style := correctStyle
				if j >= len(typedRunes) || typedRunes[j] != r {
					style = incorrectStyle
				}
				out = append(out, newStyledRune(r, style, false))
			}
			for j, r := range []rune(w.Remaining) {
				style := currentWordStyle
				if j == 0 {
					style = cursorStyle
				}
				out = append(out, newStyledRune(r, style, false))
			}
		default:
			for _, r := range w.Text {
				out = append(out, newStyledRune(r, pendingStyle, false))
			}
		}
	}
	return out
}

func newStyledRune(r rune, style lipgloss.Style, isSpace bool) styledRune {
	return styledRune{
		s:       style.Render(string(r)),
		width:   runewidth.RuneWidth(r),
		isSpace: isSpace,
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
