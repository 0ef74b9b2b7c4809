package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomask/pkg/mask"
)

type styles struct {
	label    tcell.Style
	literal  tcell.Style
	filled   tcell.Style
	blank    tcell.Style
	selected tcell.Style
	help     tcell.Style
}

func defaultStyles() styles {
	return styles{
		label:    tcell.StyleDefault.Bold(true),
		literal:  tcell.StyleDefault.Foreground(tcell.ColorGray),
		filled:   tcell.StyleDefault.Bold(true),
		blank:    tcell.StyleDefault.Underline(true),
		selected: tcell.StyleDefault.Reverse(true),
		help:     tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true),
	}
}

func plainStyles() styles {
	return styles{
		label:    tcell.StyleDefault,
		literal:  tcell.StyleDefault,
		filled:   tcell.StyleDefault,
		blank:    tcell.StyleDefault,
		selected: tcell.StyleDefault.Reverse(true),
		help:     tcell.StyleDefault,
	}
}

// draw renders the label, the field text and a help line, then places the
// cursor on the caret. Wide runes take two cells.
func (s *Session) draw() {
	s.screen.Clear()

	col := 0
	if s.label != "" {
		col = s.puts(0, fieldRow, s.label, s.styles.label) + 1
	}

	engine := s.field.Engine()
	sel := s.selection()
	lo, hi := min(sel.Start, sel.End), max(sel.Start, sel.End)

	text := []rune(s.field.Text())
	caretCol := col
	for i, r := range text {
		if i == s.field.Caret() {
			caretCol = col
		}
		style := s.styles.filled
		switch {
		case i >= lo && i < hi:
			style = s.styles.selected
		case !engine.IsSlot(i):
			style = s.styles.literal
		case r == mask.Blank:
			style = s.styles.blank
		}
		s.screen.SetContent(col, fieldRow, r, nil, style)
		col += cellWidth(r)
	}
	if s.field.Caret() >= len(text) {
		caretCol = col
	}

	s.puts(0, fieldRow+2, helpText, s.styles.help)

	s.screen.ShowCursor(caretCol, fieldRow)
	s.screen.Show()
}

// puts writes text starting at (x, y) and returns the column after it.
func (s *Session) puts(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x += cellWidth(r)
	}
	return x
}

// cellWidth is the number of terminal cells r occupies, at least one.
func cellWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 1)
}

// indexAt maps a screen column on the field row to a position in the field
// text. Columns left of the text map to 0 and columns past it to its length.
func (s *Session) indexAt(x int) int {
	col := 0
	if s.label != "" {
		col = textWidth(s.label) + 1
	}
	text := []rune(s.field.Text())
	for i, r := range text {
		col += cellWidth(r)
		if x < col {
			return i
		}
	}
	return len(text)
}

func textWidth(text string) int {
	width := 0
	for _, r := range text {
		width += cellWidth(r)
	}
	return width
}
