package pretty

import (
	"strings"

	"github.com/yaklabco/gomask/pkg/mask"
)

// NoCaret disables the caret highlight in RenderMasked.
const NoCaret = -1

type position int

const (
	positionLiteral position = iota
	positionFilled
	positionBlank
)

// RenderMasked styles masked text position by position: literals dimmed,
// filled slots bold, blank slots underlined. The rune at caret is shown in
// reverse video; a caret at the end of the text adds a trailing cell.
func (s *Styles) RenderMasked(engine *mask.Engine, masked string, caret int) string {
	runes := []rune(masked)

	var builder strings.Builder
	var run []rune
	var kind position

	flush := func() {
		if len(run) == 0 {
			return
		}
		style := s.Literal
		switch kind {
		case positionFilled:
			style = s.Filled
		case positionBlank:
			style = s.Blank
		}
		builder.WriteString(style.Render(string(run)))
		run = run[:0]
	}

	for i, r := range runes {
		if i == caret {
			flush()
			builder.WriteString(s.Caret.Render(string(r)))
			continue
		}

		next := classify(engine, i, r)
		if len(run) > 0 && next != kind {
			flush()
		}
		kind = next
		run = append(run, r)
	}
	flush()

	if caret == len(runes) {
		builder.WriteString(s.Caret.Render(" "))
	}

	return builder.String()
}

func classify(engine *mask.Engine, index int, r rune) position {
	switch {
	case !engine.IsSlot(index):
		return positionLiteral
	case r == mask.Blank:
		return positionBlank
	default:
		return positionFilled
	}
}
