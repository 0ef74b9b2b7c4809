// Package pretty renders gomask output with lipgloss: masked values, tables,
// diffs and run summaries.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGray   = "8"
	colorWhite  = "7"
)

// Styles holds one renderer per kind of output element. With color off every
// style is plain, so Render returns its input unchanged.
type Styles struct {
	Error, Warning, Success lipgloss.Style

	// Parts of a masked value.
	Literal, Filled, Blank, Caret lipgloss.Style

	// Token symbols and mask patterns in listings.
	Symbol, Pattern lipgloss.Style

	DiffHeader, DiffAdd, DiffRemove, DiffHunk lipgloss.Style

	SummaryTitle, SummaryValue lipgloss.Style

	TableHeader, TableSeparator lipgloss.Style

	Dim, Bold lipgloss.Style
}

// NewStyles returns the color styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	base := lipgloss.NewStyle()
	if !colorEnabled {
		return &Styles{
			Error: base, Warning: base, Success: base,
			Literal: base, Filled: base, Blank: base, Caret: base,
			Symbol: base, Pattern: base,
			DiffHeader: base, DiffAdd: base, DiffRemove: base, DiffHunk: base,
			SummaryTitle: base, SummaryValue: base,
			TableHeader: base, TableSeparator: base,
			Dim: base, Bold: base,
		}
	}

	fg := func(c string) lipgloss.Style { return base.Foreground(lipgloss.Color(c)) }
	bold := base.Bold(true)

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Success: fg(colorGreen).Bold(true),

		Literal: fg(colorGray),
		Filled:  bold,
		Blank:   base.Underline(true),
		Caret:   base.Reverse(true),

		Symbol:  fg(colorCyan).Bold(true),
		Pattern: fg(colorBlue),

		DiffHeader: bold,
		DiffAdd:    fg(colorGreen),
		DiffRemove: fg(colorRed),
		DiffHunk:   fg(colorCyan),

		SummaryTitle: bold,
		SummaryValue: base,

		TableHeader:    fg(colorWhite).Bold(true),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled reports whether output to w should be colored under mode
// ("auto", "always" or "never"). Auto means w is a terminal and NO_COLOR
// (https://no-color.org/) is empty.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
