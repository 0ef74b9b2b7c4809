package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomask/internal/ui/pretty"
)

func allStyles(s *pretty.Styles) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"Error":          s.Error,
		"Warning":        s.Warning,
		"Success":        s.Success,
		"Literal":        s.Literal,
		"Filled":         s.Filled,
		"Blank":          s.Blank,
		"Caret":          s.Caret,
		"Symbol":         s.Symbol,
		"Pattern":        s.Pattern,
		"DiffHeader":     s.DiffHeader,
		"DiffAdd":        s.DiffAdd,
		"DiffRemove":     s.DiffRemove,
		"DiffHunk":       s.DiffHunk,
		"SummaryTitle":   s.SummaryTitle,
		"SummaryValue":   s.SummaryValue,
		"TableHeader":    s.TableHeader,
		"TableSeparator": s.TableSeparator,
		"Dim":            s.Dim,
		"Bold":           s.Bold,
	}
}

func TestNewStyles_NoColorIsPlain(t *testing.T) {
	t.Parallel()

	for name, style := range allStyles(pretty.NewStyles(false)) {
		assert.Equal(t, "(555) 123-4567", style.Render("(555) 123-4567"), name)
	}
}

func TestNewStyles_ColorKeepsText(t *testing.T) {
	t.Parallel()

	// lipgloss may drop ANSI sequences without a TTY, so only the text is
	// checked here.
	for name, style := range allStyles(pretty.NewStyles(true)) {
		assert.Contains(t, style.Render("x"), "x", name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		name string
		mode string
		want bool
	}{
		{name: "always on a buffer", mode: "always", want: true},
		{name: "never", mode: "never", want: false},
		{name: "auto on a buffer", mode: "auto", want: false},
		{name: "empty behaves as auto", mode: "", want: false},
		{name: "unknown behaves as auto", mode: "sometimes", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &bytes.Buffer{}))
		})
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}
