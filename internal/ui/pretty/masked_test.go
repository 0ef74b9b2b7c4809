package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomask/internal/ui/pretty"
	"github.com/yaklabco/gomask/pkg/mask"
	"github.com/yaklabco/gomask/pkg/token"
)

func TestRenderMasked_NoColorKeepsText(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	engine := mask.New("(N) NNN", token.Default())

	tests := []struct {
		name   string
		masked string
		caret  int
		want   string
	}{
		{"blank without caret", "( )    ", pretty.NoCaret, "( )    "},
		{"partial with caret inside", "(1) 2  ", 5, "(1) 2  "},
		{"caret at end adds a cell", "(1) 234", 7, "(1) 234 "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.RenderMasked(engine, tc.masked, tc.caret))
		})
	}
}
