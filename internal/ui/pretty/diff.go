package pretty

import (
	"strings"

	"github.com/yaklabco/gomask/pkg/diff"
)

// FormatDiff renders a git-style unified diff, showing displayPath in the
// headers. It returns "" for a nil diff.
func (s *Styles) FormatDiff(d *diff.Unified, displayPath string) string {
	if d == nil {
		return ""
	}

	path := strings.TrimPrefix(displayPath, "/")

	var b strings.Builder
	b.WriteString(s.DiffHeader.Render("diff --git a/"+path+" b/"+path) + "\n")
	b.WriteString(s.DiffRemove.Render("--- a/"+path) + "\n")
	b.WriteString(s.DiffAdd.Render("+++ b/"+path) + "\n")

	for _, hunk := range d.Hunks {
		b.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")
		for _, line := range hunk.Lines {
			text := line.Kind.Prefix() + line.Text
			switch line.Kind {
			case diff.Add:
				text = s.DiffAdd.Render(text)
			case diff.Remove:
				text = s.DiffRemove.Render(text)
			}
			b.WriteString(text + "\n")
		}
	}
	return b.String()
}
