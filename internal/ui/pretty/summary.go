package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomask/pkg/record"
)

const (
	wordFile    = "file"
	wordFiles   = "files"
	wordRecord  = "record"
	wordRecords = "records"
)

// ApplySummary describes one run of `gomask apply`.
type ApplySummary struct {
	Files   int
	Stats   record.Stats
	Written int
}

// FormatApplySummary formats apply statistics as a single line.
// Example: "12 records in 3 files, 4 changed, 2 files written".
func (s *Styles) FormatApplySummary(summary ApplySummary) string {
	parts := []string{
		fmt.Sprintf("%d %s in %d %s",
			summary.Stats.Records, plural(summary.Stats.Records, wordRecord, wordRecords),
			summary.Files, plural(summary.Files, wordFile, wordFiles)),
	}

	if summary.Stats.Changed == 0 {
		parts = append(parts, s.Dim.Render("nothing changed"))
	} else {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d changed", summary.Stats.Changed)))
	}

	if summary.Written > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s written",
			summary.Written, plural(summary.Written, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
