package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Table formatting constants.
const (
	tablePadding     = 2
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	minColumnWidth   = 4
	ellipsis         = "..."
)

// Table is a simple column-aligned table. The last column absorbs any
// shrinking needed to fit the terminal width.
type Table struct {
	Headers []string
	Rows    [][]string

	// Columns styles cells per column, typically with lipgloss Style.Render.
	// Missing or nil entries render unstyled.
	Columns []func(...string) string
}

// TableFormatter renders tables with the configured styles.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// Format renders the table. An empty table renders as "".
func (t *TableFormatter) Format(table Table) string {
	if len(table.Rows) == 0 {
		return ""
	}

	widths := t.columnWidths(table)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(formatCells(table.Headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range table.Rows {
		cells := make([]string, len(widths))
		for i := range widths {
			if i < len(row) {
				cells[i] = truncateString(row[i], widths[i])
			}
		}

		padded := padCells(cells, widths)
		for i, cell := range padded {
			if i < len(table.Columns) && table.Columns[i] != nil {
				padded[i] = table.Columns[i](cell)
			}
		}
		builder.WriteString(" " + strings.Join(padded, strings.Repeat(" ", tablePadding)))
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths, lightSeparator))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) columnWidths(table Table) []int {
	widths := make([]int, len(table.Headers))
	for i, header := range table.Headers {
		widths[i] = max(minColumnWidth, utf8.RuneCountInString(header))
	}
	for _, row := range table.Rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	if last := len(widths) - 1; last >= 0 {
		total := t.totalWidth(widths)
		if total > t.termWidth {
			widths[last] = max(minColumnWidth, widths[last]-(total-t.termWidth))
		}
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w
	}
	return total + tablePadding*(len(widths)-1)
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths)))
}

func formatCells(cells []string, widths []int) string {
	return " " + strings.Join(padCells(cells, widths), strings.Repeat(" ", tablePadding))
}

func padCells(cells []string, widths []int) []string {
	padded := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = fmt.Sprintf("%-*s", w, cell)
	}
	return padded
}

// truncateString shortens s to maxLen runes, marking the cut with an ellipsis.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}
