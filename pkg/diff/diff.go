// Package diff computes line-oriented unified diffs between two versions
// of a file.
package diff

import (
	"fmt"
	"strings"
)

// Kind classifies a line of a hunk.
type Kind int

const (
	// Context is a line present in both versions.
	Context Kind = iota

	// Add is a line only in the new version.
	Add

	// Remove is a line only in the old version.
	Remove
)

// Prefix returns the unified diff marker for the kind.
func (k Kind) Prefix() string {
	switch k {
	case Add:
		return "+"
	case Remove:
		return "-"
	default:
		return " "
	}
}

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Line is one line of a hunk, without its trailing newline.
type Line struct {
	Kind Kind
	Text string
}

// Hunk is a contiguous group of changes with surrounding context.
// Start lines are 1-based; a zero count has the start of the line before.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Unified is the difference between two versions of one file.
type Unified struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute diffs before and after line by line with DefaultContext lines of
// context. It returns nil if the contents are equal.
func Compute(path string, before, after []byte) *Unified {
	return ComputeContext(path, before, after, DefaultContext)
}

// ComputeContext is Compute with an explicit number of context lines.
func ComputeContext(path string, before, after []byte, context int) *Unified {
	if string(before) == string(after) {
		return nil
	}

	ops := script(splitLines(before), splitLines(after))

	unified := &Unified{Path: path, Hunks: group(ops, max(context, 0))}
	for _, o := range ops {
		switch o.Kind {
		case Add:
			unified.Additions++
		case Remove:
			unified.Deletions++
		}
	}

	// Only a trailing newline differs.
	if len(unified.Hunks) == 0 {
		return nil
	}
	return unified
}

// String renders the diff in unified format with "a/" and "b/" prefixes.
func (u *Unified) String() string {
	if u == nil {
		return ""
	}

	path := strings.TrimPrefix(u.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range u.Hunks {
		b.WriteString(hunk.Header())
		b.WriteByte('\n')
		for _, line := range hunk.Lines {
			b.WriteString(line.Kind.Prefix())
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// script returns the edit script turning from into to. Common leading and
// trailing lines are matched first. A middle section of equal length is
// aligned line by line, which is how record rewrites change a file; any
// other middle is diffed by longest common subsequence.
func script(from, to []string) []Line {
	prefix := 0
	for prefix < len(from) && prefix < len(to) && from[prefix] == to[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(from)-prefix && suffix < len(to)-prefix &&
		from[len(from)-1-suffix] == to[len(to)-1-suffix] {
		suffix++
	}

	ops := make([]Line, 0, len(from)+len(to))
	for _, text := range from[:prefix] {
		ops = append(ops, Line{Kind: Context, Text: text})
	}

	fromMid := from[prefix : len(from)-suffix]
	toMid := to[prefix : len(to)-suffix]
	if len(fromMid) == len(toMid) {
		ops = appendAligned(ops, fromMid, toMid)
	} else {
		ops = appendLCS(ops, fromMid, toMid)
	}

	for _, text := range from[len(from)-suffix:] {
		ops = append(ops, Line{Kind: Context, Text: text})
	}
	return ops
}

// appendAligned pairs lines by position. Runs of changed lines are
// emitted as all removals followed by all additions.
func appendAligned(ops []Line, from, to []string) []Line {
	for i := 0; i < len(from); {
		if from[i] == to[i] {
			ops = append(ops, Line{Kind: Context, Text: from[i]})
			i++
			continue
		}
		j := i
		for j < len(from) && from[j] != to[j] {
			j++
		}
		for _, text := range from[i:j] {
			ops = append(ops, Line{Kind: Remove, Text: text})
		}
		for _, text := range to[i:j] {
			ops = append(ops, Line{Kind: Add, Text: text})
		}
		i = j
	}
	return ops
}

func appendLCS(ops []Line, from, to []string) []Line {
	// lcs[i][j] is the LCS length of from[i:] and to[j:].
	lcs := make([][]int, len(from)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(to)+1)
	}
	for i := len(from) - 1; i >= 0; i-- {
		for j := len(to) - 1; j >= 0; j-- {
			if from[i] == to[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(from) || j < len(to) {
		switch {
		case i < len(from) && j < len(to) && from[i] == to[j]:
			ops = append(ops, Line{Kind: Context, Text: from[i]})
			i++
			j++
		case j == len(to) || (i < len(from) && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, Line{Kind: Remove, Text: from[i]})
			i++
		default:
			ops = append(ops, Line{Kind: Add, Text: to[j]})
			j++
		}
	}
	return ops
}

// group splits an edit script into hunks. Changes separated by more than
// twice the context share no lines and become separate hunks.
func group(ops []Line, context int) []Hunk {
	// oldAt[k] and newAt[k] count the old and new lines before ops[k].
	oldAt := make([]int, len(ops)+1)
	newAt := make([]int, len(ops)+1)
	for k, o := range ops {
		oldAt[k+1], newAt[k+1] = oldAt[k], newAt[k]
		if o.Kind != Add {
			oldAt[k+1]++
		}
		if o.Kind != Remove {
			newAt[k+1]++
		}
	}

	var hunks []Hunk
	for k := 0; k < len(ops); {
		if ops[k].Kind == Context {
			k++
			continue
		}

		start := max(k-context, 0)
		end := k + 1
		for j := k + 1; j < len(ops); j++ {
			if ops[j].Kind != Context {
				end = j + 1
				continue
			}
			if j-end+1 > 2*context {
				break
			}
		}
		stop := min(end+context, len(ops))

		hunk := Hunk{
			OldCount: oldAt[stop] - oldAt[start],
			NewCount: newAt[stop] - newAt[start],
			Lines:    ops[start:stop],
		}
		hunk.OldStart = oldAt[start]
		if hunk.OldCount > 0 {
			hunk.OldStart++
		}
		hunk.NewStart = newAt[start]
		if hunk.NewCount > 0 {
			hunk.NewStart++
		}

		hunks = append(hunks, hunk)
		k = stop
	}
	return hunks
}
