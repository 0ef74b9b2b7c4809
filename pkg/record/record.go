// Package record applies field masks to values inside JSON documents.
//
// Each Binding names a gjson path and the engine that formats the value found
// there. Masking turns raw values into their masked form; unmasking strips a
// masked value back to raw text, optionally as a JSON number.
package record

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/yaklabco/gomask/pkg/mask"
)

// ErrInvalidJSON is returned for input that is not a JSON document.
var ErrInvalidJSON = errors.New("invalid JSON")

// maxLineSize bounds a single NDJSON record.
const maxLineSize = 4 * 1024 * 1024

// Mode selects the direction of a Binding.
type Mode string

const (
	// ModeMask formats raw values with the mask.
	ModeMask Mode = "mask"
	// ModeUnmask strips the mask from masked values.
	ModeUnmask Mode = "unmask"
)

// Binding ties a JSON path to a mask engine.
type Binding struct {
	// Name identifies the binding in errors and logs.
	Name string

	// Path is a gjson path such as "contact.phone".
	Path string

	// Engine formats the value.
	Engine *mask.Engine

	// Mode selects masking or unmasking.
	Mode Mode

	// ParseInt writes unmasked values as JSON numbers. A value that does not
	// parse is written as "".
	ParseInt bool
}

// Stats counts records processed by Stream.
type Stats struct {
	Records int
	Changed int
}

// Apply rewrites doc with every binding applied in order. Paths that do not
// exist, and values that are neither strings nor numbers, are left alone.
func Apply(doc []byte, bindings []Binding) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidJSON
	}

	out := doc
	for _, binding := range bindings {
		res := gjson.GetBytes(out, binding.Path)
		if !res.Exists() {
			continue
		}

		var value string
		switch res.Type {
		case gjson.String:
			value = res.Str
		case gjson.Number:
			value = res.Raw
		default:
			continue
		}

		next, err := binding.set(out, value)
		if err != nil {
			return nil, fmt.Errorf("%s: set %q: %w", binding.Name, binding.Path, err)
		}
		out = next
	}

	return out, nil
}

func (b Binding) set(doc []byte, value string) ([]byte, error) {
	if b.Mode != ModeUnmask {
		return sjson.SetBytes(doc, b.Path, b.Engine.Mask(value))
	}
	if !b.ParseInt {
		return sjson.SetBytes(doc, b.Path, b.Engine.Unmask(value))
	}
	if n, ok := b.Engine.UnmaskInt(value); ok {
		return sjson.SetBytes(doc, b.Path, n)
	}
	return sjson.SetBytes(doc, b.Path, "")
}

// Stream applies bindings to newline-delimited JSON from r and writes each
// result to w. Blank lines are passed through. The context is checked between
// records.
func Stream(ctx context.Context, r io.Reader, w io.Writer, bindings []Binding) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++

		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("stream: %w", ctx.Err())
		default:
		}

		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return stats, fmt.Errorf("write: %w", err)
			}
			continue
		}

		out, err := Apply(data, bindings)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", line, err)
		}

		stats.Records++
		if !bytes.Equal(out, data) {
			stats.Changed++
		}

		// out may alias the scanner's buffer, so the newline is written separately.
		if _, err := w.Write(out); err != nil {
			return stats, fmt.Errorf("write: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return stats, fmt.Errorf("write: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read: %w", err)
	}

	return stats, nil
}

// Process applies bindings to data holding either one JSON document, which
// may span several lines, or newline-delimited JSON records.
func Process(ctx context.Context, data []byte, bindings []Binding) ([]byte, Stats, error) {
	if gjson.ValidBytes(data) {
		out, err := Apply(data, bindings)
		if err != nil {
			return nil, Stats{}, err
		}
		stats := Stats{Records: 1}
		if !bytes.Equal(out, data) {
			stats.Changed = 1
		}
		return out, stats, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	stats, err := Stream(ctx, bytes.NewReader(data), &buf, bindings)
	if err != nil {
		return nil, stats, err
	}

	out := buf.Bytes()
	if len(data) > 0 && data[len(data)-1] != '\n' {
		out = bytes.TrimSuffix(out, []byte("\n"))
	}
	return out, stats, nil
}
