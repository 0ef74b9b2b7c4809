// Package mask implements the mask transformation engine.
//
// An Engine binds a mask pattern to a token registry. It formats raw input
// into the pattern's fixed layout, strips the layout back to raw input, and
// computes caret positions for insert, delete, paste and click edits against a
// partially filled mask.
//
// All offsets are rune offsets into the masked text. Every method is a pure
// function of its arguments and the immutable engine, so an Engine may be
// shared freely across goroutines.
package mask

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomask/pkg/token"
)

// Blank marks a token slot that has not been filled yet.
const Blank = ' '

// Engine applies one mask pattern.
type Engine struct {
	pattern  []rune
	registry token.Registry
	slots    []int // indices of token positions, ascending
	isSlot   []bool
	blank    string
}

// New creates an Engine for pattern. Pattern characters the registry does not
// know are literals. An empty pattern is allowed and masks everything to "".
func New(pattern string, registry token.Registry) *Engine {
	runes := []rune(pattern)
	eng := &Engine{
		pattern:  runes,
		registry: registry,
		isSlot:   make([]bool, len(runes)),
	}

	skeleton := make([]rune, len(runes))
	for i, symbol := range runes {
		if registry.IsToken(symbol) {
			eng.slots = append(eng.slots, i)
			eng.isSlot[i] = true
			skeleton[i] = Blank
			continue
		}
		skeleton[i] = symbol
	}
	eng.blank = string(skeleton)

	return eng
}

// Pattern returns the mask pattern.
func (e *Engine) Pattern() string {
	return string(e.pattern)
}

// Registry returns the token registry the engine was built with.
func (e *Engine) Registry() token.Registry {
	return e.registry
}

// Len returns the pattern length in runes, which is also the masked length.
func (e *Engine) Len() int {
	return len(e.pattern)
}

// SlotCount returns the number of token slots in the pattern.
func (e *Engine) SlotCount() int {
	return len(e.slots)
}

// IsSlot reports whether index is a token slot.
func (e *Engine) IsSlot(index int) bool {
	return index >= 0 && index < len(e.isSlot) && e.isSlot[index]
}

// Blank returns the blank skeleton: literals verbatim, every slot blank.
func (e *Engine) Blank() string {
	return e.blank
}

// Mask formats raw into the pattern.
//
// Raw runes are consumed left to right. Each one is offered only to the next
// unfilled slot: if that slot accepts it the slot is filled, otherwise the rune
// is dropped. Filling stops once every slot is filled. A blank never fills a
// slot.
func (e *Engine) Mask(raw string) string {
	out := []rune(e.blank)
	next := 0
	for _, char := range raw {
		if next >= len(e.slots) {
			break
		}
		if char == Blank {
			continue
		}
		index := e.slots[next]
		if e.registry.Accepts(e.pattern[index], char) {
			out[index] = char
			next++
		}
	}
	return string(out)
}

// MaskInt masks the decimal representation of n.
func (e *Engine) MaskInt(n int64) string {
	return e.Mask(strconv.FormatInt(n, 10))
}

// Unmask extracts the raw text from masked. Literals, blanks and runes a slot
// does not accept are dropped. A masked string shorter than the pattern is
// read as far as it goes.
func (e *Engine) Unmask(masked string) string {
	return e.unmaskRange([]rune(masked), 0, len(e.pattern))
}

// UnmaskInt unmasks and parses the result as a base-10 integer.
// ok is false when the raw text is empty or not an integer.
func (e *Engine) UnmaskInt(masked string) (int64, bool) {
	raw := e.Unmask(masked)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// unmaskRange unmasks the slots with index in [from, to).
func (e *Engine) unmaskRange(masked []rune, from, to int) string {
	var b strings.Builder
	for _, index := range e.slots {
		if index < from {
			continue
		}
		if index >= to || index >= len(masked) {
			break
		}
		if e.filled(masked, index) {
			b.WriteRune(masked[index])
		}
	}
	return b.String()
}

// filled reports whether the slot at index holds an accepted rune.
func (e *Engine) filled(masked []rune, index int) bool {
	if index >= len(masked) {
		return false
	}
	char := masked[index]
	return char != Blank && e.registry.Accepts(e.pattern[index], char)
}

// Format masks raw with pattern and the default registry.
func Format(raw, pattern string) string {
	return New(pattern, token.Default()).Mask(raw)
}

// Strip unmasks masked with pattern and the default registry.
func Strip(masked, pattern string) string {
	return New(pattern, token.Default()).Unmask(masked)
}
