package mask

// Selection is a pair of rune offsets into masked text. Start == End is a
// caret; Start < End selects the runes in [Start, End).
type Selection struct {
	Start int
	End   int
}

// Caret returns a selection collapsed at index.
func Caret(index int) Selection {
	return Selection{Start: index, End: index}
}

// IsCaret reports whether the selection is empty.
func (s Selection) IsCaret() bool {
	return s.Start == s.End
}

// Clamp orders the bounds and clamps both into [0, n].
func (s Selection) Clamp(n int) Selection {
	start, end := clamp(s.Start, 0, n), clamp(s.End, 0, n)
	if start > end {
		start, end = end, start
	}
	return Selection{Start: start, End: end}
}

// Edit is the outcome of an edit primitive: the new masked text and the caret
// to place in it.
type Edit struct {
	Text  string
	Caret int
}

// NextEditableIndex returns the lowest slot index that is still blank. When
// every slot is filled it returns the pattern length.
func (e *Engine) NextEditableIndex(masked string) int {
	return e.nextEditable([]rune(masked))
}

func (e *Engine) nextEditable(masked []rune) int {
	for _, index := range e.slots {
		if index >= len(masked) || masked[index] == Blank {
			return index
		}
	}
	return len(e.pattern)
}

// LastFilledIndexAtOrBefore returns the highest slot index <= from holding an
// accepted rune. from is clamped to the pattern; ok is false when no such slot
// exists.
func (e *Engine) LastFilledIndexAtOrBefore(masked string, from int) (int, bool) {
	return e.lastFilled([]rune(masked), from)
}

func (e *Engine) lastFilled(masked []rune, from int) (int, bool) {
	from = min(from, len(e.pattern)-1)
	for i := len(e.slots) - 1; i >= 0; i-- {
		index := e.slots[i]
		if index > from {
			continue
		}
		if e.filled(masked, index) {
			return index, true
		}
	}
	return 0, false
}

// InsertAt splices text into the raw stream at caret and re-masks.
//
// The raw text is split at caret into the runes before and after it; text is
// placed between them and the result masked as a whole, so the greedy fill
// decides which inserted runes land and which are dropped. The returned caret
// sits right after the inserted content, not at the end of the value.
func (e *Engine) InsertAt(masked string, caret int, text string) Edit {
	runes := []rune(masked)
	caret = clamp(caret, 0, len(e.pattern))

	prefix := e.unmaskRange(runes, 0, caret)
	suffix := e.unmaskRange(runes, caret, len(e.pattern))

	head := e.Mask(prefix + text)
	return Edit{
		Text:  e.Mask(prefix + text + suffix),
		Caret: e.nextEditable([]rune(head)),
	}
}

// DeleteRange blanks every slot in [start, end) and re-masks, which compacts
// the remaining runes to the left. The caret lands right after the last filled
// slot before start, or at start when there is none. It skips back over any
// literals in between, so it can land left of start.
func (e *Engine) DeleteRange(masked string, start, end int) Edit {
	sel := Selection{Start: start, End: end}.Clamp(len(e.pattern))

	runes := e.normalize(masked)
	for _, index := range e.slots {
		if index >= sel.Start && index < sel.End {
			runes[index] = Blank
		}
	}

	out := []rune(e.Mask(e.unmaskRange(runes, 0, len(e.pattern))))
	caret := sel.Start
	if index, ok := e.lastFilled(out, sel.Start-1); ok {
		caret = index + 1
	}
	return Edit{Text: string(out), Caret: caret}
}

// Backspace deletes the nearest filled slot before caret. Literals between the
// caret and that slot are stepped over. With nothing to delete the text is
// re-masked and the caret kept.
func (e *Engine) Backspace(masked string, caret int) Edit {
	caret = clamp(caret, 0, len(e.pattern))
	index, ok := e.lastFilled([]rune(masked), caret-1)
	if !ok {
		return Edit{Text: e.Mask(e.Unmask(masked)), Caret: caret}
	}
	return e.DeleteRange(masked, index, index+1)
}

// DeleteForward deletes the nearest filled slot at or after caret.
func (e *Engine) DeleteForward(masked string, caret int) Edit {
	caret = clamp(caret, 0, len(e.pattern))
	runes := []rune(masked)
	for _, index := range e.slots {
		if index >= caret && e.filled(runes, index) {
			return e.DeleteRange(masked, index, index+1)
		}
	}
	return Edit{Text: e.Mask(e.Unmask(masked)), Caret: caret}
}

// CaretOnFocusOrClick steers the caret to the first blank slot while the field
// has one, regardless of where the user clicked. A full field keeps the
// requested position, clamped.
func (e *Engine) CaretOnFocusOrClick(masked string, requested int) int {
	if next := e.NextEditableIndex(masked); next < len(e.pattern) {
		return next
	}
	return clamp(requested, 0, len(e.pattern))
}

// normalize returns masked as exactly len(pattern) runes, padding with blanks.
func (e *Engine) normalize(masked string) []rune {
	out := []rune(e.blank)
	for i, char := range []rune(masked) {
		if i >= len(out) {
			break
		}
		out[i] = char
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
