package field

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/gomask/pkg/mask"
)

// Op is an edit operation. It is implemented by the types in this file only.
type Op interface {
	isOp()
}

// Insert types Text at caret At.
type Insert struct {
	Text string
	At   int
}

// DeleteRange removes the slots in [Start, End).
type DeleteRange struct {
	Start int
	End   int
}

// Backspace deletes the selection, or the filled slot before a caret.
type Backspace struct {
	Selection mask.Selection
}

// DeleteForward deletes the selection, or the filled slot after a caret.
type DeleteForward struct {
	Selection mask.Selection
}

// Paste inserts clipboard text over Selection.
type Paste struct {
	Text      string
	Selection mask.Selection
}

// FocusSnap places the caret after focus or a click at Requested.
type FocusSnap struct {
	Requested int
}

// MoveCaret moves the caret without editing.
type MoveCaret struct {
	To int
}

func (Insert) isOp()        {}
func (DeleteRange) isOp()   {}
func (Backspace) isOp()     {}
func (DeleteForward) isOp() {}
func (Paste) isOp()         {}
func (FocusSnap) isOp()     {}
func (MoveCaret) isOp()     {}

// Apply performs op and returns the resulting widget state. Edits emit the new
// value to the setter; FocusSnap and MoveCaret only move the caret.
func (f *Field) Apply(op Op) State {
	switch op := op.(type) {
	case Insert:
		f.commit(f.engine.InsertAt(f.masked, op.At, op.Text))

	case DeleteRange:
		f.commit(f.engine.DeleteRange(f.masked, op.Start, op.End))

	case Backspace:
		sel := op.Selection.Clamp(f.engine.Len())
		if sel.IsCaret() {
			f.commit(f.engine.Backspace(f.masked, sel.Start))
		} else {
			f.commit(f.engine.DeleteRange(f.masked, sel.Start, sel.End))
		}

	case DeleteForward:
		sel := op.Selection.Clamp(f.engine.Len())
		if sel.IsCaret() {
			f.commit(f.engine.DeleteForward(f.masked, sel.Start))
		} else {
			f.commit(f.engine.DeleteRange(f.masked, sel.Start, sel.End))
		}

	case Paste:
		f.commit(f.paste(op))

	case FocusSnap:
		f.caret = f.engine.CaretOnFocusOrClick(f.masked, op.Requested)

	case MoveCaret:
		f.caret = mask.Caret(op.To).Clamp(f.engine.Len()).Start

	default:
		panic(fmt.Sprintf("field: unknown op %T", op))
	}

	return f.State()
}

// paste replaces the whole value when the clipboard holds a complete masked
// value, and otherwise splices it into the raw text at the selection.
func (f *Field) paste(op Paste) mask.Edit {
	if utf8.RuneCountInString(op.Text) == f.engine.Len() {
		masked := f.engine.Mask(f.engine.Unmask(op.Text))
		return mask.Edit{Text: masked, Caret: f.engine.CaretOnFocusOrClick(masked, f.engine.Len())}
	}

	masked := f.masked
	sel := op.Selection.Clamp(f.engine.Len())
	caret := sel.Start
	if !sel.IsCaret() {
		cleared := f.engine.DeleteRange(masked, sel.Start, sel.End)
		masked, caret = cleared.Text, cleared.Caret
	}
	return f.engine.InsertAt(masked, caret, op.Text)
}

func (f *Field) commit(edit mask.Edit) {
	f.masked = edit.Text
	f.caret = edit.Caret
	f.emit()
}
