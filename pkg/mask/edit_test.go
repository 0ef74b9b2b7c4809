package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomask/pkg/mask"
	"github.com/yaklabco/gomask/pkg/token"
)

const phonePattern = "(N) NNN"

func newPhone() *mask.Engine {
	return mask.New(phonePattern, token.Default())
}

func TestSelection_Clamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sel  mask.Selection
		n    int
		want mask.Selection
	}{
		{"in range", mask.Selection{Start: 1, End: 3}, 5, mask.Selection{Start: 1, End: 3}},
		{"reversed", mask.Selection{Start: 4, End: 2}, 5, mask.Selection{Start: 2, End: 4}},
		{"negative start", mask.Selection{Start: -3, End: 2}, 5, mask.Selection{Start: 0, End: 2}},
		{"past end", mask.Selection{Start: 3, End: 99}, 5, mask.Selection{Start: 3, End: 5}},
		{"empty text", mask.Selection{Start: 3, End: 4}, 0, mask.Selection{Start: 0, End: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.sel.Clamp(tc.n))
		})
	}

	assert.True(t, mask.Caret(3).IsCaret())
	assert.False(t, mask.Selection{Start: 1, End: 2}.IsCaret())
}

func TestNextEditableIndex(t *testing.T) {
	t.Parallel()

	eng := newPhone()

	assert.Equal(t, 1, eng.NextEditableIndex("( )    "))
	assert.Equal(t, 4, eng.NextEditableIndex("(1)    "))
	assert.Equal(t, 6, eng.NextEditableIndex("(1) 23 "))
	assert.Equal(t, 7, eng.NextEditableIndex("(1) 234"))
	assert.Equal(t, 5, eng.NextEditableIndex("(1) 2"), "missing runes count as blank")
	assert.Equal(t, 0, mask.New("", token.Default()).NextEditableIndex("anything"))
}

func TestLastFilledIndexAtOrBefore(t *testing.T) {
	t.Parallel()

	eng := newPhone()

	tests := []struct {
		name   string
		masked string
		from   int
		want   int
		ok     bool
	}{
		{"full from end", "(1) 234", 6, 6, true},
		{"skips literals", "(1) 234", 3, 1, true},
		{"from past end is clamped", "(1) 234", 99, 6, true},
		{"skips blanks", "(1) 2  ", 6, 4, true},
		{"nothing filled", "( )    ", 6, 0, false},
		{"before first slot", "(1) 234", 0, 0, false},
		{"negative", "(1) 234", -1, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := eng.LastFilledIndexAtOrBefore(tc.masked, tc.from)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInsertAt(t *testing.T) {
	t.Parallel()

	eng := newPhone()

	tests := []struct {
		name   string
		masked string
		caret  int
		text   string
		want   mask.Edit
	}{
		{"first rune", "( )    ", 0, "1", mask.Edit{Text: "(1)    ", Caret: 4}},
		{"append", "(1) 2  ", 6, "3", mask.Edit{Text: "(1) 23 ", Caret: 6}},
		{"insert in the middle shifts right", "(1) 34 ", 4, "2", mask.Edit{Text: "(1) 234", Caret: 5}},
		{"insert at start", "(2) 34 ", 1, "1", mask.Edit{Text: "(1) 234", Caret: 4}},
		{"rejected rune keeps caret", "(1) 2  ", 5, "x", mask.Edit{Text: "(1) 2  ", Caret: 5}},
		{"paste fills greedily", "( )    ", 0, "1a234", mask.Edit{Text: "(1) 234", Caret: 7}},
		{"paste in middle drops overflow", "(1) 23 ", 4, "98", mask.Edit{Text: "(1) 982", Caret: 6}},
		{"full value at end", "(1) 234", 7, "5", mask.Edit{Text: "(1) 234", Caret: 7}},
		{"caret clamped", "(1)    ", 42, "2", mask.Edit{Text: "(1) 2  ", Caret: 5}},
		{"negative caret", "(1)    ", -5, "2", mask.Edit{Text: "(2) 1  ", Caret: 4}},
		{"empty insert re-masks", "(1) 2  ", 3, "", mask.Edit{Text: "(1) 2  ", Caret: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, eng.InsertAt(tc.masked, tc.caret, tc.text))
		})
	}
}

func TestDeleteRange(t *testing.T) {
	t.Parallel()

	eng := newPhone()

	tests := []struct {
		name   string
		masked string
		start  int
		end    int
		want   mask.Edit
	}{
		{"single middle slot compacts", "(1) 234", 4, 5, mask.Edit{Text: "(1) 34 ", Caret: 2}},
		{"last slot", "(1) 234", 6, 7, mask.Edit{Text: "(1) 23 ", Caret: 6}},
		{"first slot", "(1) 234", 1, 2, mask.Edit{Text: "(2) 34 ", Caret: 1}},
		{"range over literals", "(1) 234", 1, 5, mask.Edit{Text: "(3) 4  ", Caret: 1}},
		{"select all", "(1) 234", 0, 7, mask.Edit{Text: "( )    ", Caret: 0}},
		{"reversed range", "(1) 234", 7, 5, mask.Edit{Text: "(1) 2  ", Caret: 5}},
		{"literal only", "(1) 234", 2, 4, mask.Edit{Text: "(1) 234", Caret: 2}},
		{"out of range", "(1) 234", 50, 60, mask.Edit{Text: "(1) 234", Caret: 7}},
		{"short masked text", "(1) 2", 4, 5, mask.Edit{Text: "(1)    ", Caret: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, eng.DeleteRange(tc.masked, tc.start, tc.end))
		})
	}
}

func TestDeleteThenRetype(t *testing.T) {
	t.Parallel()

	eng := newPhone()
	original := "(1) 234"

	deleted := eng.DeleteRange(original, 4, 5)
	assert.Equal(t, "(1) 34 ", deleted.Text)

	// Retyping at the freed slot restores the value and puts the caret after it.
	retyped := eng.InsertAt(deleted.Text, 4, "2")
	assert.Equal(t, original, retyped.Text)
	assert.Equal(t, 5, retyped.Caret)

	// Retyping at the caret DeleteRange returned gives the same result.
	retyped = eng.InsertAt(deleted.Text, deleted.Caret, "2")
	assert.Equal(t, original, retyped.Text)
	assert.Equal(t, 5, retyped.Caret)
}

func TestBackspace(t *testing.T) {
	t.Parallel()

	eng := newPhone()

	tests := []struct {
		name   string
		masked string
		caret  int
		want   mask.Edit
	}{
		{"after last rune", "(1) 234", 7, mask.Edit{Text: "(1) 23 ", Caret: 6}},
		{"steps over literals", "(1) 234", 4, mask.Edit{Text: "(2) 34 ", Caret: 1}},
		{"caret past blanks", "(1) 2  ", 7, mask.Edit{Text: "(1)    ", Caret: 2}},
		{"nothing before caret", "(1) 234", 1, mask.Edit{Text: "(1) 234", Caret: 1}},
		{"empty field", "( )    ", 4, mask.Edit{Text: "( )    ", Caret: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, eng.Backspace(tc.masked, tc.caret))
		})
	}
}

func TestBackspace_RepeatedWalksLeft(t *testing.T) {
	t.Parallel()

	eng := newPhone()
	edit := mask.Edit{Text: "(1) 234", Caret: 7}

	wantCarets := []int{6, 5, 2, 1}
	wantTexts := []string{"(1) 23 ", "(1) 2  ", "(1)    ", "( )    "}
	for i := range wantCarets {
		edit = eng.Backspace(edit.Text, edit.Caret)
		assert.Equal(t, wantTexts[i], edit.Text, "step %d", i)
		assert.Equal(t, wantCarets[i], edit.Caret, "step %d", i)
	}
}

func TestDeleteForward(t *testing.T) {
	t.Parallel()

	eng := newPhone()

	assert.Equal(t, mask.Edit{Text: "(1) 34 ", Caret: 2}, eng.DeleteForward("(1) 234", 2))
	assert.Equal(t, mask.Edit{Text: "(1) 24 ", Caret: 5}, eng.DeleteForward("(1) 234", 5))
	assert.Equal(t, mask.Edit{Text: "(1) 23 ", Caret: 6}, eng.DeleteForward("(1) 23 ", 6))
}

func TestCaretOnFocusOrClick(t *testing.T) {
	t.Parallel()

	eng := newPhone()

	for _, requested := range []int{-1, 0, 2, 5, 7, 100} {
		assert.Equal(t, 4, eng.CaretOnFocusOrClick("(1)    ", requested), "requested %d", requested)
	}

	assert.Equal(t, 3, eng.CaretOnFocusOrClick("(1) 234", 3))
	assert.Equal(t, 7, eng.CaretOnFocusOrClick("(1) 234", 100))
	assert.Equal(t, 0, eng.CaretOnFocusOrClick("(1) 234", -4))
}

func TestEmptyPattern(t *testing.T) {
	t.Parallel()

	eng := mask.New("", token.Default())

	assert.Empty(t, eng.Blank())
	assert.Empty(t, eng.Mask("abc"))
	assert.Empty(t, eng.Unmask("abc"))
	assert.Equal(t, mask.Edit{}, eng.InsertAt("", 3, "x"))
	assert.Equal(t, mask.Edit{}, eng.DeleteRange("", 0, 3))
	assert.Equal(t, mask.Edit{}, eng.Backspace("", 1))
	assert.Equal(t, 0, eng.CaretOnFocusOrClick("", 9))

	_, ok := eng.LastFilledIndexAtOrBefore("", 0)
	assert.False(t, ok)
}
