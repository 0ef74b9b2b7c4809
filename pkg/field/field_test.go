package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomask/pkg/field"
	"github.com/yaklabco/gomask/pkg/mask"
	"github.com/yaklabco/gomask/pkg/token"
)

const phone = "(N) NNN"

// recorder collects emitted values.
type recorder struct {
	values []field.Value
}

func (r *recorder) set(v field.Value) {
	r.values = append(r.values, v)
}

func (r *recorder) last(t *testing.T) field.Value {
	t.Helper()
	require.NotEmpty(t, r.values, "no value emitted")
	return r.values[len(r.values)-1]
}

func newField(t *testing.T, opts ...field.Option) (*field.Field, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append(opts, field.WithSetter(rec.set))
	fld, err := field.New(phone, token.Default(), opts...)
	require.NoError(t, err)
	return fld, rec
}

func TestNew_EmptyPatternIsConfigurationError(t *testing.T) {
	t.Parallel()

	_, err := field.New("", token.Default())
	require.ErrorIs(t, err, field.ErrMaskNotProvided)
}

func TestNew_InitialValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial string
		want    string
	}{
		{"empty", "", "( )    "},
		{"raw digits", "1234", "(1) 234"},
		{"already masked", "(1) 234", "(1) 234"},
		{"partially masked", "(1) 2  ", "(1) 2  "},
		{"raw as long as the pattern", "1234567", "(1) 234"},
		{"raw longer than the pattern", "123456789", "(1) 234"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fld, rec := newField(t, field.WithInitialValue(tc.initial))
			assert.Equal(t, tc.want, fld.Masked())
			assert.Equal(t, 0, fld.Caret())
			assert.Empty(t, rec.values, "no emission without init change")
		})
	}
}

func TestNew_InitChangeEmits(t *testing.T) {
	t.Parallel()

	_, rec := newField(t, field.WithInitialValue("12"), field.WithInitChange(), field.WithUnmask())
	require.Len(t, rec.values, 1)
	assert.Equal(t, field.Value{Text: "12"}, rec.values[0])
}

func TestApply_TypingSequence(t *testing.T) {
	t.Parallel()

	fld, rec := newField(t)

	state := fld.Apply(field.FocusSnap{Requested: 5})
	assert.Equal(t, field.State{Text: "( )    ", Caret: 1}, state)
	assert.Empty(t, rec.values, "focus does not emit")

	for _, char := range []string{"1", "2", "x", "3", "4", "5"} {
		state = fld.Apply(field.Insert{Text: char, At: state.Caret})
	}

	assert.Equal(t, field.State{Text: "(1) 234", Caret: 7}, state)
	assert.Len(t, rec.values, 6)
	assert.Equal(t, field.Value{Text: "(1) 234"}, rec.last(t))
}

func TestApply_BackspaceAndRetype(t *testing.T) {
	t.Parallel()

	fld, _ := newField(t, field.WithInitialValue("1234"))

	state := fld.Apply(field.Backspace{Selection: mask.Caret(5)})
	assert.Equal(t, field.State{Text: "(1) 34 ", Caret: 2}, state)

	state = fld.Apply(field.Insert{Text: "2", At: state.Caret})
	assert.Equal(t, field.State{Text: "(1) 234", Caret: 5}, state)
}

func TestApply_BackspaceSelection(t *testing.T) {
	t.Parallel()

	fld, _ := newField(t, field.WithInitialValue("1234"))

	state := fld.Apply(field.Backspace{Selection: mask.Selection{Start: 6, End: 4}})
	assert.Equal(t, field.State{Text: "(1) 4  ", Caret: 2}, state)
}

func TestApply_DeleteForward(t *testing.T) {
	t.Parallel()

	fld, _ := newField(t, field.WithInitialValue("1234"))

	state := fld.Apply(field.DeleteForward{Selection: mask.Caret(2)})
	assert.Equal(t, field.State{Text: "(1) 34 ", Caret: 2}, state)

	state = fld.Apply(field.DeleteForward{Selection: mask.Selection{Start: 0, End: 7}})
	assert.Equal(t, field.State{Text: "( )    ", Caret: 0}, state)
}

func TestApply_DeleteRange(t *testing.T) {
	t.Parallel()

	fld, rec := newField(t, field.WithInitialValue("1234"), field.WithUnmask())

	state := fld.Apply(field.DeleteRange{Start: 4, End: 5})
	assert.Equal(t, field.State{Text: "(1) 34 ", Caret: 2}, state)
	assert.Equal(t, field.Value{Text: "134"}, rec.last(t))
}

func TestApply_Paste(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial string
		paste   field.Paste
		want    field.State
	}{
		{
			name:  "raw text into empty field drops rejected runes",
			paste: field.Paste{Text: "12ab34", Selection: mask.Caret(0)},
			want:  field.State{Text: "(1) 234", Caret: 7},
		},
		{
			name:  "already masked value replaces everything",
			paste: field.Paste{Text: "(9) 876", Selection: mask.Caret(3)},
			want:  field.State{Text: "(9) 876", Caret: 7},
		},
		{
			name:  "partially masked value snaps to next blank",
			paste: field.Paste{Text: "(9) 8  ", Selection: mask.Caret(0)},
			want:  field.State{Text: "(9) 8  ", Caret: 5},
		},
		{
			name:    "over a selection",
			initial: "1234",
			paste:   field.Paste{Text: "98", Selection: mask.Selection{Start: 4, End: 6}},
			want:    field.State{Text: "(1) 984", Caret: 6},
		},
		{
			name:    "at caret in the middle",
			initial: "14",
			paste:   field.Paste{Text: "23", Selection: mask.Caret(4)},
			want:    field.State{Text: "(1) 234", Caret: 6},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fld, rec := newField(t, field.WithInitialValue(tc.initial))
			assert.Equal(t, tc.want, fld.Apply(tc.paste))
			assert.Len(t, rec.values, 1)
		})
	}
}

func TestApply_MoveCaret(t *testing.T) {
	t.Parallel()

	fld, rec := newField(t, field.WithInitialValue("12"))

	assert.Equal(t, 3, fld.Apply(field.MoveCaret{To: 3}).Caret)
	assert.Equal(t, 7, fld.Apply(field.MoveCaret{To: 70}).Caret)
	assert.Equal(t, 0, fld.Apply(field.MoveCaret{To: -2}).Caret)
	assert.Empty(t, rec.values)
}

func TestApply_FocusSnapOnFullField(t *testing.T) {
	t.Parallel()

	fld, _ := newField(t, field.WithInitialValue("1234"))
	assert.Equal(t, 2, fld.Apply(field.FocusSnap{Requested: 2}).Caret)
}

func TestHideOnEmpty(t *testing.T) {
	t.Parallel()

	fld, rec := newField(t, field.WithHideOnEmpty())

	assert.Empty(t, fld.Text())
	assert.True(t, fld.Empty())
	assert.Equal(t, "( )    ", fld.Masked())

	state := fld.Apply(field.Insert{Text: "1", At: 0})
	assert.Equal(t, "(1)    ", state.Text)
	assert.Equal(t, field.Value{Text: "(1)    "}, rec.last(t))

	state = fld.Apply(field.Backspace{Selection: mask.Caret(state.Caret)})
	assert.Empty(t, state.Text)
	assert.Equal(t, field.Value{}, rec.last(t))
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	fld, rec := newField(t, field.WithParseInt(), field.WithUnmask())

	fld.Apply(field.Insert{Text: "42", At: 0})
	assert.Equal(t, field.Value{Text: "42", Int: 42, HasInt: true}, rec.last(t))
	assert.Equal(t, "42", rec.last(t).String())

	fld.Apply(field.DeleteRange{Start: 0, End: 7})
	assert.Equal(t, field.Value{}, rec.last(t), "cleared field emits the empty value")
	assert.Empty(t, rec.last(t).String())
}

func TestParseInt_NonNumeric(t *testing.T) {
	t.Parallel()

	fld, err := field.New("XX", token.Default(), field.WithParseInt())
	require.NoError(t, err)

	fld.Apply(field.Insert{Text: "1a", At: 0})
	assert.Equal(t, field.Value{}, fld.Value())
	assert.Equal(t, "1a", fld.Raw())
}

func TestApply_UnknownOpPanics(t *testing.T) {
	t.Parallel()

	fld, _ := newField(t)
	assert.Panics(t, func() { fld.Apply(nil) })
}

func TestField_Accessors(t *testing.T) {
	t.Parallel()

	fld, _ := newField(t, field.WithInitialValue("12"))
	assert.Equal(t, phone, fld.Engine().Pattern())
	assert.Equal(t, "12", fld.Raw())
	assert.Equal(t, field.Value{Text: "(1) 2  "}, fld.Value())
	assert.Equal(t, field.State{Text: "(1) 2  ", Caret: 0}, fld.State())
}
