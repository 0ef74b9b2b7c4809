// Package field binds a mask engine to the state of one input widget.
//
// A Field owns the current masked text and caret. Widget adapters translate
// their native events into Ops and hand them to Apply, which performs exactly
// one engine call per Op and publishes the resulting value to the bound
// setter. A Field is not safe for concurrent use; it belongs to the adapter
// that owns the widget.
package field

import (
	"errors"
	"strconv"

	"github.com/yaklabco/gomask/pkg/mask"
	"github.com/yaklabco/gomask/pkg/token"
)

// ErrMaskNotProvided is returned by New when the pattern is empty.
var ErrMaskNotProvided = errors.New("mask not provided")

// Value is what a Field publishes to its bound host state.
type Value struct {
	// Text is the masked text, or the raw text when unmasking or parsing.
	Text string

	// Int is the parsed value; valid only when HasInt is true.
	Int int64

	// HasInt is true when integer parsing was requested and succeeded.
	HasInt bool
}

// String returns the value as the host would display it.
func (v Value) String() string {
	if v.HasInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Text
}

// State is the widget state after an Op: the text to display and where to put
// the caret.
type State struct {
	Text  string
	Caret int
}

// Setter receives every value a Field emits.
type Setter func(Value)

type options struct {
	unmask      bool
	parseInt    bool
	hideOnEmpty bool
	initChange  bool
	initial     string
	setter      Setter
}

// Option configures a Field.
type Option func(*options)

// WithUnmask emits raw text instead of masked text.
func WithUnmask() Option {
	return func(o *options) { o.unmask = true }
}

// WithParseInt emits the raw text parsed as an integer. A value that does not
// parse is emitted as the empty Value.
func WithParseInt() Option {
	return func(o *options) { o.parseInt = true }
}

// WithHideOnEmpty displays and emits "" while no slot is filled, instead of
// the blank skeleton.
func WithHideOnEmpty() Option {
	return func(o *options) { o.hideOnEmpty = true }
}

// WithInitChange emits the initial value once during New.
func WithInitChange() Option {
	return func(o *options) { o.initChange = true }
}

// WithInitialValue sets the text the widget starts with.
func WithInitialValue(text string) Option {
	return func(o *options) { o.initial = text }
}

// WithSetter binds the callback that receives emitted values.
func WithSetter(setter Setter) Option {
	return func(o *options) { o.setter = setter }
}

// Field is the state of one masked input.
type Field struct {
	engine *mask.Engine
	opts   options
	masked string
	caret  int
}

// New creates a Field for pattern. An empty pattern is a configuration error.
func New(pattern string, registry token.Registry, opts ...Option) (*Field, error) {
	if pattern == "" {
		return nil, ErrMaskNotProvided
	}

	fld := &Field{engine: mask.New(pattern, registry)}
	for _, opt := range opts {
		opt(&fld.opts)
	}

	fld.masked = fld.engine.Mask(fld.opts.initial)
	if fld.opts.initChange {
		fld.emit()
	}

	return fld, nil
}

// Engine returns the engine the field formats with.
func (f *Field) Engine() *mask.Engine {
	return f.engine
}

// Masked returns the current masked text, blanks included.
func (f *Field) Masked() string {
	return f.masked
}

// Raw returns the current raw text.
func (f *Field) Raw() string {
	return f.engine.Unmask(f.masked)
}

// Caret returns the current caret offset.
func (f *Field) Caret() int {
	return f.caret
}

// Empty reports whether no slot is filled.
func (f *Field) Empty() bool {
	return f.masked == f.engine.Blank()
}

// Text returns the text the widget should display.
func (f *Field) Text() string {
	if f.opts.hideOnEmpty && f.Empty() {
		return ""
	}
	return f.masked
}

// State returns the current widget state.
func (f *Field) State() State {
	return State{Text: f.Text(), Caret: f.caret}
}

// Value returns the value the field currently publishes.
func (f *Field) Value() Value {
	if f.opts.hideOnEmpty && f.Empty() {
		return Value{}
	}
	if f.opts.parseInt {
		n, ok := f.engine.UnmaskInt(f.masked)
		if !ok {
			return Value{}
		}
		return Value{Text: f.Raw(), Int: n, HasInt: true}
	}
	if f.opts.unmask {
		return Value{Text: f.Raw()}
	}
	return Value{Text: f.masked}
}

func (f *Field) emit() {
	if f.opts.setter != nil {
		f.opts.setter(f.Value())
	}
}
