// Package terminal runs a masked field as an interactive single-line editor.
//
// A Session owns a tcell screen for the duration of Run. Keyboard, mouse,
// focus and bracketed-paste events are translated into field Ops; the field
// does the editing and the session only draws the result.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/yaklabco/gomask/pkg/field"
	"github.com/yaklabco/gomask/pkg/mask"
)

// ErrCancelled is returned by Run when the user leaves without accepting.
var ErrCancelled = errors.New("edit cancelled")

// fieldRow is the screen row the field is drawn on.
const fieldRow = 0

const helpText = "enter accept  esc cancel  ctrl+u clear"

// Result is the outcome of an accepted session.
type Result struct {
	// Value is the value the field publishes.
	Value field.Value

	// Masked is the final masked text, blanks included.
	Masked string
}

// Option configures a Session.
type Option func(*Session)

// WithLabel sets the prompt drawn before the field.
func WithLabel(label string) Option {
	return func(s *Session) { s.label = label }
}

// WithPlainStyle draws without attributes, for terminals where color was
// turned off.
func WithPlainStyle() Option {
	return func(s *Session) { s.styles = plainStyles() }
}

// WithObserver registers a callback invoked after every redraw with the
// event that caused it. The initial draw reports a nil event.
func WithObserver(observer func(tcell.Event, field.State)) Option {
	return func(s *Session) { s.observer = observer }
}

// Session edits one field on a terminal screen.
type Session struct {
	screen   tcell.Screen
	field    *field.Field
	label    string
	styles   styles
	observer func(tcell.Event, field.State)

	// anchor is the fixed end of the selection; it equals the caret when
	// nothing is selected.
	anchor int

	pasting bool
	paste   strings.Builder
}

// NewSession creates a session editing fld on screen. The screen is
// initialized by Run and finalized before Run returns.
func NewSession(screen tcell.Screen, fld *field.Field, opts ...Option) *Session {
	sess := &Session{
		screen: screen,
		field:  fld,
		styles: defaultStyles(),
	}
	for _, opt := range opts {
		opt(sess)
	}
	return sess
}

// Run edits the field until the user accepts with Enter, cancels with Esc or
// Ctrl-C, or ctx is done.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if err := s.screen.Init(); err != nil {
		return Result{}, fmt.Errorf("init screen: %w", err)
	}
	defer s.screen.Fini()

	s.screen.EnableMouse()
	s.screen.EnablePaste()
	s.screen.EnableFocus()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-stop:
		}
	}()

	s.apply(field.FocusSnap{Requested: s.field.Caret()})
	s.draw()
	s.observe(nil)

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return Result{}, ErrCancelled
		}

		done, err := s.handle(ev)
		if err != nil {
			return Result{}, err
		}
		if done {
			return Result{Value: s.field.Value(), Masked: s.field.Masked()}, nil
		}

		s.draw()
		s.observe(ev)
	}
}

func (s *Session) observe(ev tcell.Event) {
	if s.observer != nil {
		s.observer(ev, s.field.State())
	}
}

// handle processes one event. It reports whether the session is finished.
func (s *Session) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev)

	case *tcell.EventPaste:
		if ev.Start() {
			s.pasting = true
			s.paste.Reset()
			return false, nil
		}
		s.pasting = false
		s.apply(field.Paste{Text: s.paste.String(), Selection: s.selection()})

	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 && y == fieldRow {
			s.apply(field.FocusSnap{Requested: s.indexAt(x)})
		}

	case *tcell.EventFocus:
		if ev.Focused {
			s.apply(field.FocusSnap{Requested: s.field.Caret()})
		}

	case *tcell.EventResize:
		s.screen.Sync()

	case *tcell.EventInterrupt:
		if err, ok := ev.Data().(error); ok && err != nil {
			return false, fmt.Errorf("edit: %w", err)
		}
	}

	return false, nil
}

func (s *Session) handleKey(ev *tcell.EventKey) (bool, error) {
	if s.pasting {
		if ev.Key() == tcell.KeyRune {
			s.paste.WriteRune(ev.Rune())
		}
		return false, nil
	}

	caret := s.field.Caret()
	extend := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyEnter:
		return true, nil

	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false, ErrCancelled

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.apply(field.Backspace{Selection: s.selection()})

	case tcell.KeyDelete:
		s.apply(field.DeleteForward{Selection: s.selection()})

	case tcell.KeyCtrlU:
		s.apply(field.DeleteRange{Start: 0, End: s.field.Engine().Len()})

	case tcell.KeyLeft:
		s.move(caret-1, extend)

	case tcell.KeyRight:
		s.move(caret+1, extend)

	case tcell.KeyHome:
		s.move(0, extend)

	case tcell.KeyEnd:
		s.move(s.field.Engine().Len(), extend)

	case tcell.KeyRune:
		sel := s.selection()
		if sel.IsCaret() {
			s.apply(field.Insert{Text: string(ev.Rune()), At: caret})
		} else {
			s.apply(field.Paste{Text: string(ev.Rune()), Selection: sel})
		}
	}

	return false, nil
}

// apply runs op and collapses the selection onto the new caret.
func (s *Session) apply(op field.Op) {
	state := s.field.Apply(op)
	s.anchor = state.Caret
}

// move places the caret, keeping the anchor when extending a selection.
func (s *Session) move(to int, extend bool) {
	state := s.field.Apply(field.MoveCaret{To: to})
	if !extend {
		s.anchor = state.Caret
	}
}

func (s *Session) selection() mask.Selection {
	return mask.Selection{Start: s.anchor, End: s.field.Caret()}
}
