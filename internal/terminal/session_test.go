package terminal_test

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomask/internal/terminal"
	"github.com/yaklabco/gomask/pkg/field"
	"github.com/yaklabco/gomask/pkg/token"
)

const waitFor = 5 * time.Second

type outcome struct {
	result terminal.Result
	err    error
}

type observed struct {
	ev    tcell.Event
	state field.State
}

// driver runs a session on a simulation screen and steps it one event at a
// time, waiting until the session has handled and drawn each event.
type driver struct {
	t      *testing.T
	screen tcell.SimulationScreen
	seen   chan observed
	done   chan outcome
}

func start(ctx context.Context, t *testing.T, fld *field.Field, opts ...terminal.Option) (*driver, field.State) {
	t.Helper()

	drv := &driver{
		t:      t,
		screen: tcell.NewSimulationScreen("UTF-8"),
		seen:   make(chan observed, 64),
		done:   make(chan outcome, 1),
	}

	opts = append(opts, terminal.WithObserver(func(ev tcell.Event, state field.State) {
		drv.seen <- observed{ev, state}
	}))
	sess := terminal.NewSession(drv.screen, fld, opts...)

	go func() {
		res, err := sess.Run(ctx)
		drv.done <- outcome{res, err}
	}()

	return drv, drv.waitFor(nil)
}

// waitFor returns the state drawn after ev, skipping events the screen
// generated on its own.
func (d *driver) waitFor(ev tcell.Event) field.State {
	d.t.Helper()
	timeout := time.After(waitFor)
	for {
		select {
		case obs := <-d.seen:
			if obs.ev == ev {
				return obs.state
			}
		case <-timeout:
			d.t.Fatal("timed out waiting for redraw")
			return field.State{}
		}
	}
}

func (d *driver) send(ev tcell.Event) field.State {
	d.t.Helper()
	require.NoError(d.t, d.screen.PostEvent(ev))
	return d.waitFor(ev)
}

func (d *driver) finish(ev tcell.Event) outcome {
	d.t.Helper()
	require.NoError(d.t, d.screen.PostEvent(ev))
	select {
	case out := <-d.done:
		return out
	case <-time.After(waitFor):
		d.t.Fatal("timed out waiting for session to end")
		return outcome{}
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func newField(t *testing.T, opts ...field.Option) *field.Field {
	t.Helper()
	fld, err := field.New("(N) NNN", token.Default(), opts...)
	require.NoError(t, err)
	return fld
}

func TestSession_TypeAndAccept(t *testing.T) {
	t.Parallel()

	drv, state := start(context.Background(), t, newField(t, field.WithUnmask()))
	assert.Equal(t, field.State{Text: "( )    ", Caret: 1}, state)

	for _, r := range "12x34" {
		state = drv.send(char(r))
	}
	assert.Equal(t, field.State{Text: "(1) 234", Caret: 7}, state)

	out := drv.finish(key(tcell.KeyEnter))
	require.NoError(t, out.err)
	assert.Equal(t, "(1) 234", out.result.Masked)
	assert.Equal(t, field.Value{Text: "1234"}, out.result.Value)
}

func TestSession_Backspace(t *testing.T) {
	t.Parallel()

	drv, _ := start(context.Background(), t, newField(t, field.WithInitialValue("1234")))

	state := drv.send(key(tcell.KeyEnd))
	assert.Equal(t, 7, state.Caret)

	state = drv.send(key(tcell.KeyBackspace2))
	assert.Equal(t, field.State{Text: "(1) 23 ", Caret: 6}, state)

	state = drv.send(key(tcell.KeyCtrlU))
	assert.Equal(t, "( )    ", state.Text)

	out := drv.finish(key(tcell.KeyEscape))
	require.ErrorIs(t, out.err, terminal.ErrCancelled)
}

func TestSession_ShiftSelectionReplace(t *testing.T) {
	t.Parallel()

	drv, _ := start(context.Background(), t, newField(t, field.WithInitialValue("1234")))

	drv.send(key(tcell.KeyHome))
	drv.send(tcell.NewEventMouse(4, 0, tcell.Button1, tcell.ModNone))
	drv.send(tcell.NewEventMouse(4, 0, tcell.ButtonNone, tcell.ModNone))
	state := drv.send(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	assert.Equal(t, 5, state.Caret)
	state = drv.send(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	assert.Equal(t, 6, state.Caret)

	state = drv.send(char('9'))
	assert.Equal(t, field.State{Text: "(1) 94 ", Caret: 5}, state)

	out := drv.finish(key(tcell.KeyEnter))
	require.NoError(t, out.err)
	assert.Equal(t, "(1) 94 ", out.result.Masked)
}

func TestSession_ClickSnapsToNextBlank(t *testing.T) {
	t.Parallel()

	drv, _ := start(context.Background(), t, newField(t, field.WithInitialValue("12")), terminal.WithLabel("id"))

	// The label "id" and one space occupy columns 0-2.
	state := drv.send(tcell.NewEventMouse(9, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 5, state.Caret)

	drv.finish(key(tcell.KeyCtrlC))
}

func TestSession_BracketedPaste(t *testing.T) {
	t.Parallel()

	drv, _ := start(context.Background(), t, newField(t))

	drv.send(tcell.NewEventPaste(true))
	for _, r := range "(9) 876" {
		drv.send(char(r))
	}
	state := drv.send(tcell.NewEventPaste(false))
	assert.Equal(t, field.State{Text: "(9) 876", Caret: 7}, state)

	out := drv.finish(key(tcell.KeyEnter))
	require.NoError(t, out.err)
	assert.Equal(t, field.Value{Text: "(9) 876"}, out.result.Value)
}

func TestSession_DrawsFieldAfterLabel(t *testing.T) {
	t.Parallel()

	drv, _ := start(context.Background(), t, newField(t, field.WithInitialValue("1")), terminal.WithLabel(">"), terminal.WithPlainStyle())

	cells, _, _ := drv.screen.GetContents()
	row := make([]rune, 0, 9)
	for _, cell := range cells[:9] {
		r := ' '
		if len(cell.Runes) > 0 {
			r = cell.Runes[0]
		}
		row = append(row, r)
	}
	assert.Equal(t, "> (1)    ", string(row))

	x, y, visible := drv.screen.GetCursor()
	assert.Equal(t, 6, x)
	assert.Equal(t, 0, y)
	assert.True(t, visible)

	drv.finish(key(tcell.KeyEscape))
}

func TestSession_WideLabel(t *testing.T) {
	t.Parallel()

	drv, _ := start(context.Background(), t, newField(t, field.WithInitialValue("1234")), terminal.WithLabel("番号"))

	// Each label rune takes two cells and a space follows, so the field
	// starts at column 5.
	state := drv.send(tcell.NewEventMouse(11, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 6, state.Caret)

	x, _, _ := drv.screen.GetCursor()
	assert.Equal(t, 11, x)

	drv.finish(key(tcell.KeyEscape))
}

func TestSession_ContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	drv, _ := start(ctx, t, newField(t))

	cancel()

	select {
	case out := <-drv.done:
		require.ErrorIs(t, out.err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("session did not stop after cancellation")
	}
}
