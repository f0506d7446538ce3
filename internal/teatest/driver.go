// Package teatest replays key and mouse input against a bubbletea model
// without starting a tea.Program.
//
// Every message goes straight to Update and the Cmds it returns are run
// inline until the model settles. Cmds that block on timers (cursor blink)
// are abandoned after a short wait.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSettleDepth bounds how many Cmd generations one input may trigger.
const MaxSettleDepth = 100

// Repository loads finish in microseconds while a cursor blink waits about
// half a second; 10ms sits between the two.
const cmdTimeout = 10 * time.Millisecond

// Driver feeds input to a tea.Model and applies the resulting Cmds.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg comes out of a Cmd. Later input is
	// ignored, as it would be after the program exits.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else so views lay out
// against a known terminal.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.settle(d.Model.Init(), 0)
}

// Send delivers msg and runs every Cmd that follows from it.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.settle(cmd, 0)
}

func (d *Driver) View() string {
	return d.Model.View()
}

// Keyboard

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressEnter() { d.pressType(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.pressType(tea.KeyEsc) }
func (d *Driver) PressUp()    { d.pressType(tea.KeyUp) }
func (d *Driver) PressDown()  { d.pressType(tea.KeyDown) }
func (d *Driver) PressLeft()  { d.pressType(tea.KeyLeft) }
func (d *Driver) PressRight() { d.pressType(tea.KeyRight) }

func (d *Driver) pressType(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// Mouse. Coordinates are terminal cells, header rows included.

func (d *Driver) Press(x, y int)   { d.mouse(x, y, tea.MouseActionPress) }
func (d *Driver) Motion(x, y int)  { d.mouse(x, y, tea.MouseActionMotion) }
func (d *Driver) Release(x, y int) { d.mouse(x, y, tea.MouseActionRelease) }

// Drag presses at (x0, y0), moves to (x1, y1) and releases there, the
// gesture that sketches a zone on the overview.
func (d *Driver) Drag(x0, y0, x1, y1 int) {
	d.T.Helper()
	d.Press(x0, y0)
	d.Motion(x1, y1)
	d.Release(x1, y1)
}

// Click presses and releases on the same cell.
func (d *Driver) Click(x, y int) {
	d.T.Helper()
	d.Press(x, y)
	d.Release(x, y)
}

func (d *Driver) mouse(x, y int, action tea.MouseAction) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: action})
}

func (d *Driver) settle(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxSettleDepth {
		d.T.Logf("teatest: gave up after %d Cmd generations", MaxSettleDepth)
		return
	}

	msg := runCmd(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.settle(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
		return
	}
	if isBlink(msg) {
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.settle(next, depth+1)
}

// runCmd returns nil when cmd does not produce a message within cmdTimeout.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages from bubbles, which
// would otherwise chain into more timer Cmds.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
