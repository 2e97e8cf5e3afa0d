package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DoubleClickInterval is the longest time between two clicks of the same
// button that still counts as a double click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction is what the mouse is logically doing, derived from a sequence
// of raw tcell events.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

var buttonActions = []struct {
	button                  tcell.ButtonMask
	down, up, click, dclick MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var wheelActions = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// mouseTracker turns raw mouse events into actions. A release at the
// position of the press is a click.
type mouseTracker struct {
	x, y         int
	downX, downY int
	buttons      tcell.ButtonMask
	lastClick    time.Time
}

// actions returns the actions event stands for, in order, and records the
// new mouse state.
func (m *mouseTracker) actions(event *tcell.EventMouse, now time.Time) []MouseAction {
	var out []MouseAction
	x, y := event.Position()
	buttons := event.Buttons()
	if x != m.x || y != m.y {
		out = append(out, MouseMove)
		m.x, m.y = x, y
	}

	changed := buttons ^ m.buttons
	pressed := false
	for _, b := range buttonActions {
		if changed&b.button == 0 {
			continue
		}
		if buttons&b.button != 0 {
			out = append(out, b.down)
			pressed = true
			continue
		}
		out = append(out, b.up)
		if x != m.downX || y != m.downY {
			continue
		}
		if now.Sub(m.lastClick) > DoubleClickInterval {
			out = append(out, b.click)
			m.lastClick = now
		} else {
			out = append(out, b.dclick)
			m.lastClick = time.Time{}
		}
	}

	for _, w := range wheelActions {
		if buttons&w.button != 0 {
			out = append(out, w.action)
		}
	}

	m.buttons = buttons
	if pressed {
		m.downX, m.downY = x, y
	}
	return out
}
