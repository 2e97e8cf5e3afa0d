package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func rect(p Primitive) [4]int {
	x, y, w, h := p.GetRect()
	return [4]int{x, y, w, h}
}

func TestStackLayout(t *testing.T) {
	top, bottom := NewBox(), NewBox()
	s := NewStack().
		AddItem(top, WithName("top")).
		AddItem(bottom, WithName("bottom"), WithHeight(func(int) int { return 2 }))
	s.SetRect(0, 0, 10, 8)

	screen := newScreen(t, 10, 8)
	drawOn(screen, s)
	assert.Equal(t, [4]int{0, 0, 10, 6}, rect(top))
	assert.Equal(t, [4]int{0, 6, 10, 2}, rect(bottom))

	s.SetVisible("bottom", false)
	drawOn(screen, s)
	assert.Equal(t, [4]int{0, 0, 10, 8}, rect(top), "hidden items give up their rows")
	assert.False(t, s.GetVisible("bottom"))
	assert.Equal(t, Primitive(bottom), s.GetItem("bottom"))
}

func TestStackFocusAndInput(t *testing.T) {
	first := &keyRecorder{Box: NewBox()}
	second := &keyRecorder{Box: NewBox()}
	s := NewStack().AddItem(first, WithEnabled(false)).AddItem(second)

	var focused Primitive
	s.Focus(func(p Primitive) {
		focused = p
		p.Focus(nil)
	})
	assert.Equal(t, Primitive(second), focused, "disabled items are skipped")
	assert.True(t, s.HasFocus())

	s.InputHandler(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.Equal(t, []rune{'x'}, second.keys)
	assert.Empty(t, first.keys)
}

func TestStackMouseRouting(t *testing.T) {
	top, bottom := NewBox(), NewBox()
	s := NewStack().AddItem(top).AddItem(bottom)
	s.SetRect(0, 0, 10, 4)
	s.layout()

	_, cmd := s.MouseHandler(MouseLeftDown, tcell.NewEventMouse(1, 3, tcell.ButtonPrimary, tcell.ModNone))
	assert.Equal(t, SetFocusCommand{Target: bottom}, cmd)

	_, cmd = s.MouseHandler(MouseLeftDown, tcell.NewEventMouse(1, 9, tcell.ButtonPrimary, tcell.ModNone))
	assert.Nil(t, cmd)
}
