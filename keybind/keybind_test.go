package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	for in, want := range map[string]string{
		"Ctrl+C":       "ctrl+c",
		"ctrl-x":       "ctrl+x",
		"Return":       "enter",
		"PageDown":     "pgdn",
		"Rune[j]":      "j",
		"G":            "G",
		"alt+Shift+K":  "alt+shift+k",
		"backtab":      "shift+tab",
		"shift+ctrl+x": "ctrl+shift+x",
		" + ":          "",
	} {
		assert.Equal(t, want, normalizeKey(in), in)
	}
}

func TestMatches(t *testing.T) {
	down := NewKeybind(WithKeys("down", "j"), WithHelp("↓/j", "down"))
	top := NewKeybind(WithKeys("home", "g"))
	quit := NewKeybind(WithKeys("ctrl+c", "q"))

	tests := []struct {
		name  string
		event *tcell.EventKey
		want  Keybind
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), down},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), down},
		{"home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), top},
		{"control", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), quit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Matches(tt.event, tt.want))
		})
	}

	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'J', tcell.ModNone), down))
	assert.False(t, Matches(nil, down))
}

func TestNamedKeysBeforeControlRange(t *testing.T) {
	enter := NewKeybind(WithKeys("enter"))
	tab := NewKeybind(WithKeys("tab"))
	backtab := NewKeybind(WithKeys("shift+tab"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), enter))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), tab))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), backtab))
}

func TestDisabled(t *testing.T) {
	k := NewKeybind(WithKeys("d"), WithDisabled())
	assert.False(t, k.Enabled())
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), k))

	k.SetEnabled(true)
	assert.True(t, k.Enabled())
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), k))

	assert.False(t, NewKeybind().Enabled(), "a keybind without keys is never shown")
}
