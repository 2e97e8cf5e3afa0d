package help

import (
	"strings"
	"testing"

	"github.com/ayn2op/listview/keybind"
	"github.com/ayn2op/listview/term"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenLine(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if runes := cells[y*w+x].Runes; len(runes) > 0 {
			b.WriteString(string(runes))
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestShortHelp(t *testing.T) {
	h := New().SetKeyMap(term.DefaultListKeyMap())

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 1)

	h.SetRect(0, 0, 40, 1)
	h.Draw(screen)
	screen.Show()
	assert.Equal(t, "↑/k up • ↓/j down • enter select", screenLine(screen, 0))

	screen.Clear()
	h.SetRect(0, 0, 30, 1)
	h.Draw(screen)
	screen.Show()
	assert.Equal(t, "↑/k up • ↓/j down …", screenLine(screen, 0))
	assert.Equal(t, 1, h.Height(30))
}

func TestShortHelpSkipsDisabled(t *testing.T) {
	keyMap := term.DefaultListKeyMap()
	keyMap.Up.SetEnabled(false)
	h := New()

	segments := h.shortHelpSegments(keyMap.ShortHelp(), 0)
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.text)
	}
	assert.Equal(t, "↓/j down • enter select", b.String())
}

func TestFullHelpLines(t *testing.T) {
	keyMap := term.DefaultListKeyMap()
	h := New().SetKeyMap(keyMap).SetShowAll(true)

	lines := h.FullHelpLines(keyMap.FullHelp(), 0)
	require.Len(t, lines, 3)
	assert.Equal(t, "↑/k up      pgup page up      g     top", lines[0])
	assert.Equal(t, strings.Repeat(" ", 30)+"enter select", lines[2])
	assert.Equal(t, 3, h.Height(0))

	lines = h.FullHelpLines(keyMap.FullHelp(), 20)
	require.Len(t, lines, 2, "only the first column fits")
	assert.Equal(t, "↑/k up …", lines[0])
}

func TestFullHelpTooNarrow(t *testing.T) {
	h := New()
	groups := [][]keybind.Keybind{{keybind.NewKeybind(keybind.WithKeys("q"), keybind.WithHelp("q", "quit"))}}
	assert.Equal(t, []string{"…"}, h.FullHelpLines(groups, 2))
}
