package term

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyRecorder struct {
	*Box
	keys []rune
}

func (k *keyRecorder) InputHandler(event *tcell.EventKey) Command {
	k.keys = append(k.keys, event.Rune())
	if event.Rune() == 'q' {
		return QuitCommand{}
	}
	return RedrawCommand{}
}

func (k *keyRecorder) Draw(screen tcell.Screen) {
	k.DrawForSubclass(screen)
	x, y, w, _ := k.GetInnerRect()
	Print(screen, string(k.keys), x, y, w, AlignmentLeft, Styles.PrimaryTextColor)
}

func runApplication(t *testing.T, app *Application) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	t.Cleanup(app.Stop)
	return done
}

func waitStopped(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("the application did not stop")
	}
}

func TestApplicationKeysAndQuit(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(10, 2)

	root := &keyRecorder{Box: NewBox()}
	app := NewApplication().SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app.SetScreen(screen).SetRoot(root)
	assert.True(t, root.HasFocus(), "the root is focused")
	assert.Equal(t, Primitive(root), app.GetFocus())

	done := runApplication(t, app)

	app.QueueEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	app.QueueEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	assert.Eventually(t, func() bool {
		var drawn string
		app.QueueUpdate(func() {
			screen.Show()
			drawn = line(screen, 0, 10)
		})
		return drawn == "ab"
	}, 5*time.Second, 10*time.Millisecond)

	app.QueueEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	waitStopped(t, done)
	assert.Equal(t, []rune{'a', 'b', 'q'}, root.keys)
}

func TestApplicationSchedulerRunsOnLoop(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(10, 2)

	app := NewApplication().SetScreen(screen).SetRoot(NewBox())
	done := runApplication(t, app)

	fired := make(chan struct{})
	app.QueueUpdate(func() {
		app.Scheduler().AfterFunc(20*time.Millisecond, func() { close(fired) })
	})
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("the timer did not fire")
	}

	app.Stop()
	waitStopped(t, done)
}
