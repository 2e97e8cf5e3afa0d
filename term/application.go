package term

import (
	"log/slog"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/ayn2op/listview"
	"github.com/gdamore/tcell/v2"
)

const (
	updatesQueueSize = 100
	eventsQueueSize  = 100
	// frameInterval is how often engine timers and frames are run.
	frameInterval = 16 * time.Millisecond
)

// queuedUpdate is a function to run on the event loop. done, if not nil, is
// signalled once f returns.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application owns the screen, routes events to the root primitive and runs
// the list engine's deferred callbacks on its event loop.
//
//	if err := term.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	screen tcell.Screen
	root   Primitive
	focus  Primitive

	events  chan tcell.Event
	updates chan queuedUpdate

	// done is closed by Stop.
	done     chan struct{}
	stopOnce sync.Once

	// scheduler runs engine timers and frames, always on the event loop.
	scheduler *listview.FrameScheduler

	logger *slog.Logger
	mouse  bool

	tracker mouseTracker
	// capture receives all mouse events while set, as returned by the last
	// MouseHandler.
	capture Primitive

	// clear requests a full clear before the next frame.
	clear bool
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates:   make(chan queuedUpdate, updatesQueueSize),
		events:    make(chan tcell.Event, eventsQueueSize),
		done:      make(chan struct{}),
		scheduler: listview.NewFrameScheduler(time.Now()),
		logger:    slog.Default(),
	}
}

// Scheduler returns the scheduler lists shown by this application must use.
func (a *Application) Scheduler() *listview.FrameScheduler {
	return a.scheduler
}

// SetLogger sets the logger for command failures.
func (a *Application) SetLogger(logger *slog.Logger) *Application {
	a.logger = logger
	return a
}

// EnableMouse enables mouse events once the application runs.
func (a *Application) EnableMouse(enable bool) *Application {
	a.Lock()
	defer a.Unlock()
	a.mouse = enable
	return a
}

// SetScreen sets an initialized screen to use instead of the terminal. It has
// no effect once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.clear = true
	}
	return a
}

func (a *Application) initScreen() (tcell.Screen, error) {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, err
		}
		a.screen = screen
	}
	if a.mouse {
		a.screen.EnableMouse()
	}
	return a.screen, nil
}

// Run runs the event loop until Stop is called or the screen fails.
func (a *Application) Run() error {
	screen, err := a.initScreen()
	if err != nil {
		return err
	}

	// Restore the terminal before a panic is printed.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	go screen.ChannelEvents(a.events, a.done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.done:
			return nil
		case event, ok := <-a.events:
			if !ok || event == nil {
				return nil
			}
			if err, ok := event.(*tcell.EventError); ok {
				a.Stop()
				return err
			}
			if a.handleEvent(event) {
				a.draw()
			}
		case now := <-ticker.C:
			if a.scheduler.Tick(now) {
				a.draw()
			}
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		}
	}
}

// handleEvent dispatches event and reports whether the screen needs a redraw.
func (a *Application) handleEvent(event tcell.Event) bool {
	switch event := event.(type) {
	case *tcell.EventKey:
		a.RLock()
		root := a.root
		a.RUnlock()
		if root == nil || !root.HasFocus() {
			return false
		}
		return a.executeCommand(root.InputHandler(event))
	case *tcell.EventResize:
		a.Lock()
		a.clear = true
		a.Unlock()
		return true
	case *tcell.EventMouse:
		redraw := false
		for _, action := range a.tracker.actions(event, time.Now()) {
			if a.fireMouse(action, event) {
				redraw = true
			}
		}
		return redraw
	}
	return false
}

// fireMouse sends action to the capturing primitive, or to the root.
func (a *Application) fireMouse(action MouseAction, event *tcell.EventMouse) bool {
	target := a.capture
	if target == nil {
		a.RLock()
		target = a.root
		a.RUnlock()
	}
	if target == nil {
		return false
	}
	capture, cmd := target.MouseHandler(action, event)
	a.capture = capture
	return a.executeCommand(cmd)
}

// Stop ends the event loop and releases the screen.
func (a *Application) Stop() {
	a.stopOnce.Do(func() { close(a.done) })
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

func (a *Application) draw() {
	a.Lock()
	screen, root, clearScreen := a.screen, a.root, a.clear
	a.clear = false
	a.Unlock()

	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if clearScreen {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// SetRoot sets the root primitive and focuses it.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.clear = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()

	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the focused primitive, or nil.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and returns once it has run. It must
// not be called from the event loop.
func (a *Application) QueueUpdate(f func()) *Application {
	ch := make(chan struct{})
	a.updates <- queuedUpdate{f: f, done: ch}
	<-ch
	return a
}

// QueueUpdateDraw is QueueUpdate followed by a redraw.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// QueueEvent sends an event to the event loop as if the screen produced it.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	a.events <- event
	return a
}

// executeCommand runs cmd and reports whether the screen needs a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		a.RLock()
		changed := a.focus != c.Target
		a.RUnlock()
		a.SetFocus(c.Target)
		return changed
	case SetClipboardCommand:
		if err := clipboard.WriteAll(string(c)); err != nil {
			a.logger.Warn("failed to write clipboard", "err", err)
		}
	}
	return false
}
