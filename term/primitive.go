package term

import "github.com/gdamore/tcell/v2"

// Primitive is the top-most interface for all graphical primitives.
type Primitive interface {
	// Draw draws this primitive onto the screen.
	Draw(screen tcell.Screen)

	// GetRect returns the current position of the primitive, x, y, width, and
	// height.
	GetRect() (int, int, int, int)

	// SetRect sets a new position of the primitive.
	SetRect(x, y, width, height int)

	// InputHandler handles a key event for a focused primitive and returns the
	// commands the application should run.
	InputHandler(event *tcell.EventKey) Command

	// MouseHandler handles a mouse action. A non-nil capture receives every
	// following mouse event until it returns nil itself.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)

	// Focus is called by the application when the primitive receives focus.
	// Implementers may call delegate() to pass the focus on to another primitive.
	Focus(delegate func(p Primitive))

	// HasFocus determines if the primitive has focus.
	HasFocus() bool

	// Blur is called by the application when the primitive loses focus.
	Blur()
}
