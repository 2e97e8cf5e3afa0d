package term

import (
	"github.com/ayn2op/listview"
	"github.com/ayn2op/listview/keybind"
	"github.com/gdamore/tcell/v2"
)

const (
	// Drag auto-scroll distances in cells.
	dragScrollEdge    = 2
	dragScrollMaxStep = 1
	// wheelStep is the number of lines scrolled per wheel notch.
	wheelStep = 3
)

// ListKeyMap holds the keybinds of a ListView.
type ListKeyMap struct {
	Up       keybind.Keybind
	Down     keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind
	Top      keybind.Keybind
	Bottom   keybind.Keybind
	Select   keybind.Keybind
}

// DefaultListKeyMap returns arrow and vi style bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:       keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down:     keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup", "ctrl+b"), keybind.WithHelp("pgup", "page up")),
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn", "ctrl+f"), keybind.WithHelp("pgdn", "page down")),
		Top:      keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g", "top")),
		Bottom:   keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G", "bottom")),
		Select:   keybind.NewKeybind(keybind.WithKeys("enter"), keybind.WithHelp("enter", "select")),
	}
}

// ShortHelp returns the bindings shown in a single help line.
func (k ListKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Up, k.Down, k.Select}
}

// FullHelp returns the bindings grouped in columns.
func (k ListKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Up, k.Down},
		{k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Select},
	}
}

// ListView is a primitive showing a virtualized list. Only the rows in view
// are materialized; the engine recycles them while scrolling.
type ListView[T any] struct {
	*Box

	list      *listview.ListView[T]
	surface   *Surface
	scrollBar *ScrollBar
	keyMap    ListKeyMap

	cursor   int
	changed  func(index int)
	selected func(index int, element T) Command
	input    func(event *tcell.EventKey) Command

	// Pointer state.
	pressed    bool
	pressIndex int
	pressY     int
	pointerY   int
	dragging   bool
	inside     bool
	transfer   *listview.DataTransfer

	viewWidth, viewHeight int
}

var _ Primitive = &ListView[string]{}

// NewListView creates a list rendering through renderers. Drag auto-scroll
// distances default to cell sized values.
func NewListView[T any](delegate listview.Delegate[T], renderers []listview.Renderer[T], opts listview.Options[T]) (*ListView[T], error) {
	if opts.DragScrollEdge <= 0 {
		opts.DragScrollEdge = dragScrollEdge
	}
	if opts.DragScrollMaxStep <= 0 {
		opts.DragScrollMaxStep = dragScrollMaxStep
	}
	surface := NewSurface()
	list, err := listview.New(surface, delegate, renderers, opts)
	if err != nil {
		return nil, err
	}
	l := &ListView[T]{
		Box:        NewBox(),
		list:       list,
		surface:    surface,
		scrollBar:  NewScrollBar(),
		keyMap:     DefaultListKeyMap(),
		pressIndex: -1,
		viewWidth:  -1,
		viewHeight: -1,
	}
	l.scrollBar.SetChangedFunc(func(offset int) {
		l.list.SetScrollTop(offset)
	})
	return l, nil
}

// List returns the engine behind the widget.
func (l *ListView[T]) List() *listview.ListView[T] {
	return l.list
}

// Surface returns the container holding the rows.
func (l *ListView[T]) Surface() *Surface {
	return l.surface
}

// ScrollBar returns the vertical scroll bar.
func (l *ListView[T]) ScrollBar() *ScrollBar {
	return l.scrollBar
}

// KeyMap returns the keybinds of the list.
func (l *ListView[T]) KeyMap() ListKeyMap {
	return l.keyMap
}

// SetKeyMap replaces the keybinds of the list.
func (l *ListView[T]) SetKeyMap(keyMap ListKeyMap) *ListView[T] {
	l.keyMap = keyMap
	return l
}

// SetChangedFunc sets a handler called when the cursor moves.
func (l *ListView[T]) SetChangedFunc(handler func(index int)) *ListView[T] {
	l.changed = handler
	return l
}

// SetSelectedFunc sets a handler called when the cursor row is selected with
// the Select keybind or a double click.
func (l *ListView[T]) SetSelectedFunc(handler func(index int, element T) Command) *ListView[T] {
	l.selected = handler
	return l
}

// SetInputFunc sets a handler for key events no keybind of the list matches.
func (l *ListView[T]) SetInputFunc(handler func(event *tcell.EventKey) Command) *ListView[T] {
	l.input = handler
	return l
}

// Cursor returns the index of the cursor row, or -1 for an empty list.
func (l *ListView[T]) Cursor() int {
	if l.list.Length() == 0 {
		return -1
	}
	return min(l.cursor, l.list.Length()-1)
}

// SetCursor moves the cursor to index and brings it into view.
func (l *ListView[T]) SetCursor(index int) *ListView[T] {
	length := l.list.Length()
	if length == 0 {
		return l
	}
	index = min(max(index, 0), length-1)
	previous := l.Cursor()
	l.cursor = index
	l.list.Reveal(index)
	if index != previous && l.changed != nil {
		l.changed(index)
	}
	l.MarkDirty()
	return l
}

// layout sizes the engine viewport to the inner rect, minus the scroll bar
// column.
func (l *ListView[T]) layout() {
	x, y, width, height := l.GetInnerRect()
	listWidth := width
	if width > 1 {
		listWidth--
	}
	l.scrollBar.SetRect(x+listWidth, y, width-listWidth, height)
	if listWidth == l.viewWidth && height == l.viewHeight {
		return
	}
	l.viewWidth, l.viewHeight = listWidth, height
	l.surface.SetViewport(listWidth, height)
	l.list.Layout(height, listWidth)
}

// Draw draws the visible rows and the scroll bar.
func (l *ListView[T]) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen)
	l.layout()

	x, y, _, _ := l.GetInnerRect()
	if l.surface.HasClass(listview.ClassDropTarget) {
		tint := tcell.StyleDefault.Background(Blend(l.backgroundColor, Styles.DropTargetColor, 0.25))
		for row := y; row < y+l.viewHeight; row++ {
			for col := x; col < x+l.viewWidth; col++ {
				screen.SetContent(col, row, ' ', nil, tint)
			}
		}
	}
	l.surface.Draw(screen, x, y, l.rowStyle)

	l.scrollBar.SetLengths(ScrollLengths{ContentLen: l.list.ScrollHeight(), ViewportLen: l.viewHeight})
	l.scrollBar.SetOffset(l.list.ScrollTop())
	l.scrollBar.Draw(screen)

	if l.dragging && l.transfer != nil && l.transfer.Label != "" && l.inside {
		label := " " + l.transfer.Label + " "
		width := StringWidth(label)
		style := tcell.StyleDefault.Reverse(true)
		PrintWithStyle(screen, label, x+max(l.viewWidth-width, 0), y+l.pointerY, l.viewWidth, AlignmentLeft, style)
	}
	l.MarkClean()
}

// rowStyle combines a row's text style with the cursor and drop feedback.
func (l *ListView[T]) rowStyle(n *RowNode) tcell.Style {
	style := n.Style()
	fg, _, _ := style.Decompose()
	if fg == tcell.ColorDefault {
		style = style.Foreground(Styles.PrimaryTextColor)
	}
	bg := l.backgroundColor
	if l.surface.HasClass(listview.ClassDropTarget) {
		bg = Blend(bg, Styles.DropTargetColor, 0.25)
	}
	if cursor := l.Cursor(); cursor >= 0 && l.list.Node(cursor) == listview.Node(n) {
		bg = Styles.ContrastBackgroundColor
		if !l.HasFocus() {
			bg = Blend(l.backgroundColor, Styles.ContrastBackgroundColor, 0.5)
		}
	}
	if n.HasClass(listview.ClassDropTarget) {
		bg = Blend(bg, Styles.DropTargetColor, 0.5)
	}
	return style.Background(bg)
}

// InputHandler moves the cursor according to the key map.
func (l *ListView[T]) InputHandler(event *tcell.EventKey) Command {
	length := l.list.Length()
	cursor := l.Cursor()
	switch {
	case keybind.Matches(event, l.keyMap.Up):
		l.SetCursor(cursor - 1)
	case keybind.Matches(event, l.keyMap.Down):
		l.SetCursor(cursor + 1)
	case keybind.Matches(event, l.keyMap.PageUp):
		if cursor >= 0 {
			l.SetCursor(l.list.IndexAt(max(l.list.ElementTop(cursor)-l.viewHeight, 0)))
		}
	case keybind.Matches(event, l.keyMap.PageDown):
		if cursor >= 0 {
			l.SetCursor(l.list.IndexAt(l.list.ElementTop(cursor) + l.viewHeight))
		}
	case keybind.Matches(event, l.keyMap.Top):
		l.SetCursor(0)
	case keybind.Matches(event, l.keyMap.Bottom):
		l.SetCursor(length - 1)
	case keybind.Matches(event, l.keyMap.Select):
		if cursor < 0 || l.selected == nil {
			return nil
		}
		return AppendCommand(RedrawCommand{}, l.selected(cursor, l.list.Element(cursor)))
	default:
		if l.input != nil {
			return l.input(event)
		}
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler scrolls on the wheel, moves the cursor on clicks and turns
// left button drags into engine drag events.
func (l *ListView[T]) MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command) {
	x, y := event.Position()
	if l.scrollBar.grab >= 0 || (action == MouseLeftDown && l.scrollBar.InRect(x, y)) {
		captured, cmd := l.scrollBar.MouseHandler(action, event)
		if captured != nil {
			return l, cmd
		}
		return nil, cmd
	}
	if !l.pressed && !l.InRect(x, y) {
		return nil, nil
	}

	innerX, innerY, _, _ := l.GetInnerRect()
	ev := listview.DragEvent{X: x - innerX, Y: y - innerY, DataTransfer: l.transfer}
	l.pointerY = ev.Y

	switch action {
	case MouseScrollUp:
		l.list.ScrollBy(-wheelStep)
		return nil, RedrawCommand{}
	case MouseScrollDown:
		l.list.ScrollBy(wheelStep)
		return nil, RedrawCommand{}
	case MouseScrollLeft:
		l.list.SetScrollLeft(l.list.ScrollLeft() - wheelStep)
		return nil, RedrawCommand{}
	case MouseScrollRight:
		l.list.SetScrollLeft(l.list.ScrollLeft() + wheelStep)
		return nil, RedrawCommand{}
	case MouseLeftDown:
		l.pressed = true
		l.pressIndex = -1
		l.pressY = ev.Y
		if l.InInnerRect(x, y) {
			if index, ok := l.list.ElementAtPoint(ev.Y); ok {
				l.pressIndex = index
				l.SetCursor(index)
			}
		}
		return l, BatchCommand{SetFocusCommand{Target: l}, RedrawCommand{}}
	case MouseMove:
		if !l.pressed {
			return nil, nil
		}
		if !l.dragging && l.pressIndex >= 0 && ev.Y != l.pressY {
			l.transfer = &listview.DataTransfer{}
			ev.DataTransfer = l.transfer
			if l.list.StartDrag(l.pressIndex, ev) {
				l.dragging = true
				l.inside = true
			} else {
				l.transfer = nil
				l.pressIndex = -1
			}
		}
		if l.dragging {
			switch inside := l.InInnerRect(x, y); {
			case inside:
				l.list.DragOver(ev)
				l.inside = true
			case l.inside:
				l.list.DragLeave(ev)
				l.inside = false
			}
		}
		return l, RedrawCommand{}
	case MouseLeftUp:
		if l.dragging {
			if l.InInnerRect(x, y) {
				l.list.Drop(ev)
			}
			l.list.EndDrag(ev)
		}
		l.dragging, l.inside, l.pressed = false, false, false
		l.transfer = nil
		l.pressIndex = -1
		return nil, RedrawCommand{}
	case MouseLeftDoubleClick:
		cursor := l.Cursor()
		if cursor < 0 || l.selected == nil || !l.InInnerRect(x, y) {
			return nil, nil
		}
		return nil, AppendCommand(RedrawCommand{}, l.selected(cursor, l.list.Element(cursor)))
	}
	return nil, nil
}

// Dispose releases the engine.
func (l *ListView[T]) Dispose() {
	l.list.Dispose()
}
