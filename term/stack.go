package term

import "github.com/gdamore/tcell/v2"

// stackItem is one row of a Stack.
type stackItem struct {
	name    string
	item    Primitive
	height  func(width int) int // Nil fills the space left by the other items.
	visible bool
	enabled bool // Whether the item can receive focus and input.
}

// StackOption configures an item on AddItem.
type StackOption func(*stackItem)

// WithName sets the item's name.
func WithName(name string) StackOption {
	return func(i *stackItem) {
		i.name = name
	}
}

// WithHeight gives the item the height it reports for the stack width.
func WithHeight(height func(width int) int) StackOption {
	return func(i *stackItem) {
		i.height = height
	}
}

// WithVisible sets the initial visibility of the item.
func WithVisible(visible bool) StackOption {
	return func(i *stackItem) {
		i.visible = visible
	}
}

// WithEnabled sets whether the item can receive focus and input.
func WithEnabled(enabled bool) StackOption {
	return func(i *stackItem) {
		i.enabled = enabled
	}
}

// Stack lays out primitives top to bottom. Items with a height function get
// that many rows; the others share what is left.
type Stack struct {
	*Box

	items []*stackItem

	// We keep a reference to the function which allows us to set the focus to
	// a child.
	setFocus func(p Primitive)
}

var _ Primitive = &Stack{}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{Box: NewBox()}
}

// AddItem appends item below the existing items.
func (s *Stack) AddItem(item Primitive, opts ...StackOption) *Stack {
	i := &stackItem{item: item, visible: true, enabled: true}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	s.items = append(s.items, i)
	s.MarkDirty()
	return s
}

// GetItem returns the item with the given name, or nil.
func (s *Stack) GetItem(name string) Primitive {
	for _, i := range s.items {
		if i.name == name {
			return i.item
		}
	}
	return nil
}

// SetVisible shows or hides the item with the given name.
func (s *Stack) SetVisible(name string, visible bool) *Stack {
	for _, i := range s.items {
		if i.name == name && i.visible != visible {
			i.visible = visible
			if !visible && i.item.HasFocus() {
				i.item.Blur()
				s.Focus(s.setFocus)
			}
			s.MarkDirty()
		}
	}
	return s
}

// GetVisible returns whether the item with the given name is visible.
func (s *Stack) GetVisible(name string) bool {
	for _, i := range s.items {
		if i.name == name {
			return i.visible
		}
	}
	return false
}

// layout sets the rect of every visible item.
func (s *Stack) layout() {
	x, y, width, height := s.GetInnerRect()

	fixed, fill := 0, 0
	heights := make([]int, len(s.items))
	for index, i := range s.items {
		if !i.visible {
			continue
		}
		if i.height == nil {
			fill++
			continue
		}
		heights[index] = max(i.height(width), 0)
		fixed += heights[index]
	}

	remaining := max(height-fixed, 0)
	for index, i := range s.items {
		if !i.visible || i.height != nil {
			continue
		}
		heights[index] = remaining / fill
		remaining -= heights[index]
		fill--
	}

	bottom := y + height
	for index, i := range s.items {
		if !i.visible {
			continue
		}
		h := min(heights[index], max(bottom-y, 0))
		i.item.SetRect(x, y, width, h)
		y += h
	}
}

// Draw draws this primitive onto the screen.
func (s *Stack) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen)
	s.layout()
	for _, i := range s.items {
		if !i.visible {
			continue
		}
		if _, _, width, height := i.item.GetRect(); width <= 0 || height <= 0 {
			continue
		}
		i.item.Draw(screen)
	}
}

// HasFocus returns whether this primitive or one of its items has focus.
func (s *Stack) HasFocus() bool {
	for _, i := range s.items {
		if i.enabled && i.item.HasFocus() {
			return true
		}
	}
	return s.Box.HasFocus()
}

// Focus passes the focus to the first visible enabled item.
func (s *Stack) Focus(delegate func(p Primitive)) {
	if delegate == nil {
		return // We cannot delegate so we cannot focus.
	}
	s.setFocus = delegate
	for _, i := range s.items {
		if i.visible && i.enabled {
			delegate(i.item)
			return
		}
	}
	s.Box.Focus(delegate)
}

// InputHandler passes key events to the focused item.
func (s *Stack) InputHandler(event *tcell.EventKey) Command {
	for _, i := range s.items {
		if i.enabled && i.item.HasFocus() {
			return i.item.InputHandler(event)
		}
	}
	return nil
}

// MouseHandler passes mouse events to the item under the pointer.
func (s *Stack) MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command) {
	if !s.InRect(event.Position()) {
		return nil, nil
	}
	for _, i := range s.items {
		if !i.visible || !i.enabled {
			continue
		}
		x, y, width, height := i.item.GetRect()
		mx, my := event.Position()
		if mx < x || mx >= x+width || my < y || my >= y+height {
			continue
		}
		return i.item.MouseHandler(action, event)
	}
	return nil, nil
}
