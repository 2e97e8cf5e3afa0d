package listview

// Node is the host visual-tree element backing one row.
type Node interface {
	// SetTop places the node at a position relative to the top of the content.
	SetTop(top int)
	// SetHeight fixes the node height. A negative height lets the node size
	// itself from its content.
	SetHeight(height int)
	// SetLineHeight sets the line height used by the node's content.
	SetLineHeight(height int)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	ToggleClass(name string, on bool)
	SetDraggable(draggable bool)
	// Measure returns the natural size of the node at the container width.
	Measure() (width, height int)
}

// Container is the host parent of every row node.
type Container interface {
	// NewNode creates a detached node.
	NewNode() Node
	// Insert attaches node before the given sibling, or last when before is nil.
	// Inserting an attached node moves it.
	Insert(node, before Node)
	Remove(node Node)
	// Contains reports whether node is currently attached.
	Contains(node Node) bool
	// SetTop sets the vertical offset of the rows relative to the viewport.
	SetTop(top int)
	// SetLeft sets the horizontal offset of the rows relative to the viewport.
	SetLeft(left int)
	// SetWidth sets the content width. A negative width follows the viewport.
	SetWidth(width int)
	// SetHeight sets the content height.
	SetHeight(height int)
	ToggleClass(name string, on bool)
	// Size returns the viewport size.
	Size() (width, height int)
}

// Row is a recyclable node bound to the state of one template.
type Row struct {
	Node       Node
	TemplateID string
	Template   any
}

// rowSlot records whether an item owns a row.
type rowSlot struct {
	row *Row
}

// Attached returns the owned row.
func (s rowSlot) Attached() (*Row, bool) {
	return s.row, s.row != nil
}

func (s *rowSlot) attach(row *Row) {
	if s.row != nil {
		panic("listview: item already owns a row")
	}
	s.row = row
}

func (s *rowSlot) detach() *Row {
	row := s.row
	s.row = nil
	return row
}
