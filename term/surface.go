package term

import (
	"slices"

	"github.com/ayn2op/listview"
	"github.com/gdamore/tcell/v2"
)

// Surface is a terminal container for list rows. Rows are laid out in cells
// relative to the top of the content, which is offset against the viewport.
type Surface struct {
	nodes []*RowNode

	top, left     int
	width, height int

	viewWidth, viewHeight int
	classes               map[string]bool
}

var _ listview.Container = &Surface{}

// NewSurface returns an empty surface whose content follows the viewport width.
func NewSurface() *Surface {
	return &Surface{width: -1, classes: make(map[string]bool)}
}

// SetViewport sets the size of the visible area.
func (s *Surface) SetViewport(width, height int) {
	s.viewWidth, s.viewHeight = max(width, 0), max(height, 0)
}

// NewNode implements listview.Container.
func (s *Surface) NewNode() listview.Node {
	return &RowNode{
		surface: s,
		height:  -1,
		attrs:   make(map[string]string),
		classes: make(map[string]bool),
	}
}

// Insert implements listview.Container.
func (s *Surface) Insert(node, before listview.Node) {
	n := node.(*RowNode)
	if i := slices.Index(s.nodes, n); i >= 0 {
		s.nodes = slices.Delete(s.nodes, i, i+1)
	}
	at := len(s.nodes)
	if b, ok := before.(*RowNode); ok && b != nil {
		if i := slices.Index(s.nodes, b); i >= 0 {
			at = i
		}
	}
	s.nodes = slices.Insert(s.nodes, at, n)
}

// Remove implements listview.Container.
func (s *Surface) Remove(node listview.Node) {
	if i := slices.Index(s.nodes, node.(*RowNode)); i >= 0 {
		s.nodes = slices.Delete(s.nodes, i, i+1)
	}
}

// Contains implements listview.Container.
func (s *Surface) Contains(node listview.Node) bool {
	n, ok := node.(*RowNode)
	return ok && slices.Contains(s.nodes, n)
}

// SetTop implements listview.Container.
func (s *Surface) SetTop(top int) { s.top = top }

// SetLeft implements listview.Container.
func (s *Surface) SetLeft(left int) { s.left = left }

// SetWidth implements listview.Container.
func (s *Surface) SetWidth(width int) { s.width = width }

// SetHeight implements listview.Container.
func (s *Surface) SetHeight(height int) { s.height = height }

// ToggleClass implements listview.Container.
func (s *Surface) ToggleClass(name string, on bool) { s.classes[name] = on }

// HasClass reports whether the surface carries the class name.
func (s *Surface) HasClass(name string) bool { return s.classes[name] }

// Size implements listview.Container.
func (s *Surface) Size() (width, height int) {
	return s.viewWidth, s.viewHeight
}

// ContentWidth returns the width rows are laid out at.
func (s *Surface) ContentWidth() int {
	if s.width < 0 {
		return s.viewWidth
	}
	return s.width
}

// Nodes returns the attached rows in document order.
func (s *Surface) Nodes() []*RowNode {
	return s.nodes
}

// NodeAt returns the row covering the viewport line y.
func (s *Surface) NodeAt(y int) *RowNode {
	for _, n := range s.nodes {
		top := s.top + n.top
		if y >= top && y < top+n.Height() {
			return n
		}
	}
	return nil
}

// Draw paints the rows visible in the viewport at (x, y). style returns the
// base style of a row.
func (s *Surface) Draw(screen tcell.Screen, x, y int, style func(n *RowNode) tcell.Style) {
	clipped := newClippedScreen(screen, x, y, s.viewWidth, s.viewHeight)
	for _, n := range s.nodes {
		rowTop := y + s.top + n.top
		height := n.Height()
		if rowTop+height <= y || rowTop >= y+s.viewHeight {
			continue
		}
		rowStyle := style(n)
		lines := n.layout()
		for i := 0; i < height; i++ {
			line := ""
			if i < len(lines) {
				line = lines[i]
			}
			sy := rowTop + i
			for sx := x; sx < x+s.viewWidth; sx++ {
				clipped.SetContent(sx, sy, ' ', nil, rowStyle)
			}
			printWithStyle(clipped, line, x+s.left, sy, s.ContentWidth(), AlignmentLeft, rowStyle, false)
		}
		marker := tcell.StyleDefault.Foreground(Styles.DropTargetColor).Background(background(rowStyle))
		if n.classes[listview.ClassDropTargetBefore] {
			for sx := x; sx < x+s.viewWidth; sx++ {
				setCell(clipped, sx, rowTop, BlockUpperOneEighthBlock, marker)
			}
		}
		if n.classes[listview.ClassDropTargetAfter] {
			for sx := x; sx < x+s.viewWidth; sx++ {
				setCell(clipped, sx, rowTop+height-1, BlockLowerOneEighthBlock, marker)
			}
		}
	}
}

// RowNode is one row of a Surface. Its text is laid out one terminal line per
// row line, wrapped at the content width when wrapping is enabled.
type RowNode struct {
	surface *Surface

	top, height, lineHeight int
	attrs                   map[string]string
	classes                 map[string]bool
	draggable               bool

	text  string
	style tcell.Style
	wrap  bool

	// Layout cache.
	lines       []string
	layoutWidth int
	layoutValid bool
}

var _ listview.Node = &RowNode{}

// SetTop implements listview.Node.
func (n *RowNode) SetTop(top int) { n.top = top }

// SetHeight implements listview.Node.
func (n *RowNode) SetHeight(height int) { n.height = height }

// SetLineHeight implements listview.Node. Terminal rows are always one cell
// tall per line, so the value is only recorded.
func (n *RowNode) SetLineHeight(height int) { n.lineHeight = height }

// SetAttribute implements listview.Node.
func (n *RowNode) SetAttribute(name, value string) { n.attrs[name] = value }

// RemoveAttribute implements listview.Node.
func (n *RowNode) RemoveAttribute(name string) { delete(n.attrs, name) }

// ToggleClass implements listview.Node.
func (n *RowNode) ToggleClass(name string, on bool) { n.classes[name] = on }

// SetDraggable implements listview.Node.
func (n *RowNode) SetDraggable(draggable bool) { n.draggable = draggable }

// Measure implements listview.Node.
func (n *RowNode) Measure() (width, height int) {
	lines := n.layout()
	for _, line := range lines {
		width = max(width, StringWidth(line))
	}
	return width, max(len(lines), 1)
}

// SetText replaces the row content.
func (n *RowNode) SetText(text string, style tcell.Style, wrap bool) {
	if n.text != text || n.wrap != wrap {
		n.layoutValid = false
	}
	n.text, n.style, n.wrap = text, style, wrap
}

func (n *RowNode) Text() string { return n.text }
func (n *RowNode) Style() tcell.Style { return n.style }
func (n *RowNode) Top() int { return n.top }
func (n *RowNode) Draggable() bool { return n.draggable }
func (n *RowNode) HasClass(name string) bool { return n.classes[name] }

// Attribute returns the value of an attribute, or "" when it is not set.
func (n *RowNode) Attribute(name string) string { return n.attrs[name] }

// Height returns the fixed height, or the measured height when the row sizes
// itself.
func (n *RowNode) Height() int {
	if n.height >= 0 {
		return n.height
	}
	_, h := n.Measure()
	return h
}

func (n *RowNode) layout() []string {
	width := n.surface.ContentWidth()
	if n.layoutValid && (!n.wrap || n.layoutWidth == width) {
		return n.lines
	}
	n.lines = n.lines[:0]
	for _, line := range SplitLines(n.text) {
		if !n.wrap || width <= 0 {
			n.lines = append(n.lines, line)
			continue
		}
		n.lines = append(n.lines, WordWrap(line, width)...)
	}
	n.layoutWidth = width
	n.layoutValid = true
	return n.lines
}
