package term

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// Box implements the rectangular frame shared by every primitive: a
// background, optional borders with a title and footer, and inner padding.
type Box struct {
	// The position of the rect.
	x, y, width, height int

	// The inner rect reserved for the box's content. innerX is negative while
	// it needs to be recalculated.
	innerX, innerY, innerWidth, innerHeight int

	// Border padding.
	paddingTop, paddingBottom, paddingLeft, paddingRight int

	backgroundColor tcell.Color

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style
	// The border style used while the box has focus.
	focusBorderStyle tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	footer          string
	footerStyle     tcell.Style
	footerAlignment Alignment

	hasFocus bool

	// dirty is set whenever the box needs to be drawn again.
	dirty atomic.Bool

	focus, blur func()
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	b := &Box{
		width:           15,
		height:          10,
		innerX:          -1, // Mark as uninitialized.
		backgroundColor: Styles.PrimitiveBackgroundColor,

		borderStyle:      tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		focusBorderStyle: tcell.StyleDefault.Foreground(Styles.FocusBorderColor).Background(Styles.PrimitiveBackgroundColor),
		borderSet:        BorderSetPlain(),

		titleStyle:      tcell.StyleDefault.Foreground(Styles.TitleColor),
		titleAlignment:  AlignmentCenter,
		footerStyle:     tcell.StyleDefault.Foreground(Styles.TitleColor),
		footerAlignment: AlignmentCenter,
	}
	b.dirty.Store(true)
	return b
}

// SetBorderPadding sets the size of the borders around the box content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	if b.paddingTop != top || b.paddingBottom != bottom || b.paddingLeft != left || b.paddingRight != right {
		b.paddingTop, b.paddingBottom, b.paddingLeft, b.paddingRight = top, bottom, left, right
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// GetRect returns the current position of the rectangle, x, y, width, and
// height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// GetInnerRect returns the position of the inner rectangle (x, y, width,
// height), without the border and without any padding.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.innerX >= 0 {
		return b.innerX, b.innerY, b.innerWidth, b.innerHeight
	}

	x, y, width, height := b.GetRect()

	if b.title != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.footer != "" || b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}

	x += b.paddingLeft
	y += b.paddingTop
	width -= b.paddingLeft + b.paddingRight
	height -= b.paddingTop + b.paddingBottom
	width = max(width, 0)
	height = max(height, 0)

	b.innerX, b.innerY, b.innerWidth, b.innerHeight = x, y, width, height
	return x, y, width, height
}

// SetRect sets a new position of the primitive.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x = x
		b.y = y
		b.width = width
		b.height = height
		b.innerX = -1
		b.MarkDirty()
	}
}

// IsDirty reports whether the box must be drawn again.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty requests a redraw.
func (b *Box) MarkDirty() {
	b.dirty.Store(true)
}

// MarkClean is called once the box has been drawn.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// InputHandler implements Primitive. A plain box ignores keys.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler implements Primitive. A left click inside the box focuses it.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// InRect returns true if the given coordinate is within the bounds of the box's
// rectangle.
func (b *Box) InRect(x, y int) bool {
	rectX, rectY, width, height := b.GetRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

// InInnerRect returns true if the given coordinate is within the bounds of the
// box's inner rectangle.
func (b *Box) InInnerRect(x, y int) bool {
	rectX, rectY, width, height := b.GetInnerRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.backgroundColor != color {
		b.backgroundColor = color
		b.borderStyle = b.borderStyle.Background(color)
		b.focusBorderStyle = b.focusBorderStyle.Background(color)
		b.MarkDirty()
	}
	return b
}

func (b *Box) GetBackgroundColor() tcell.Color {
	return b.backgroundColor
}

func (b *Box) SetBorders(flag Borders) *Box {
	if b.borders != flag {
		b.borders = flag
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

func (b *Box) GetBorders() Borders {
	return b.borders
}

func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	if b.borderSet != borderSet {
		b.borderSet = borderSet
		b.MarkDirty()
	}
	return b
}

func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	if b.borderStyle != style {
		b.borderStyle = style
		b.MarkDirty()
	}
	return b
}

func (b *Box) SetFocusBorderStyle(style tcell.Style) *Box {
	if b.focusBorderStyle != style {
		b.focusBorderStyle = style
		b.MarkDirty()
	}
	return b
}

func (b *Box) GetTitle() string {
	return b.title
}

func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	if b.titleAlignment != alignment {
		b.titleAlignment = alignment
		b.MarkDirty()
	}
	return b
}

func (b *Box) GetFooter() string {
	return b.footer
}

func (b *Box) SetFooter(footer string) *Box {
	if b.footer != footer {
		b.footer = footer
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

func (b *Box) SetFooterAlignment(alignment Alignment) *Box {
	if b.footerAlignment != alignment {
		b.footerAlignment = alignment
		b.MarkDirty()
	}
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen)
}

// DrawForSubclass draws the frame of a primitive embedding the box.
func (b *Box) DrawForSubclass(screen tcell.Screen) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	bg := tcell.StyleDefault.Background(b.backgroundColor)
	for y := b.y; y < b.y+b.height; y++ {
		for x := b.x; x < b.x+b.width; x++ {
			screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		style := b.borderStyle
		if b.hasFocus {
			style = b.focusBorderStyle
		}
		right, bottom := b.x+b.width-1, b.y+b.height-1
		if b.borders.Has(BordersTop) {
			for x := b.x + 1; x < right; x++ {
				setCell(screen, x, b.y, b.borderSet.Top, style)
			}
		}
		if b.borders.Has(BordersBottom) {
			for x := b.x + 1; x < right; x++ {
				setCell(screen, x, bottom, b.borderSet.Bottom, style)
			}
		}
		if b.borders.Has(BordersLeft) {
			for y := b.y + 1; y < bottom; y++ {
				setCell(screen, b.x, y, b.borderSet.Left, style)
			}
		}
		if b.borders.Has(BordersRight) {
			for y := b.y + 1; y < bottom; y++ {
				setCell(screen, right, y, b.borderSet.Right, style)
			}
		}
		if b.borders.Has(BordersTop) && b.borders.Has(BordersLeft) {
			setCell(screen, b.x, b.y, b.borderSet.TopLeft, style)
		}
		if b.borders.Has(BordersTop) && b.borders.Has(BordersRight) {
			setCell(screen, right, b.y, b.borderSet.TopRight, style)
		}
		if b.borders.Has(BordersBottom) && b.borders.Has(BordersLeft) {
			setCell(screen, b.x, bottom, b.borderSet.BottomLeft, style)
		}
		if b.borders.Has(BordersBottom) && b.borders.Has(BordersRight) {
			setCell(screen, right, bottom, b.borderSet.BottomRight, style)
		}
	}

	b.drawLabel(screen, b.title, b.y, b.titleAlignment, b.titleStyle)
	b.drawLabel(screen, b.footer, b.y+b.height-1, b.footerAlignment, b.footerStyle)

	b.innerX = -1
	b.GetInnerRect()
}

// drawLabel prints a title or footer into the border row y, marking a
// truncated label with an ellipsis.
func (b *Box) drawLabel(screen tcell.Screen, label string, y int, alignment Alignment, style tcell.Style) {
	if label == "" || b.width < 4 {
		return
	}
	printed, _ := printWithStyle(screen, label, b.x+1, y, b.width-2, alignment, style, true)
	if len(label)-printed > 0 && printed > 0 {
		xEllipsis := b.x + b.width - 2
		if alignment == AlignmentRight {
			xEllipsis = b.x + 1
		}
		_, _, existing, _ := screen.GetContent(xEllipsis, y)
		fg, _, _ := existing.Decompose()
		Print(screen, SemigraphicsHorizontalEllipsis, xEllipsis, y, 1, AlignmentLeft, fg)
	}
}

// SetFocusFunc sets a callback function which is invoked when this primitive
// receives focus. Set to nil to remove the callback function.
func (b *Box) SetFocusFunc(callback func()) *Box {
	b.focus = callback
	return b
}

// SetBlurFunc sets a callback function which is invoked when this primitive
// loses focus. Set to nil to remove the callback function.
func (b *Box) SetBlurFunc(callback func()) *Box {
	b.blur = callback
	return b
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
	if b.focus != nil {
		b.focus()
	}
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
	if b.blur != nil {
		b.blur()
	}
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}
