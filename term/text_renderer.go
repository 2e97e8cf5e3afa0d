package term

import (
	"strings"

	"github.com/ayn2op/listview"
	"github.com/gdamore/tcell/v2"
)

// TextRenderer renders elements as plain text rows.
type TextRenderer[T any] struct {
	templateID string
	text       func(element T) string
	style      func(element T) tcell.Style
	wrap       bool
}

var _ listview.Renderer[string] = &TextRenderer[string]{}

// NewTextRenderer returns a renderer for templateID printing text(element).
func NewTextRenderer[T any](templateID string, text func(element T) string) *TextRenderer[T] {
	return &TextRenderer[T]{
		templateID: templateID,
		text:       text,
		style:      func(T) tcell.Style { return tcell.StyleDefault.Foreground(Styles.PrimaryTextColor) },
	}
}

// SetStyleFunc sets the style of each element's text.
func (r *TextRenderer[T]) SetStyleFunc(style func(element T) tcell.Style) *TextRenderer[T] {
	r.style = style
	return r
}

// SetWrap word-wraps text at the content width.
func (r *TextRenderer[T]) SetWrap(wrap bool) *TextRenderer[T] {
	r.wrap = wrap
	return r
}

func (r *TextRenderer[T]) TemplateID() string {
	return r.templateID
}

// RenderTemplate keeps the row node as the template.
func (r *TextRenderer[T]) RenderTemplate(node listview.Node) any {
	return node.(*RowNode)
}

func (r *TextRenderer[T]) RenderElement(element T, index int, template any, details listview.RenderDetails) {
	template.(*RowNode).SetText(r.text(element), r.style(element), r.wrap)
}

// DisposeElement clears the row so a pooled node holds no stale text.
func (r *TextRenderer[T]) DisposeElement(element T, index int, template any, details listview.RenderDetails) {
	template.(*RowNode).SetText("", tcell.StyleDefault, r.wrap)
}

func (r *TextRenderer[T]) DisposeTemplate(template any) {}

// TextDelegate sizes text elements by their hard line breaks. Wrapped
// elements report a dynamic height so the list measures them at its width.
type TextDelegate[T any] struct {
	ID   string
	Text func(element T) string
	Wrap bool
}

func (d TextDelegate[T]) Height(element T) int {
	return strings.Count(d.Text(element), "\n") + 1
}

func (d TextDelegate[T]) TemplateID(T) string {
	return d.ID
}

func (d TextDelegate[T]) HasDynamicHeight(T) bool {
	return d.Wrap
}
