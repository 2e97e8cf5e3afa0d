package listview

import (
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	seq        int
	top        int
	height     int
	lineHeight int
	attrs      map[string]string
	classes    map[string]bool
	draggable  bool

	text          string
	naturalWidth  int
	naturalHeight int
}

func (n *fakeNode) SetTop(top int)                   { n.top = top }
func (n *fakeNode) SetHeight(height int)             { n.height = height }
func (n *fakeNode) SetLineHeight(height int)         { n.lineHeight = height }
func (n *fakeNode) SetAttribute(name, value string)  { n.attrs[name] = value }
func (n *fakeNode) RemoveAttribute(name string)      { delete(n.attrs, name) }
func (n *fakeNode) ToggleClass(name string, on bool) { n.classes[name] = on }
func (n *fakeNode) SetDraggable(draggable bool)      { n.draggable = draggable }
func (n *fakeNode) Measure() (int, int)              { return n.naturalWidth, n.naturalHeight }

type fakeContainer struct {
	nodes   []*fakeNode
	created int
	classes map[string]bool

	top, left, width, height int
	viewWidth, viewHeight    int
}

func newFakeContainer(width, height int) *fakeContainer {
	return &fakeContainer{classes: make(map[string]bool), viewWidth: width, viewHeight: height}
}

func (c *fakeContainer) NewNode() Node {
	c.created++
	return &fakeNode{seq: c.created, height: -1, attrs: make(map[string]string), classes: make(map[string]bool)}
}

func (c *fakeContainer) Insert(node, before Node) {
	n := node.(*fakeNode)
	c.detach(n)
	if before != nil {
		if i := slices.Index(c.nodes, before.(*fakeNode)); i >= 0 {
			c.nodes = slices.Insert(c.nodes, i, n)
			return
		}
	}
	c.nodes = append(c.nodes, n)
}

func (c *fakeContainer) Remove(node Node) {
	c.detach(node.(*fakeNode))
}

func (c *fakeContainer) detach(n *fakeNode) {
	if i := slices.Index(c.nodes, n); i >= 0 {
		c.nodes = slices.Delete(c.nodes, i, i+1)
	}
}

func (c *fakeContainer) Contains(node Node) bool {
	return slices.Contains(c.nodes, node.(*fakeNode))
}

func (c *fakeContainer) SetTop(top int)                   { c.top = top }
func (c *fakeContainer) SetLeft(left int)                 { c.left = left }
func (c *fakeContainer) SetWidth(width int)               { c.width = width }
func (c *fakeContainer) SetHeight(height int)             { c.height = height }
func (c *fakeContainer) ToggleClass(name string, on bool) { c.classes[name] = on }
func (c *fakeContainer) Size() (int, int)                 { return c.viewWidth, c.viewHeight }

func (c *fakeContainer) texts() []string {
	out := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n.text
	}
	return out
}

// textDelegate gives every element a fixed height. Elements with a "~"
// prefix have dynamic heights.
type textDelegate struct {
	height int
}

func (d textDelegate) Height(string) int              { return d.height }
func (d textDelegate) TemplateID(string) string       { return "text" }
func (d textDelegate) HasDynamicHeight(e string) bool { return strings.HasPrefix(e, "~") }

type textTemplate struct {
	node *fakeNode
}

type textRenderer struct {
	templates         int
	disposedTemplates int
	rendered          []string
	disposedElements  []int
	onRender          func(element string)
}

func (r *textRenderer) TemplateID() string { return "text" }

func (r *textRenderer) RenderTemplate(node Node) any {
	r.templates++
	return &textTemplate{node: node.(*fakeNode)}
}

// RenderElement lays the element out with one line per "|" separated part.
func (r *textRenderer) RenderElement(element string, index int, template any, details RenderDetails) {
	if r.onRender != nil {
		r.onRender(element)
	}
	t := template.(*textTemplate)
	t.node.text = element
	t.node.naturalWidth = len(element)
	t.node.naturalHeight = strings.Count(element, "|") + 1
	r.rendered = append(r.rendered, element)
}

func (r *textRenderer) DisposeElement(element string, index int, template any, details RenderDetails) {
	r.disposedElements = append(r.disposedElements, index)
}

func (r *textRenderer) DisposeTemplate(template any) {
	r.disposedTemplates++
}

type fixture struct {
	view      *ListView[string]
	container *fakeContainer
	renderer  *textRenderer
	scheduler *FrameScheduler
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T, height int, delegate Delegate[string], opts Options[string]) *fixture {
	t.Helper()
	f := &fixture{
		container: newFakeContainer(80, height),
		renderer:  &textRenderer{},
		scheduler: NewFrameScheduler(epoch),
	}
	opts.Scheduler = f.scheduler
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	view, err := New[string](f.container, delegate, []Renderer[string]{f.renderer}, opts)
	require.NoError(t, err)
	f.view = view
	return f
}

// frame runs the callbacks of one frame.
func (f *fixture) frame() {
	f.scheduler.Advance(16 * time.Millisecond)
}

func (f *fixture) node(index int) *fakeNode {
	n := f.view.Node(index)
	if n == nil {
		return nil
	}
	return n.(*fakeNode)
}

// requireExactRows checks that exactly the render range owns rows, that every
// row is distinct and that no other node is attached.
func requireExactRows(t *testing.T, f *fixture) {
	t.Helper()
	r := f.view.RenderRange()
	seen := make(map[*fakeNode]int)
	for i := 0; i < f.view.Length(); i++ {
		n := f.node(i)
		if r.Contains(i) {
			require.NotNil(t, n, "index %d in %v has no row", i, r)
			prev, dup := seen[n]
			require.False(t, dup, "indices %d and %d share a row", prev, i)
			seen[n] = i
			require.True(t, f.container.Contains(n), "row of %d is detached", i)
		} else {
			require.Nil(t, n, "index %d outside %v owns a row", i, r)
		}
	}
	require.Len(t, f.container.nodes, len(seen))
}

func elements(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + string(rune('a'+i%26)) + strings.Repeat("'", i/26)
	}
	return out
}

func ptr[V any](v V) *V {
	return &v
}
