package listview

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpliceIntoEmptyList(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})

	deleted := f.view.Splice(0, 0, "A", "B", "C")
	assert.Empty(t, deleted)
	assert.Equal(t, 3, f.view.Length())
	assert.Equal(t, Range{Start: 0, End: 3}, f.view.RenderRange())
	assert.Equal(t, []string{"A", "B", "C"}, f.container.texts())
	assert.Equal(t, 60, f.view.ContentHeight())
	assert.Equal(t, 60, f.view.ElementTop(2)+f.view.ElementHeight(2))
	assert.Equal(t, 60, f.container.height)

	b := f.node(1)
	assert.Equal(t, 20, b.top)
	assert.Equal(t, 20, b.height)
	assert.Equal(t, "1", b.attrs["data-index"])
	assert.Equal(t, "odd", b.attrs["data-parity"])
	assert.Equal(t, "false", b.attrs["data-last-element"])
	assert.Equal(t, "3", b.attrs["aria-setsize"])
	assert.Equal(t, "2", b.attrs["aria-posinset"])
	assert.Equal(t, "list_1", b.attrs["id"])
	assert.Equal(t, "listitem", b.attrs["role"])
	assert.Equal(t, "true", f.node(2).attrs["data-last-element"])
	assert.True(t, f.container.classes["list"])

	assert.Equal(t, 0, f.view.scrollable.Dimensions().ScrollHeight)
	f.frame()
	assert.Equal(t, 60, f.view.scrollable.Dimensions().ScrollHeight)
	requireExactRows(t, f)
}

func TestSpliceRemovesAndRepositions(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, "A", "B", "C")
	a, c := f.node(0), f.node(2)

	deleted := f.view.Splice(1, 1)
	assert.Equal(t, []string{"B"}, deleted)
	assert.Equal(t, []string{"A", "C"}, f.container.texts())
	assert.Same(t, a, f.node(0))
	assert.Same(t, c, f.node(1))
	assert.Equal(t, 0, a.top)
	assert.Equal(t, 20, c.top)
	assert.Equal(t, "1", c.attrs["data-index"])
	assert.Equal(t, "true", c.attrs["data-last-element"])
	assert.Equal(t, []int{1}, f.renderer.disposedElements)
	assert.Equal(t, 1, f.view.cache.Pooled("text"))
	requireExactRows(t, f)
}

func TestSpliceReusesDeletedRows(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, "A", "B", "C")
	b := f.node(1)

	assert.Equal(t, []string{"B"}, f.view.Splice(1, 1, "X"))
	assert.Same(t, b, f.node(1))
	assert.Equal(t, "X", b.text)
	assert.Equal(t, 3, f.container.created)
	assert.Equal(t, []string{"A", "X", "C"}, f.container.texts())
}

func TestSpliceReplaceAll(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, elements("", 10)...)

	deleted := f.view.Splice(0, 10, "x", "y")
	assert.Len(t, deleted, 10)
	assert.Equal(t, "a", deleted[0])
	assert.Equal(t, []string{"x", "y"}, f.container.texts())
	assert.Equal(t, 40, f.view.ContentHeight())
	requireExactRows(t, f)
}

func TestSpliceClampsArguments(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, "A", "B")

	assert.Equal(t, []string{"B"}, f.view.Splice(1, 99))
	f.view.Splice(50, 0, "Z")
	f.view.Splice(-4, 0, "Y")
	assert.Equal(t, []string{"Y", "A", "Z"}, f.container.texts())
}

func TestScrollRendersViewport(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, elements("", 10)...)
	created := f.container.created

	f.view.SetScrollTop(100)
	assert.Equal(t, 100, f.view.ScrollTop())
	assert.Equal(t, Range{Start: 5, End: 8}, f.view.RenderRange())
	assert.Equal(t, -100, f.container.top)
	assert.Equal(t, 5, f.view.FirstVisibleIndex())
	assert.Equal(t, 7, f.view.LastVisibleIndex())
	assert.Equal(t, created, f.container.created, "rows are recycled")
	requireExactRows(t, f)

	f.view.SetScrollTop(1000)
	assert.Equal(t, 155, f.view.ScrollTop())
	assert.Equal(t, Range{Start: 7, End: 10}, f.view.RenderRange())
	requireExactRows(t, f)
}

func TestFirstMostlyVisibleIndex(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, elements("", 10)...)

	f.view.SetScrollTop(9)
	assert.Equal(t, 0, f.view.FirstMostlyVisibleIndex())
	f.view.SetScrollTop(11)
	assert.Equal(t, 0, f.view.FirstVisibleIndex())
	assert.Equal(t, 1, f.view.FirstMostlyVisibleIndex())
}

func TestReveal(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, elements("", 10)...)

	f.view.Reveal(6)
	assert.Equal(t, 95, f.view.ScrollTop())
	f.view.Reveal(5)
	assert.Equal(t, 95, f.view.ScrollTop())
	f.view.Reveal(0)
	assert.Equal(t, 0, f.view.ScrollTop())
	f.view.Reveal(42)
	assert.Equal(t, 0, f.view.ScrollTop())
}

func TestElementAtPoint(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, "a", "b")

	index, ok := f.view.ElementAtPoint(25)
	assert.True(t, ok)
	assert.Equal(t, 1, index)
	_, ok = f.view.ElementAtPoint(41)
	assert.False(t, ok)
	assert.Equal(t, 1, IndexOf(f.view, "b"))
	assert.Equal(t, -1, IndexOf(f.view, "z"))
}

func TestScrollBy(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{SmoothScrolling: true})
	f.view.Splice(0, 0, elements("", 10)...)

	f.view.ScrollBy(40)
	assert.Equal(t, 0, f.view.ScrollTop())
	f.view.ScrollBy(20)
	for range 10 {
		f.frame()
	}
	assert.Equal(t, 60, f.view.ScrollTop())
	assert.Equal(t, Range{Start: 3, End: 6}, f.view.RenderRange())
	requireExactRows(t, f)
}

// heightDelegate reads an element's height from the number after its colon.
type heightDelegate struct{}

func (heightDelegate) Height(e string) int {
	n, _ := strconv.Atoi(e[strings.LastIndexByte(e, ':')+1:])
	return n
}

func (heightDelegate) TemplateID(string) string { return "text" }

func TestRenderedRowsMatchRenderRange(t *testing.T) {
	f := newFixture(t, 50, heightDelegate{}, Options[string]{})
	rng := rand.New(rand.NewPCG(1, 2))
	next := 0

	for step := 0; step < 400; step++ {
		switch op := rng.IntN(10); {
		case op < 5:
			start := rng.IntN(f.view.Length() + 1)
			deleteCount := rng.IntN(4)
			inserted := make([]string, rng.IntN(5))
			for i := range inserted {
				inserted[i] = fmt.Sprintf("e%d:%d", next, 5+rng.IntN(26))
				next++
			}
			f.view.Splice(start, deleteCount, inserted...)
		case op < 8:
			f.view.SetScrollTop(rng.IntN(f.view.ContentHeight() + 1))
		default:
			f.frame()
		}

		requireExactRows(t, f)
		r := f.view.RenderRange()
		for i := r.Start; i < r.End; i++ {
			n := f.node(i)
			require.Equal(t, f.view.ElementTop(i), n.top, "step %d index %d", step, i)
			require.Equal(t, strconv.Itoa(i), n.attrs["data-index"])
			require.Equal(t, f.view.Element(i), n.text)
			require.Same(t, n, f.container.nodes[i-r.Start], "rows are in index order")
		}
	}
}

func TestOnDidChangeContentHeight(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	var heights []int
	f.view.OnDidChangeContentHeight(func(h int) { heights = append(heights, h) })

	f.view.Splice(0, 0, "A", "B")
	f.view.Splice(0, 0)
	f.view.Splice(0, 1)
	assert.Equal(t, []int{40, 20}, heights)
}

func TestRecursiveSplicePanics(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.renderer.onRender = func(string) { f.view.Splice(0, 0, "nested") }

	assert.PanicsWithValue(t, ErrRecursiveSplice, func() { f.view.Splice(0, 0, "A") })

	f.renderer.onRender = nil
	assert.NotPanics(t, func() { f.view.Splice(0, 0, "B") })
}

func TestBadScrollEventPropagates(t *testing.T) {
	var buf bytes.Buffer
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	})
	items := elements("", 10)
	items[8] = "boom"
	f.view.Splice(0, 0, items...)
	f.frame()
	f.renderer.onRender = func(e string) {
		if e == "boom" {
			panic("boom")
		}
	}

	assert.PanicsWithValue(t, "boom", func() { f.view.SetScrollTop(150) })
	assert.Contains(t, buf.String(), "Got bad scroll event")
	assert.False(t, f.view.cache.inTransaction)
}

func TestMissingRendererPanics(t *testing.T) {
	f := newFixture(t, 45, templateDelegate{}, Options[string]{})
	err := recoverError(func() { f.view.Splice(0, 0, "A") })
	require.ErrorIs(t, err, ErrNoRenderer)
}

type templateDelegate struct{}

func (templateDelegate) Height(string) int        { return 1 }
func (templateDelegate) TemplateID(string) string { return "image" }

func TestNewErrors(t *testing.T) {
	renderers := []Renderer[string]{&textRenderer{}}
	delegate := textDelegate{height: 1}

	_, err := New[string](nil, delegate, renderers, Options[string]{})
	assert.ErrorIs(t, err, ErrNoContainer)

	_, err = New[string](newFakeContainer(1, 1), delegate, renderers, Options[string]{SupportDynamicHeights: true, HorizontalScrolling: true})
	assert.ErrorIs(t, err, ErrDynamicHeightsWithHorizontalScrolling)

	_, err = New[string](newFakeContainer(1, 1), delegate, renderers, Options[string]{UserSelection: true, DragAndDrop: &dragPolicy{}})
	assert.ErrorIs(t, err, ErrSelectionWithDragAndDrop)

	_, err = New[string](newFakeContainer(1, 1), delegate, []Renderer[string]{&textRenderer{}, &textRenderer{}}, Options[string]{})
	assert.ErrorIs(t, err, ErrDuplicateRenderer)

	v, err := New[string](newFakeContainer(1, 1), delegate, renderers, Options[string]{SupportDynamicHeights: true})
	require.NoError(t, err)
	assert.ErrorIs(t, v.UpdateOptions(OptionsUpdate{HorizontalScrolling: ptr(true)}), ErrDynamicHeightsWithHorizontalScrolling)
}

func TestPadding(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{PaddingTop: 10})
	f.view.Splice(0, 0, "A", "B", "C")
	assert.Equal(t, 10, f.view.ElementTop(0))
	assert.Equal(t, 70, f.view.ContentHeight())
	assert.Equal(t, 10, f.node(0).top)

	require.NoError(t, f.view.UpdateOptions(OptionsUpdate{PaddingTop: ptr(0), PaddingBottom: ptr(5)}))
	assert.Equal(t, 0, f.view.ElementTop(0))
	assert.Equal(t, 0, f.node(0).top)
	f.frame()
	assert.Equal(t, 65, f.view.ScrollHeight())
	assert.Equal(t, 65, f.view.scrollable.Dimensions().ScrollHeight)
	requireExactRows(t, f)
}

func TestHorizontalScrolling(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{HorizontalScrolling: true})
	var widths []int
	f.view.OnDidChangeContentWidth(func(w int) { widths = append(widths, w) })

	f.view.Splice(0, 0, "a", "bbbb", "cc")
	assert.Equal(t, 0, f.view.ContentWidth())

	f.frame()
	assert.Equal(t, 4, f.view.ContentWidth())
	assert.Equal(t, 14, f.view.scrollable.Dimensions().ScrollWidth)
	assert.Equal(t, 70, f.view.ScrollHeight())
	assert.Equal(t, 14, f.container.width)
	assert.Equal(t, []int{4}, widths)
}

func TestWidthUpdatesAreDelayed(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{HorizontalScrolling: true})
	items := elements("", 10)
	items[9] = "wwwwwwwwwwww"
	f.view.Splice(0, 0, items...)
	f.frame()
	assert.Equal(t, 1, f.view.ContentWidth())

	f.view.SetScrollTop(155)
	assert.Equal(t, Range{Start: 7, End: 10}, f.view.RenderRange())
	assert.Equal(t, 1, f.view.ContentWidth())

	f.scheduler.Advance(40 * time.Millisecond)
	assert.Equal(t, 1, f.view.ContentWidth())
	f.scheduler.Advance(20 * time.Millisecond)
	assert.Equal(t, 12, f.view.ContentWidth())
}

type checkedValue struct {
	Emitter[CheckedState]
	state CheckedState
}

func (c *checkedValue) Value() CheckedState { return c.state }

func (c *checkedValue) OnDidChange(fn func(CheckedState)) Disposable { return c.Subscribe(fn) }

func (c *checkedValue) set(state CheckedState) {
	c.state = state
	c.Fire(state)
}

type accessibility struct {
	value *checkedValue
}

func (accessibility) Role(string) string { return "treeitem" }

func (a accessibility) Checked(e string) (CheckedState, CheckedValue) {
	if e == "B" {
		return CheckedUnset, a.value
	}
	return CheckedMixed, nil
}

func (accessibility) SetSize(_ string, _, length int) int { return length * 10 }

func TestAccessibility(t *testing.T) {
	value := &checkedValue{state: CheckedTrue}
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{
		ID:                    "files",
		AccessibilityProvider: accessibility{value: value},
	})
	f.view.Splice(0, 0, "A", "B", "C")

	assert.Equal(t, "treeitem", f.node(0).attrs["role"])
	assert.Equal(t, "mixed", f.node(0).attrs["aria-checked"])
	assert.Equal(t, "true", f.node(1).attrs["aria-checked"])
	assert.Equal(t, "30", f.node(1).attrs["aria-setsize"])
	assert.Equal(t, "files_2", f.node(2).attrs["id"])

	node := f.node(1)
	value.set(CheckedFalse)
	assert.Equal(t, "false", node.attrs["aria-checked"])

	f.view.Splice(1, 1)
	assert.Empty(t, value.listeners)
}

type firstChecked struct{}

func (firstChecked) Checked(e string) (CheckedState, CheckedValue) {
	if e == "a" {
		return CheckedTrue, nil
	}
	return CheckedUnset, nil
}

func TestRecycledRowDropsCheckedState(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{AccessibilityProvider: firstChecked{}})
	f.view.Splice(0, 0, elements("", 10)...)
	f.frame()
	require.Equal(t, "true", f.node(0).attrs["aria-checked"])
	first := f.node(0)
	created := f.container.created

	f.view.SetScrollTop(150)
	require.Equal(t, Range{Start: 7, End: 10}, f.view.RenderRange())
	assert.Equal(t, created, f.container.created, "rows are recycled")
	for i := 7; i < 10; i++ {
		assert.NotContains(t, f.node(i).attrs, "aria-checked", "index %d", i)
	}
	assert.Contains(t, []*fakeNode{f.node(7), f.node(8), f.node(9)}, first)
}

func TestDispose(t *testing.T) {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, elements("", 10)...)

	f.view.Dispose()
	assert.Equal(t, []int{-1, -1, -1}, f.renderer.disposedElements)
	assert.Equal(t, 3, f.renderer.disposedTemplates)
	assert.Empty(t, f.container.nodes)
	assert.False(t, f.scheduler.Pending())

	assert.Nil(t, f.view.Splice(0, 0, "A"))
	assert.ErrorIs(t, f.view.UpdateElementHeight(0, ptr(3), nil), ErrDisposed)
	assert.ErrorIs(t, f.view.UpdateOptions(OptionsUpdate{}), ErrDisposed)
	assert.NotPanics(t, func() { f.view.Dispose() })
}
