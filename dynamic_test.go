package listview

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedList(t *testing.T) *fixture {
	f := newFixture(t, 45, textDelegate{height: 20}, Options[string]{})
	f.view.Splice(0, 0, elements("", 10)...)
	f.frame()
	return f
}

func TestUpdateElementHeightBelowViewport(t *testing.T) {
	f := fixedList(t)
	var heights []int
	f.view.OnDidChangeContentHeight(func(h int) { heights = append(heights, h) })

	require.NoError(t, f.view.UpdateElementHeight(5, ptr(40), nil))
	assert.Equal(t, 0, f.view.ScrollTop())
	assert.Equal(t, 220, f.view.ContentHeight())
	assert.Equal(t, 140, f.view.ElementTop(6))
	assert.Equal(t, []int{220}, heights)
	requireExactRows(t, f)
}

func TestUpdateElementHeightAboveViewport(t *testing.T) {
	f := fixedList(t)
	f.view.SetScrollTop(60)
	require.Equal(t, Range{Start: 3, End: 6}, f.view.RenderRange())

	require.NoError(t, f.view.UpdateElementHeight(1, ptr(40), nil))
	assert.Equal(t, 80, f.view.ScrollTop())
	assert.Equal(t, 80, f.view.ElementTop(3))
	assert.Equal(t, 80, f.node(3).top)
	assert.Equal(t, 3, f.view.FirstVisibleIndex())
	requireExactRows(t, f)
}

func TestUpdateElementHeightKeepsAnchor(t *testing.T) {
	f := fixedList(t)
	f.view.SetScrollTop(60)

	require.NoError(t, f.view.UpdateElementHeight(4, ptr(40), ptr(5)))
	assert.Equal(t, 80, f.view.ScrollTop())
	assert.Equal(t, 40, f.node(4).height)

	require.NoError(t, f.view.UpdateElementHeight(4, ptr(20), nil))
	assert.Equal(t, 80, f.view.ScrollTop())
	requireExactRows(t, f)
}

func TestUpdateElementHeightNeedsDynamicSupport(t *testing.T) {
	f := fixedList(t)
	require.NoError(t, f.view.UpdateElementHeight(2, nil, nil))
	assert.Equal(t, 20, f.view.ElementHeight(2))
	require.NoError(t, f.view.UpdateElementHeight(99, ptr(3), nil))
}

func dynamicElements(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("~%d|x", i)
	}
	return out
}

func TestReflowMeasuresRenderedRows(t *testing.T) {
	f := newFixture(t, 5, textDelegate{height: 1}, Options[string]{SupportDynamicHeights: true})
	f.view.Layout(5, 10)
	assert.Equal(t, 10, f.view.RenderWidth())

	f.view.Splice(0, 0, dynamicElements(10)...)
	assert.Equal(t, Range{Start: 0, End: 3}, f.view.RenderRange())
	for i := 0; i < 3; i++ {
		assert.Equal(t, 2, f.view.ElementHeight(i))
		assert.Equal(t, 2*i, f.node(i).top)
		assert.Equal(t, 2, f.node(i).height)
	}
	assert.Equal(t, 2, f.view.ElementHeight(4), "rows rendered by the first pass stay measured")
	assert.Equal(t, 1, f.view.ElementHeight(5))
	assert.Equal(t, 15, f.view.ContentHeight())
	assert.Nil(t, f.node(3))
	requireExactRows(t, f)

	f.frame()
	f.view.SetScrollTop(4)
	assert.Equal(t, 4, f.view.ScrollTop())
	assert.Equal(t, Range{Start: 2, End: 5}, f.view.RenderRange())
	assert.Equal(t, 8, f.node(4).top)
	assert.Equal(t, 1, f.view.ElementHeight(5))
	assert.Equal(t, 15, f.view.ContentHeight())
	requireExactRows(t, f)

	f.view.SetScrollTop(10)
	assert.Equal(t, 10, f.view.ScrollTop())
	assert.Equal(t, 2, f.view.ElementHeight(5))
	assert.Equal(t, 20, f.view.ContentHeight())
	requireExactRows(t, f)
}

func TestRerenderMeasuresAttachedRowsInPlace(t *testing.T) {
	f := newFixture(t, 5, textDelegate{height: 1}, Options[string]{SupportDynamicHeights: true})
	f.view.Layout(5, 10)
	f.view.Splice(0, 0, dynamicElements(3)...)
	rendered := len(f.renderer.rendered)

	require.NoError(t, f.view.Rerender())
	assert.Equal(t, rendered, len(f.renderer.rendered), "attached rows are measured in place")
	assert.Equal(t, 2, f.view.ElementHeight(0))
}

func TestUpdateElementHeightMeasures(t *testing.T) {
	f := newFixture(t, 5, textDelegate{height: 1}, Options[string]{SupportDynamicHeights: true})
	f.view.Layout(5, 10)
	f.view.Splice(0, 0, "~a", "~b|c|d", "~e")
	require.Equal(t, 3, f.view.ElementHeight(1))

	f.node(1).naturalHeight = 1
	require.NoError(t, f.view.UpdateElementHeight(1, nil, nil))
	assert.Equal(t, 1, f.view.ElementHeight(1))
	assert.Equal(t, 3, f.view.ContentHeight())
}

func TestMeasuredZeroHeightIsLogged(t *testing.T) {
	var buf bytes.Buffer
	f := newFixture(t, 5, textDelegate{height: 1}, Options[string]{
		SupportDynamicHeights: true,
		Logger:                slog.New(slog.NewTextHandler(&buf, nil)),
	})
	f.view.Layout(5, 10)
	f.view.Splice(0, 0, "~a", "~b|c|d", "~e")

	f.node(0).naturalHeight = 0
	require.NoError(t, f.view.UpdateElementHeight(0, nil, nil))
	assert.Contains(t, buf.String(), `level=WARN msg="measured a row of height 0" index=0`)
	assert.Equal(t, 0, f.view.ElementHeight(0))
	requireExactRows(t, f)
}

func TestProbeUnrenderedRow(t *testing.T) {
	f := newFixture(t, 5, textDelegate{height: 1}, Options[string]{SupportDynamicHeights: true})
	f.view.Layout(5, 10)
	f.view.Splice(0, 0, dynamicElements(10)...)
	created := f.container.created

	require.NoError(t, f.view.UpdateElementHeight(8, nil, nil))
	assert.Equal(t, 2, f.view.ElementHeight(8))
	assert.Equal(t, created, f.container.created, "probing reuses pooled rows")
	requireExactRows(t, f)
}

type growingDelegate struct {
	textDelegate
	next *int
}

func (d growingDelegate) DynamicHeight(string) (int, bool) {
	*d.next++
	return *d.next, true
}

func TestReflowDivergence(t *testing.T) {
	next := 0
	f := newFixture(t, 5, growingDelegate{textDelegate: textDelegate{height: 1}, next: &next}, Options[string]{
		SupportDynamicHeights: true,
		MaxReflowPasses:       3,
	})
	f.view.Layout(5, 10)
	f.view.Splice(0, 0, "a", "b")

	err := f.view.Rerender()
	require.ErrorIs(t, err, ErrReflowDiverged)
	assert.Contains(t, err.Error(), "3 passes")
}
