package listview

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

type item[T any] struct {
	id         string
	element    T
	templateID string
	size       int

	hasDynamicHeight bool
	measuredWidth    int
	measured         bool

	width      int
	widthKnown bool

	slot    rowSlot
	stale   bool
	dragURI string

	dropTarget        bool
	checkedDisposable Disposable
}

func (it *item[T]) disposeListeners() {
	it.dragURI = ""
	if it.checkedDisposable != nil {
		it.checkedDisposable.Dispose()
		it.checkedDisposable = nil
	}
}

// ListView renders a virtual slice of a large list into a host container.
// Only the items intersecting the viewport own a row. All methods must be
// called from the goroutine that drives the scheduler.
type ListView[T any] struct {
	opts      Options[T]
	logger    *slog.Logger
	scheduler Scheduler

	container Container
	delegate  Delegate[T]
	renderers map[string]Renderer[T]
	cache     *RowCache[T]

	items    []*item[T]
	itemID   int
	rangeMap *RangeMap

	scrollable       *Scrollable
	lastRenderTop    int
	lastRenderHeight int
	renderWidth      int
	scrollHeight     int
	scrollWidth      int
	paddingBottom    int
	horizontal       bool

	splicing        bool
	suppressReflow  bool
	dimensionUpdate Disposable
	widthDelayer    *Delayer

	onDidChangeContentHeight Latch[int]
	onDidChangeContentWidth  Latch[int]

	dnd dragState[T]
	sel selectionState

	disposables DisposableStore
	disposed    bool
}

// New creates a list rendering into container. Renderers are registered by
// their template id.
func New[T any](container Container, delegate Delegate[T], renderers []Renderer[T], opts Options[T]) (*ListView[T], error) {
	if container == nil {
		return nil, ErrNoContainer
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	registry := make(map[string]Renderer[T], len(renderers))
	for _, r := range renderers {
		id := r.TemplateID()
		if _, ok := registry[id]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRenderer, id)
		}
		registry[id] = r
	}

	v := &ListView[T]{
		opts:          opts,
		logger:        opts.Logger,
		scheduler:     opts.Scheduler,
		container:     container,
		delegate:      delegate,
		renderers:     registry,
		cache:         NewRowCache(container, registry),
		rangeMap:      NewRangeMap(opts.PaddingTop),
		paddingBottom: opts.PaddingBottom,
		horizontal:    opts.HorizontalScrolling,
		widthDelayer:  NewDelayer(opts.Scheduler, widthMeasureDelay),
	}
	v.dnd.session = opts.DragSession
	v.dnd.policy = opts.DragAndDrop

	var smooth time.Duration
	if opts.SmoothScrolling {
		smooth = opts.SmoothScrollDuration
	}
	v.scrollable = NewScrollable(opts.Scheduler, smooth)
	v.disposables.Add(v.scrollable.OnScroll(v.onScroll))
	v.disposables.Add(v.scrollable)
	v.disposables.Add(v.widthDelayer)
	v.disposables.Add(DisposableFunc(v.cache.Dispose))

	container.ToggleClass("list", true)
	container.SetWidth(-1)
	v.Layout(-1, -1)
	return v, nil
}

// Scheduler returns the scheduler running the list's deferred work.
func (v *ListView[T]) Scheduler() Scheduler {
	return v.scheduler
}

// OnDidChangeContentHeight subscribes to content height changes.
func (v *ListView[T]) OnDidChangeContentHeight(fn func(height int)) Disposable {
	return v.onDidChangeContentHeight.Subscribe(fn)
}

// OnDidChangeContentWidth subscribes to content width changes.
func (v *ListView[T]) OnDidChangeContentWidth(fn func(width int)) Disposable {
	return v.onDidChangeContentWidth.Subscribe(fn)
}

// OnScroll subscribes to scroll events.
func (v *ListView[T]) OnScroll(fn func(ScrollEvent)) Disposable {
	return v.scrollable.OnScroll(fn)
}

// Length returns the number of elements.
func (v *ListView[T]) Length() int {
	return len(v.items)
}

// Element returns the element at index.
func (v *ListView[T]) Element(index int) T {
	return v.items[index].element
}

// IndexFunc returns the index of the first element satisfying pred, or -1.
func (v *ListView[T]) IndexFunc(pred func(T) bool) int {
	for i, it := range v.items {
		if pred(it.element) {
			return i
		}
	}
	return -1
}

// IndexOf returns the index of element in v, or -1.
func IndexOf[T comparable](v *ListView[T], element T) int {
	return v.IndexFunc(func(e T) bool { return e == element })
}

// Node returns the node of the row rendering index, or nil.
func (v *ListView[T]) Node(index int) Node {
	if index < 0 || index >= len(v.items) {
		return nil
	}
	if row, ok := v.items[index].slot.Attached(); ok {
		return row.Node
	}
	return nil
}

// ElementHeight returns the size of the element at index.
func (v *ListView[T]) ElementHeight(index int) int {
	return v.items[index].size
}

// ElementTop returns the position of the element at index.
func (v *ListView[T]) ElementTop(index int) int {
	return v.rangeMap.PositionAt(index)
}

// IndexAt returns the index at position.
func (v *ListView[T]) IndexAt(position int) int {
	return v.rangeMap.IndexAt(position)
}

// IndexAfter returns the first index starting after position.
func (v *ListView[T]) IndexAfter(position int) int {
	return v.rangeMap.IndexAfter(position)
}

// ElementAtPoint maps a viewport row y to an element index. It reports
// false when y is below the last element.
func (v *ListView[T]) ElementAtPoint(y int) (int, bool) {
	index := v.rangeMap.IndexAt(v.ScrollTop() + y)
	if index < 0 || index >= len(v.items) {
		return -1, false
	}
	return index, true
}

// RenderRange returns the range of items currently owning a row.
func (v *ListView[T]) RenderRange() Range {
	return v.renderRange(v.lastRenderTop, v.lastRenderHeight)
}

// FirstVisibleIndex returns the first index intersecting the viewport.
func (v *ListView[T]) FirstVisibleIndex() int {
	return v.visibleRange(v.lastRenderTop, v.lastRenderHeight).Start
}

// FirstMostlyVisibleIndex returns the first index of which at least half is visible.
func (v *ListView[T]) FirstMostlyVisibleIndex() int {
	first := v.FirstVisibleIndex()
	top := v.rangeMap.PositionAt(first)
	next := v.rangeMap.PositionAt(first + 1)
	if next != -1 {
		midpoint := (next-top)/2 + top
		if midpoint < v.ScrollTop() {
			return first + 1
		}
	}
	return first
}

// LastVisibleIndex returns the last index owning a row.
func (v *ListView[T]) LastVisibleIndex() int {
	return v.renderRange(v.lastRenderTop, v.lastRenderHeight).End - 1
}

// ContentHeight returns the total height of the elements, padding included.
func (v *ListView[T]) ContentHeight() int {
	return v.rangeMap.Size()
}

// ContentWidth returns the widest measured element, or 0.
func (v *ListView[T]) ContentWidth() int {
	return v.scrollWidth
}

// RenderHeight returns the viewport height.
func (v *ListView[T]) RenderHeight() int {
	return v.scrollable.Dimensions().Height
}

// RenderWidth returns the width rows are measured at.
func (v *ListView[T]) RenderWidth() int {
	return v.renderWidth
}

// ScrollHeight returns the scrollable height.
func (v *ListView[T]) ScrollHeight() int {
	extra := 0
	if v.horizontal {
		extra = horizontalScrollbarSize
	}
	return v.scrollHeight + extra + v.paddingBottom
}

// ScrollTop returns the vertical scroll offset.
func (v *ListView[T]) ScrollTop() int {
	return v.scrollable.Position().ScrollTop
}

// SetScrollTop scrolls to top without animation.
func (v *ListView[T]) SetScrollTop(top int) {
	v.setScrollTop(top, false)
}

// ScrollLeft returns the horizontal scroll offset.
func (v *ListView[T]) ScrollLeft() int {
	return v.scrollable.Position().ScrollLeft
}

// SetScrollLeft scrolls horizontally.
func (v *ListView[T]) SetScrollLeft(left int) {
	v.flushDimensions()
	p := v.scrollable.Position()
	p.ScrollLeft = left
	v.scrollable.SetPositionNow(p)
}

// ScrollBy scrolls by delta, animated when smooth scrolling is on.
func (v *ListView[T]) ScrollBy(delta int) {
	v.flushDimensions()
	p := v.scrollable.FuturePosition()
	p.ScrollTop += delta
	if v.opts.SmoothScrolling {
		v.scrollable.SetPositionSmooth(p, true)
		return
	}
	v.scrollable.SetPositionNow(p)
}

// Reveal scrolls the least distance that brings index fully into view.
func (v *ListView[T]) Reveal(index int) {
	if index < 0 || index >= len(v.items) {
		return
	}
	top := v.ElementTop(index)
	bottom := top + v.items[index].size
	scrollTop := v.ScrollTop()
	height := v.RenderHeight()
	switch {
	case top < scrollTop:
		v.SetScrollTop(top)
	case bottom > scrollTop+height:
		v.SetScrollTop(bottom - height)
	}
}

func (v *ListView[T]) setScrollTop(top int, reuseAnimation bool) {
	v.flushDimensions()
	p := v.scrollable.Position()
	p.ScrollTop = top
	if reuseAnimation {
		v.scrollable.SetPositionSmooth(p, true)
		return
	}
	v.scrollable.SetPositionNow(p)
}

// flushDimensions applies a pending scroll height update now.
func (v *ListView[T]) flushDimensions() {
	if v.dimensionUpdate == nil {
		return
	}
	v.dimensionUpdate.Dispose()
	v.dimensionUpdate = nil
	d := v.scrollable.Dimensions()
	d.ScrollHeight = v.ScrollHeight()
	v.scrollable.SetDimensions(d)
}

// Layout sizes the viewport. A negative height reads the container size; a
// negative width leaves the render width unchanged.
func (v *ListView[T]) Layout(height, width int) {
	if v.disposed {
		return
	}
	containerWidth, containerHeight := v.container.Size()
	if height < 0 {
		height = containerHeight
	}

	d := v.scrollable.Dimensions()
	d.Height = height
	if v.dimensionUpdate != nil {
		v.dimensionUpdate.Dispose()
		v.dimensionUpdate = nil
		d.ScrollHeight = v.ScrollHeight()
	}
	v.scrollable.SetDimensions(d)

	if width >= 0 {
		v.renderWidth = width
		if v.opts.SupportDynamicHeights {
			v.reflowLogged(v.ScrollTop(), v.RenderHeight(), false)
		}
	}

	if v.horizontal {
		if width < 0 {
			width = containerWidth
		}
		d := v.scrollable.Dimensions()
		d.Width = width
		v.scrollable.SetDimensions(d)
	}
}

// UpdateOptions changes the options of a live list.
func (v *ListView[T]) UpdateOptions(u OptionsUpdate) error {
	if v.disposed {
		return ErrDisposed
	}
	if u.HorizontalScrolling != nil && *u.HorizontalScrolling && v.opts.SupportDynamicHeights {
		return ErrDynamicHeightsWithHorizontalScrolling
	}
	if u.PaddingBottom != nil {
		v.paddingBottom = *u.PaddingBottom
		d := v.scrollable.Dimensions()
		d.ScrollHeight = v.ScrollHeight()
		v.scrollable.SetDimensions(d)
	}
	if u.SmoothScrollDuration != nil {
		v.opts.SmoothScrollDuration = *u.SmoothScrollDuration
	}
	if u.SmoothScrolling != nil {
		v.opts.SmoothScrolling = *u.SmoothScrolling
	}
	if u.SmoothScrolling != nil || u.SmoothScrollDuration != nil {
		if v.opts.SmoothScrolling {
			v.scrollable.SetSmoothScrollDuration(v.opts.SmoothScrollDuration)
		} else {
			v.scrollable.SetSmoothScrollDuration(0)
		}
	}
	if u.HorizontalScrolling != nil {
		v.horizontal = *u.HorizontalScrolling
		v.eventuallyUpdateScrollWidth()
	}
	if u.PaddingTop != nil && *u.PaddingTop != v.rangeMap.PaddingTop() {
		previous := v.renderRange(v.lastRenderTop, v.lastRenderHeight)
		offset := *u.PaddingTop - v.rangeMap.PaddingTop()
		v.rangeMap.SetPaddingTop(*u.PaddingTop)

		v.render(previous, max(0, v.lastRenderTop+offset), v.RenderHeight(), -1, -1, true)
		v.SetScrollTop(v.lastRenderTop)
		v.eventuallyUpdateScrollDimensions()
		if v.opts.SupportDynamicHeights {
			return v.reflow(v.lastRenderTop, v.RenderHeight(), false)
		}
	}
	return nil
}

// Splice removes deleteCount elements at start, inserts elements in their
// place and returns the removed elements in order. Calling Splice from a
// callback of a running Splice panics. A disposed list ignores splices.
func (v *ListView[T]) Splice(start, deleteCount int, elements ...T) []T {
	if v.disposed {
		return nil
	}
	if v.splicing {
		panic(ErrRecursiveSplice)
	}
	v.splicing = true
	defer func() {
		v.splicing = false
		v.onDidChangeContentHeight.Fire(v.ContentHeight())
	}()
	return v.splice(start, deleteCount, elements)
}

func (v *ListView[T]) splice(start, deleteCount int, elements []T) []T {
	start = min(max(start, 0), len(v.items))
	deleteCount = min(max(deleteCount, 0), len(v.items)-start)

	previousRenderRange := v.renderRange(v.lastRenderTop, v.lastRenderHeight)
	deleteRange := Range{Start: start, End: start + deleteCount}
	removeRange := Intersect(previousRenderRange, deleteRange)

	// Rows of deleted items are kept attached and handed to inserted items of
	// the same template, in visual order.
	stash := make(map[string][]*Row)
	for i := removeRange.End - 1; i >= removeRange.Start; i-- {
		it := v.items[i]
		it.disposeListeners()
		if row, ok := it.slot.Attached(); ok {
			v.disposeElement(it, i, row)
			stash[it.templateID] = append([]*Row{row}, stash[it.templateID]...)
			it.slot.detach()
		}
		it.stale = true
	}

	previousRestRange := Range{Start: start + deleteCount, End: len(v.items)}
	previousRenderedRestRange := Intersect(previousRestRange, previousRenderRange)
	previousUnrenderedRestRanges := RelativeComplement(previousRestRange, previousRenderRange)

	inserted := make([]*item[T], len(elements))
	sizes := make([]int, len(elements))
	for i, element := range elements {
		inserted[i] = v.newItem(element)
		sizes[i] = inserted[i].size
	}

	var deleted []*item[T]
	if start == 0 && deleteCount >= len(v.items) {
		v.rangeMap = NewRangeMap(v.rangeMap.PaddingTop())
		v.rangeMap.Splice(0, 0, sizes...)
		deleted = v.items
		v.items = inserted
	} else {
		v.rangeMap.Splice(start, deleteCount, sizes...)
		deleted = append([]*item[T](nil), v.items[start:start+deleteCount]...)
		rest := v.items[start+deleteCount:]
		items := make([]*item[T], 0, len(v.items)-deleteCount+len(inserted))
		items = append(items, v.items[:start]...)
		items = append(items, inserted...)
		items = append(items, rest...)
		v.items = items
	}

	delta := len(elements) - deleteCount
	renderRange := v.renderRange(v.lastRenderTop, v.lastRenderHeight)
	renderedRestRange := previousRenderedRestRange.Shift(delta)

	updateRange := Intersect(renderRange, renderedRestRange)
	for i := updateRange.Start; i < updateRange.End; i++ {
		v.updateItem(v.items[i], i)
	}

	for _, r := range RelativeComplement(renderedRestRange, renderRange) {
		for i := r.Start; i < r.End; i++ {
			v.removeItem(i)
		}
	}

	insertRanges := []Range{Intersect(renderRange, Range{Start: start, End: start + len(elements)})}
	for _, r := range previousUnrenderedRestRanges {
		insertRanges = append(insertRanges, Intersect(renderRange, r.Shift(delta)))
	}
	for _, r := range reverseRanges(insertRanges) {
		for i := r.End - 1; i >= r.Start; i-- {
			it := v.items[i]
			var row *Row
			if rows := stash[it.templateID]; len(rows) > 0 {
				row = rows[len(rows)-1]
				stash[it.templateID] = rows[:len(rows)-1]
			}
			v.insertItem(i, row)
		}
	}

	for _, rows := range stash {
		for _, row := range rows {
			v.cache.Release(row)
		}
	}

	v.eventuallyUpdateScrollDimensions()
	if v.opts.SupportDynamicHeights {
		v.reflowLogged(v.ScrollTop(), v.RenderHeight(), false)
	}

	out := make([]T, len(deleted))
	for i, it := range deleted {
		out[i] = it.element
	}
	return out
}

func (v *ListView[T]) newItem(element T) *item[T] {
	it := &item[T]{
		id:         strconv.Itoa(v.itemID),
		element:    element,
		templateID: v.delegate.TemplateID(element),
		size:       v.delegate.Height(element),
	}
	v.itemID++
	if d, ok := v.delegate.(DynamicHeighter[T]); ok {
		it.hasDynamicHeight = d.HasDynamicHeight(element)
	}
	return it
}

func (v *ListView[T]) eventuallyUpdateScrollDimensions() {
	v.scrollHeight = v.ContentHeight()
	v.container.SetHeight(v.scrollHeight)

	if v.dimensionUpdate == nil {
		v.dimensionUpdate = v.scheduler.NextFrame(func() {
			v.dimensionUpdate = nil
			d := v.scrollable.Dimensions()
			d.ScrollHeight = v.ScrollHeight()
			v.scrollable.SetDimensions(d)
			v.updateScrollWidth()
		})
	}
}

func (v *ListView[T]) eventuallyUpdateScrollWidth() {
	if !v.horizontal {
		v.widthDelayer.Cancel()
		return
	}
	v.widthDelayer.Trigger(v.updateScrollWidth)
}

func (v *ListView[T]) updateScrollWidth() {
	if !v.horizontal {
		return
	}
	width := 0
	for _, it := range v.items {
		if it.widthKnown {
			width = max(width, it.width)
		}
	}
	v.scrollWidth = width

	d := v.scrollable.Dimensions()
	d.ScrollWidth = 0
	if width > 0 {
		d.ScrollWidth = width + horizontalScrollbarSize
	}
	v.scrollable.SetDimensions(d)
	v.onDidChangeContentWidth.Fire(v.scrollWidth)
}

func (v *ListView[T]) measureItemWidth(it *item[T]) {
	row, ok := it.slot.Attached()
	if !ok {
		return
	}
	it.width, _ = row.Node.Measure()
	it.widthKnown = true
}

// onScroll renders the rows for a new scroll state.
func (v *ListView[T]) onScroll(e ScrollEvent) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("Got bad scroll event", "scrollTop", e.ScrollTop, "height", e.Height, "error", r)
			panic(r)
		}
	}()

	previous := v.renderRange(v.lastRenderTop, v.lastRenderHeight)
	v.render(previous, e.ScrollTop, e.Height, e.ScrollLeft, e.ScrollWidth, false)
	if v.opts.SupportDynamicHeights && !v.suppressReflow {
		v.reflowLogged(e.ScrollTop, e.Height, e.InSmoothScrolling)
	}
}

// Dispose releases every row and pending callback.
func (v *ListView[T]) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	for _, it := range v.items {
		it.disposeListeners()
		row, ok := it.slot.Attached()
		if !ok {
			continue
		}
		if renderer, ok := v.renderers[row.TemplateID]; ok {
			if d, ok := renderer.(ElementDisposer[T]); ok {
				d.DisposeElement(it.element, -1, row.Template, RenderDetails{})
			}
			renderer.DisposeTemplate(row.Template)
		}
		if v.container.Contains(row.Node) {
			v.container.Remove(row.Node)
		}
		it.slot.detach()
	}
	v.items = nil
	if v.dimensionUpdate != nil {
		v.dimensionUpdate.Dispose()
		v.dimensionUpdate = nil
	}
	v.dnd.dispose()
	v.sel.dispose()
	v.disposables.Dispose()
}
