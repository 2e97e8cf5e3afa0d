package listview

import "fmt"

// UpdateElementHeight resizes the element at index. A nil size measures the
// element, which requires dynamic height support. When anchorIndex is set and
// lies below index inside the rendered range, the scroll offset follows the
// resize so the anchor keeps its place on screen.
func (v *ListView[T]) UpdateElementHeight(index int, size *int, anchorIndex *int) error {
	if v.disposed {
		return ErrDisposed
	}
	if index < 0 || index >= len(v.items) {
		return nil
	}

	it := v.items[index]
	originalSize := it.size
	var newSize int
	if size == nil {
		if !v.opts.SupportDynamicHeights {
			v.logger.Warn("dynamic heights support is not enabled", "index", index)
			return nil
		}
		it.measured = false
		newSize = originalSize + v.probeDynamicHeight(index)
	} else {
		newSize = *size
	}
	if originalSize == newSize {
		return nil
	}

	lastRenderRange := v.renderRange(v.lastRenderTop, v.lastRenderHeight)
	heightDiff := 0
	switch {
	case index < lastRenderRange.Start:
		heightDiff = newSize - originalSize
	case anchorIndex != nil && *anchorIndex > index && *anchorIndex < lastRenderRange.End:
		heightDiff = newSize - originalSize
	}

	v.rangeMap.Splice(index, 1, newSize)
	it.size = newSize

	v.render(lastRenderRange, max(0, v.lastRenderTop+heightDiff), v.RenderHeight(), -1, -1, true)
	v.SetScrollTop(v.lastRenderTop)
	v.eventuallyUpdateScrollDimensions()

	if v.opts.SupportDynamicHeights {
		return v.reflow(v.lastRenderTop, v.RenderHeight(), false)
	}
	v.onDidChangeContentHeight.Fire(v.ContentHeight())
	return nil
}

// Rerender measures every rendered dynamic-height element again.
func (v *ListView[T]) Rerender() error {
	if v.disposed {
		return ErrDisposed
	}
	if !v.opts.SupportDynamicHeights {
		return nil
	}
	for _, it := range v.items {
		it.measured = false
	}
	return v.reflow(v.ScrollTop(), v.RenderHeight(), false)
}

func (v *ListView[T]) reflowLogged(top, height int, inSmooth bool) {
	// reflow logs its own failures.
	_ = v.reflow(top, height, inSmooth)
}

// reflow measures the rows in the range at (top, height) until no height
// changes, then reconciles rows and restores the scroll offset of an anchor
// element. Measuring an element only changes it once per render width, so
// the loop settles unless a delegate keeps reporting new heights; after
// MaxReflowPasses passes it stops with ErrReflowDiverged.
func (v *ListView[T]) reflow(top, height int, inSmooth bool) error {
	rendered := v.renderRange(v.lastRenderTop, v.lastRenderHeight)
	previous := v.renderRange(top, height)

	anchor := -1
	anchorDelta := 0
	if top == v.ElementTop(previous.Start) {
		anchor = previous.Start
	} else if previous.Len() > 1 {
		anchor = previous.Start + 1
		anchorDelta = v.ElementTop(anchor) - top
	}

	var err error
	heightDiff := 0
	var renderRange Range
	for passes := 1; ; passes++ {
		renderRange = v.renderRange(top, height)
		changed := false
		for i := renderRange.Start; i < renderRange.End; i++ {
			diff := v.probeDynamicHeight(i)
			if diff != 0 {
				v.rangeMap.Splice(i, 1, v.items[i].size)
				changed = true
			}
			heightDiff += diff
		}
		if !changed {
			break
		}
		if passes >= v.opts.MaxReflowPasses {
			err = fmt.Errorf("%w after %d passes", ErrReflowDiverged, passes)
			v.logger.Error("dynamic heights did not converge", "passes", passes, "scrollTop", top)
			renderRange = v.renderRange(top, height)
			break
		}
	}

	if heightDiff != 0 {
		v.eventuallyUpdateScrollDimensions()
	}

	v.cache.Transact(func() {
		for _, r := range RelativeComplement(rendered, renderRange) {
			for i := r.Start; i < r.End; i++ {
				if _, ok := v.items[i].slot.Attached(); ok {
					v.removeItem(i)
				}
			}
		}
		for _, r := range reverseRanges(RelativeComplement(renderRange, rendered)) {
			for i := r.End - 1; i >= r.Start; i-- {
				v.insertItem(i, nil)
			}
		}
	})
	for i := renderRange.Start; i < renderRange.End; i++ {
		v.updateItem(v.items[i], i)
	}
	v.lastRenderTop = top
	v.lastRenderHeight = height

	if anchor >= 0 && anchor < len(v.items) {
		deltaScrollTop := v.scrollable.FuturePosition().ScrollTop - top
		// The scroll caused by a diverged pass renders without measuring again.
		v.suppressReflow = err != nil
		v.setScrollTop(v.ElementTop(anchor)-anchorDelta+deltaScrollTop, inSmooth)
		v.suppressReflow = false
	}

	v.onDidChangeContentHeight.Fire(v.ContentHeight())
	return err
}

// probeDynamicHeight measures the element at index and returns how much its
// size changed.
func (v *ListView[T]) probeDynamicHeight(index int) int {
	it := v.items[index]

	if g, ok := v.delegate.(DynamicHeightGetter[T]); ok {
		if newSize, ok := g.DynamicHeight(it.element); ok {
			size := it.size
			it.size = newSize
			it.measured, it.measuredWidth = true, v.renderWidth
			return newSize - size
		}
	}

	if !it.hasDynamicHeight || (it.measured && it.measuredWidth == v.renderWidth) {
		return 0
	}
	if d, ok := v.delegate.(DynamicHeighter[T]); ok && !d.HasDynamicHeight(it.element) {
		return 0
	}

	size := it.size

	if row, ok := it.slot.Attached(); ok {
		row.Node.SetHeight(-1)
		_, it.size = row.Node.Measure()
		if it.size == 0 {
			v.logger.Warn("measured a row of height 0", "index", index, "template", it.templateID)
		}
		it.measured, it.measuredWidth = true, v.renderWidth
		return it.size - size
	}

	row, _ := v.cache.Alloc(it.templateID)
	row.Node.SetHeight(-1)
	v.container.Insert(row.Node, nil)

	renderer := v.cache.renderer(it.templateID)
	renderer.RenderElement(it.element, index, row.Template, RenderDetails{Height: -1})
	_, it.size = row.Node.Measure()
	if d, ok := renderer.(ElementDisposer[T]); ok {
		d.DisposeElement(it.element, index, row.Template, RenderDetails{Height: -1})
	}
	if s, ok := v.delegate.(DynamicHeightSetter[T]); ok {
		s.SetDynamicHeight(it.element, it.size)
	}
	it.measured, it.measuredWidth = true, v.renderWidth
	v.container.Remove(row.Node)
	v.cache.Release(row)
	return it.size - size
}
