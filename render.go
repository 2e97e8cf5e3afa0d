package listview

import "strconv"

const (
	// ClassDropTarget decorates rows and containers under a drop.
	ClassDropTarget       = "drop-target"
	ClassDropTargetBefore = "drop-target-before"
	ClassDropTargetAfter  = "drop-target-after"
	// ClassDragging decorates the container while one of its rows is dragged.
	ClassDragging = "dragging"
)

func (v *ListView[T]) visibleRange(top, height int) Range {
	if height <= 0 {
		start := min(v.rangeMap.IndexAt(top), len(v.items))
		return Range{Start: start, End: start}
	}
	return Range{
		Start: v.rangeMap.IndexAt(top),
		End:   v.rangeMap.IndexAfter(top + height - 1),
	}
}

// renderRange is the visible range widened to the current text selection.
func (v *ListView[T]) renderRange(top, height int) Range {
	r := v.visibleRange(top, height)
	if bounds, ok := v.sel.bounds(); ok {
		count := v.rangeMap.Count()
		r.Start = min(r.Start, bounds.Start, count)
		r.End = min(max(r.End, bounds.End+1), count)
	}
	return r
}

// render reconciles rows from previous to the range at (top, height). A
// negative left or scrollWidth leaves the horizontal layout alone.
func (v *ListView[T]) render(previous Range, top, height, left, scrollWidth int, updateItems bool) {
	renderRange := v.renderRange(top, height)
	toInsert := reverseRanges(RelativeComplement(renderRange, previous))
	toRemove := RelativeComplement(previous, renderRange)

	if updateItems {
		toUpdate := Intersect(previous, renderRange)
		for i := toUpdate.Start; i < toUpdate.End; i++ {
			v.updateItem(v.items[i], i)
		}
	}

	v.cache.Transact(func() {
		for _, r := range toRemove {
			for i := r.Start; i < r.End; i++ {
				v.removeItem(i)
			}
		}
		for _, r := range toInsert {
			for i := r.End - 1; i >= r.Start; i-- {
				v.insertItem(i, nil)
			}
		}
	})

	if left >= 0 {
		v.container.SetLeft(-left)
	}
	v.container.SetTop(-top)
	if v.horizontal && scrollWidth >= 0 {
		v.container.SetWidth(max(scrollWidth, v.renderWidth))
	}

	v.lastRenderTop = top
	v.lastRenderHeight = height
}

// insertItem attaches a row to the item at index, reusing row when given.
func (v *ListView[T]) insertItem(index int, row *Row) {
	it := v.items[index]
	current, attached := it.slot.Attached()
	if !attached {
		if row != nil {
			it.stale = true
		} else {
			var reusing bool
			row, reusing = v.cache.Alloc(it.templateID)
			it.stale = it.stale || reusing
		}
		it.slot.attach(row)
		current = row
	}
	node := current.Node

	v.applyAccessibility(it, node)

	if it.stale || !v.container.Contains(node) {
		var before Node
		if index+1 < len(v.items) {
			if next, ok := v.items[index+1].slot.Attached(); ok {
				before = next.Node
			}
		}
		v.container.Insert(node, before)
		it.stale = false
	}

	v.updateItem(it, index)

	renderer := v.cache.renderer(it.templateID)
	renderer.RenderElement(it.element, index, current.Template, RenderDetails{Height: it.size})

	it.dragURI = ""
	if v.dnd.policy != nil {
		if uri, ok := v.dnd.policy.DragURI(it.element); ok && uri != "" {
			it.dragURI = uri
		}
	}
	node.SetDraggable(it.dragURI != "")

	if v.horizontal {
		v.measureItemWidth(it)
		v.eventuallyUpdateScrollWidth()
	}
}

func (v *ListView[T]) applyAccessibility(it *item[T], node Node) {
	role := "listitem"
	if p, ok := v.opts.AccessibilityProvider.(RoleProvider[T]); ok {
		if r := p.Role(it.element); r != "" {
			role = r
		}
	}
	node.SetAttribute("role", role)

	p, ok := v.opts.AccessibilityProvider.(CheckedProvider[T])
	if !ok {
		return
	}
	state, value := p.Checked(it.element)
	if value != nil {
		state = value.Value()
		if it.checkedDisposable != nil {
			it.checkedDisposable.Dispose()
		}
		it.checkedDisposable = value.OnDidChange(func(state CheckedState) {
			node.SetAttribute("aria-checked", state.String())
		})
	}
	if state == CheckedUnset {
		// A recycled row may still carry the state of its last element.
		node.RemoveAttribute("aria-checked")
		return
	}
	node.SetAttribute("aria-checked", state.String())
}

// updateItem refreshes the position and attributes of an attached row.
func (v *ListView[T]) updateItem(it *item[T], index int) {
	row, ok := it.slot.Attached()
	if !ok {
		return
	}
	node := row.Node
	node.SetTop(v.ElementTop(index))
	if !v.opts.DisableRowHeight {
		node.SetHeight(it.size)
	}
	if v.opts.RowLineHeight {
		node.SetLineHeight(it.size)
	}

	last := "false"
	if index == len(v.items)-1 {
		last = "true"
	}
	parity := "odd"
	if index%2 == 0 {
		parity = "even"
	}
	node.SetAttribute("data-index", strconv.Itoa(index))
	node.SetAttribute("data-last-element", last)
	node.SetAttribute("data-parity", parity)
	node.SetAttribute("aria-setsize", strconv.Itoa(v.setSize(it, index)))
	node.SetAttribute("aria-posinset", strconv.Itoa(v.posInSet(it, index)))
	node.SetAttribute("id", v.opts.ID+"_"+strconv.Itoa(index))
	node.ToggleClass(ClassDropTarget, it.dropTarget)
}

func (v *ListView[T]) setSize(it *item[T], index int) int {
	if p, ok := v.opts.AccessibilityProvider.(SetSizeProvider[T]); ok {
		return p.SetSize(it.element, index, len(v.items))
	}
	return len(v.items)
}

func (v *ListView[T]) posInSet(it *item[T], index int) int {
	if p, ok := v.opts.AccessibilityProvider.(PosInSetProvider[T]); ok {
		return p.PosInSet(it.element, index)
	}
	return index + 1
}

// removeItem returns the row of the item at index to the cache.
func (v *ListView[T]) removeItem(index int) {
	it := v.items[index]
	it.disposeListeners()
	if row, ok := it.slot.Attached(); ok {
		v.disposeElement(it, index, row)
		v.cache.Release(row)
		it.slot.detach()
	}
	if v.horizontal {
		v.eventuallyUpdateScrollWidth()
	}
}

func (v *ListView[T]) disposeElement(it *item[T], index int, row *Row) {
	renderer, ok := v.renderers[it.templateID]
	if !ok {
		return
	}
	if d, ok := renderer.(ElementDisposer[T]); ok {
		d.DisposeElement(it.element, index, row.Template, RenderDetails{Height: it.size})
	}
}
