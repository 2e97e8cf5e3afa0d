package listview

type selectionState struct {
	active   bool
	moving   bool
	hasRange bool
	rng      Range
}

// bounds returns the inclusive index bounds of the selection.
func (s *selectionState) bounds() (Range, bool) {
	return s.rng, s.hasRange
}

func (s *selectionState) dispose() {
	*s = selectionState{}
}

// SelectionStart begins a pointer text selection. It is a no-op unless the
// list was created with UserSelection.
func (v *ListView[T]) SelectionStart() {
	if !v.opts.UserSelection {
		return
	}
	v.setSelectionBounds(Range{}, false)
	v.sel.active = true
	v.sel.moving = true
}

// SelectionChange reports the rows holding the selection's anchor and focus.
// A collapsed selection clears the bounds once the pointer is released.
func (v *ListView[T]) SelectionChange(anchor, focus int, collapsed bool) {
	if !v.sel.active {
		return
	}
	if collapsed {
		if !v.sel.moving {
			v.endSelection()
		}
		return
	}
	if focus < anchor {
		anchor, focus = focus, anchor
	}
	v.setSelectionBounds(Range{Start: anchor, End: focus}, true)
}

// SelectionMove reports the pointer y while selecting; near an edge the list
// scrolls so the selection can extend past the viewport.
func (v *ListView[T]) SelectionMove(y int, collapsed bool) {
	if !v.sel.active || !v.sel.moving || collapsed {
		return
	}
	v.setupDragScroll(y)
}

// SelectionEnd reports the pointer release. A collapsed selection ends it.
func (v *ListView[T]) SelectionEnd(collapsed bool) {
	if !v.sel.active {
		return
	}
	v.sel.moving = false
	v.dnd.teardownAnimation()
	if collapsed {
		v.endSelection()
	}
}

func (v *ListView[T]) endSelection() {
	v.setSelectionBounds(Range{}, false)
	v.sel.active = false
}

// setSelectionBounds changes the selection and attaches or detaches rows for
// the widened render range.
func (v *ListView[T]) setSelectionBounds(r Range, ok bool) {
	if v.sel.hasRange == ok && v.sel.rng == r {
		return
	}
	previous := v.renderRange(v.lastRenderTop, v.lastRenderHeight)
	v.sel.rng, v.sel.hasRange = r, ok
	v.render(previous, v.lastRenderTop, v.lastRenderHeight, -1, -1, false)
}
