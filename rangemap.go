package listview

// sizeGroup is a run of consecutive items sharing one size.
type sizeGroup struct {
	rng  Range
	size int
}

// RangeMap maps item indices to pixel positions and back. Sizes are stored
// as runs of equal values, so a uniform list costs constant memory.
type RangeMap struct {
	groups     []sizeGroup
	size       int
	paddingTop int
}

// NewRangeMap returns an empty map with the given leading padding.
func NewRangeMap(paddingTop int) *RangeMap {
	return &RangeMap{paddingTop: paddingTop, size: paddingTop}
}

// PaddingTop returns the leading padding.
func (m *RangeMap) PaddingTop() int {
	return m.paddingTop
}

// SetPaddingTop changes the leading padding, shifting every position by the delta.
func (m *RangeMap) SetPaddingTop(paddingTop int) {
	m.size += paddingTop - m.paddingTop
	m.paddingTop = paddingTop
}

// Splice replaces deleteCount entries starting at index with sizes.
func (m *RangeMap) Splice(index, deleteCount int, sizes ...int) {
	diff := len(sizes) - deleteCount
	before := groupIntersect(Range{Start: 0, End: index}, m.groups)
	after := groupIntersect(Range{Start: index + deleteCount, End: maxIndex}, m.groups)
	for i := range after {
		after[i].rng = after[i].rng.Shift(diff)
	}

	groups := make([]sizeGroup, 0, len(before)+len(sizes)+len(after))
	groups = append(groups, before...)
	for i, size := range sizes {
		groups = append(groups, sizeGroup{rng: Range{Start: index + i, End: index + i + 1}, size: size})
	}
	groups = append(groups, after...)
	m.groups = consolidate(groups)

	m.size = m.paddingTop
	for _, g := range m.groups {
		m.size += g.size * g.rng.Len()
	}
}

// Count returns the number of items.
func (m *RangeMap) Count() int {
	if len(m.groups) == 0 {
		return 0
	}
	return m.groups[len(m.groups)-1].rng.End
}

// Size returns the total size including the leading padding.
func (m *RangeMap) Size() int {
	return m.size
}

// IndexAt returns the index of the item covering position. Positions above
// the padding map to 0; positions at or past the end map to Count.
func (m *RangeMap) IndexAt(position int) int {
	if position < m.paddingTop {
		return 0
	}

	index := 0
	size := m.paddingTop
	for _, g := range m.groups {
		count := g.rng.Len()
		newSize := size + count*g.size
		if position < newSize {
			return index + (position-size)/g.size
		}
		index += count
		size = newSize
	}
	return index
}

// IndexAfter returns the first index whose item starts after position.
func (m *RangeMap) IndexAfter(position int) int {
	return min(m.IndexAt(position)+1, m.Count())
}

// PositionAt returns the start position of the item at index, or -1 when the
// index is out of range.
func (m *RangeMap) PositionAt(index int) int {
	if index < 0 {
		return -1
	}

	position := 0
	count := 0
	for _, g := range m.groups {
		groupCount := g.rng.Len()
		newCount := count + groupCount
		if index < newCount {
			return m.paddingTop + position + (index-count)*g.size
		}
		position += groupCount * g.size
		count = newCount
	}
	return -1
}

const maxIndex = int(^uint(0) >> 1)

// groupIntersect returns the parts of groups that overlap r.
func groupIntersect(r Range, groups []sizeGroup) []sizeGroup {
	var result []sizeGroup
	for _, g := range groups {
		if r.Start >= g.rng.End {
			continue
		}
		if r.End < g.rng.Start {
			break
		}
		intersection := Intersect(r, g.rng)
		if intersection.IsEmpty() {
			continue
		}
		result = append(result, sizeGroup{rng: intersection, size: g.size})
	}
	return result
}

// consolidate merges adjacent runs of equal size.
func consolidate(groups []sizeGroup) []sizeGroup {
	var result []sizeGroup
	for _, g := range groups {
		if n := len(result); n > 0 && result[n-1].size == g.size {
			result[n-1].rng.End = g.rng.End
			continue
		}
		result = append(result, g)
	}
	return result
}
