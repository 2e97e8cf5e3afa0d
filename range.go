package listview

// Range is a half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// IsEmpty reports whether the range contains no index.
func (r Range) IsEmpty() bool {
	return r.End-r.Start <= 0
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return max(r.End-r.Start, 0)
}

// Contains reports whether index lies in the range.
func (r Range) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// Shift moves the range by delta.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Intersect returns the overlap of two ranges, or the empty range.
func Intersect(one, other Range) Range {
	if one.Start >= other.End || other.Start >= one.End {
		return Range{}
	}
	start := max(one.Start, other.Start)
	end := min(one.End, other.End)
	if end-start <= 0 {
		return Range{}
	}
	return Range{Start: start, End: end}
}

// RelativeComplement returns the parts of one that are not covered by other.
// The result has zero, one or two ranges, in ascending order.
func RelativeComplement(one, other Range) []Range {
	var result []Range
	first := Range{Start: one.Start, End: min(other.Start, one.End)}
	second := Range{Start: max(other.End, one.Start), End: one.End}
	if !first.IsEmpty() {
		result = append(result, first)
	}
	if !second.IsEmpty() {
		result = append(result, second)
	}
	return result
}

func reverseRanges(ranges []Range) []Range {
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		out[len(ranges)-1-i] = r
	}
	return out
}
