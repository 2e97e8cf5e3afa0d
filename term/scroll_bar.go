package term

import "github.com/gdamore/tcell/v2"

// TrackClickBehavior configures behavior when clicking scroll bar track cells
// outside the thumb.
type TrackClickBehavior uint8

const (
	TrackClickBehaviorPage TrackClickBehavior = iota
	TrackClickBehaviorJumpToClick
)

// ScrollLengths bundles content and viewport lengths in logical units.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

const subcell = 8

// GlyphSet defines vertical track and fractional thumb glyphs.
type GlyphSet struct {
	TrackVertical string

	ThumbVerticalLower [8]string
	ThumbVerticalUpper [8]string
}

// MinimalGlyphSet returns a space track with fractional thumbs.
func MinimalGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.TrackVertical = " "
	return g
}

// UnicodeGlyphSet returns a standard-unicode-only approximation set.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical: "│",

		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// ScrollBar renders a vertical scroll bar for a list viewport.
type ScrollBar struct {
	*Box

	autoHide    bool
	contentLen  int
	viewportLen int
	offset      int

	trackStyle tcell.Style
	thumbStyle tcell.Style

	glyphSet GlyphSet

	trackClickBehavior TrackClickBehavior

	// changed receives offsets requested with the mouse.
	changed func(offset int)
	// grab is the distance between the pointer and the thumb start while the
	// thumb is dragged, in subcells. It is negative when nothing is dragged.
	grab int
}

// NewScrollBar returns a new vertical scroll bar.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:                NewBox(),
		autoHide:           true,
		trackStyle:         tcell.StyleDefault.Foreground(Styles.GraphicsColor).Dim(true),
		thumbStyle:         tcell.StyleDefault.Foreground(Styles.GraphicsColor),
		glyphSet:           MinimalGlyphSet(),
		trackClickBehavior: TrackClickBehaviorPage,
		grab:               -1,
	}
}

// SetLengths sets content and viewport lengths.
func (s *ScrollBar) SetLengths(lengths ScrollLengths) *ScrollBar {
	s.contentLen = max(lengths.ContentLen, 0)
	s.viewportLen = max(lengths.ViewportLen, 0)
	return s
}

// SetOffset sets the logical offset.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	s.offset = max(offset, 0)
	return s
}

// Offset returns the logical offset.
func (s *ScrollBar) Offset() int {
	return s.offset
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	return s
}

// SetTrackClickBehavior sets behavior used for track clicks.
func (s *ScrollBar) SetTrackClickBehavior(behavior TrackClickBehavior) *ScrollBar {
	s.trackClickBehavior = behavior
	return s
}

// SetAutoHide controls whether the scroll bar is hidden when there is nothing
// to scroll.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	s.autoHide = autoHide
	return s
}

// SetThumbStyle sets the thumb style.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	s.thumbStyle = style
	return s
}

// SetTrackStyle sets the track style.
func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	s.trackStyle = style
	return s
}

// SetChangedFunc sets the handler receiving offsets requested by clicking or
// dragging the scroll bar.
func (s *ScrollBar) SetChangedFunc(handler func(offset int)) *ScrollBar {
	s.changed = handler
	return s
}

func (s *ScrollBar) viewportLength(length int) int {
	if s.viewportLen > 0 {
		return s.viewportLen
	}
	return max(length, 0)
}

func (s *ScrollBar) maxOffset(length int) int {
	contentLen := max(s.contentLen, 1)
	viewportLen := min(max(s.viewportLength(length), 1), contentLen)
	return max(contentLen-viewportLen, 0)
}

type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

func computeScrollMetrics(trackCells int, contentLen int, viewportLen int, offset int) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := max(contentLen-viewportLen, 0)
	offset = min(max(offset, 0), maxOffset)

	if maxOffset == 0 {
		return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: trackLen, thumbStart: 0}
	}

	// Subcell math moves the thumb in 1/8-cell steps.
	thumbLen := min(max((trackLen*viewportLen)/contentLen, subcell), trackLen)
	thumbTravel := max(trackLen-thumbLen, 0)
	thumbStart := (thumbTravel * offset) / maxOffset
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

func (s *ScrollBar) metrics(length int) scrollMetrics {
	return computeScrollMetrics(max(length, 0), s.contentLen, s.viewportLength(length), s.offset)
}

func (s *ScrollBar) shouldDraw(length int, m scrollMetrics) bool {
	if length <= 0 || m.trackLen == 0 || s.contentLen <= 0 {
		return false
	}
	return !s.autoHide || s.maxOffset(length) > 0
}

// cellFill returns the part of a cell covered by the thumb, in subcells.
func cellFill(m scrollMetrics, cellIndex int) (start int, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := m.thumbStart + m.thumbLen
	start = max(m.thumbStart, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	fillLen = min(end-start, subcell)
	start = min(max(start-cellStart, 0), subcell)
	return start, fillLen
}

func (s *ScrollBar) glyphForVertical(start, fillLen int) (string, tcell.Style) {
	if fillLen <= 0 {
		return s.glyphSet.TrackVertical, s.trackStyle
	}
	if fillLen >= subcell {
		return s.glyphSet.ThumbVerticalLower[7], s.thumbStyle
	}
	ix := fillLen - 1
	if start == 0 {
		return s.glyphSet.ThumbVerticalUpper[ix], s.thumbStyle
	}
	return s.glyphSet.ThumbVerticalLower[ix], s.thumbStyle
}

// Draw draws the scroll bar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	x, y, _, height := s.GetInnerRect()
	m := s.metrics(height)
	if !s.shouldDraw(height, m) {
		return
	}
	for cell := 0; cell < m.trackCells; cell++ {
		start, fillLen := cellFill(m, cell)
		glyph, style := s.glyphForVertical(start, fillLen)
		setCell(screen, x, y+cell, glyph, style)
	}
}

// offsetAt converts a thumb start in subcells to a logical offset.
func (s *ScrollBar) offsetAt(m scrollMetrics, thumbStart, length int) int {
	travel := m.trackLen - m.thumbLen
	if travel <= 0 {
		return 0
	}
	thumbStart = min(max(thumbStart, 0), travel)
	return thumbStart * s.maxOffset(length) / travel
}

// MouseHandler pages or jumps on track clicks and follows thumb drags.
func (s *ScrollBar) MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command) {
	x, y, _, height := s.GetInnerRect()
	m := s.metrics(height)
	if !s.shouldDraw(height, m) {
		s.grab = -1
		return nil, nil
	}
	mx, my := event.Position()
	pos := (my-y)*subcell + subcell/2

	switch action {
	case MouseLeftDown:
		if mx != x || my < y || my >= y+height {
			return nil, nil
		}
		if pos >= m.thumbStart && pos < m.thumbStart+m.thumbLen {
			s.grab = pos - m.thumbStart
			return s, ConsumeEventCommand{}
		}
		offset := s.offset
		switch s.trackClickBehavior {
		case TrackClickBehaviorJumpToClick:
			offset = s.offsetAt(m, pos-m.thumbLen/2, height)
		default:
			if pos < m.thumbStart {
				offset -= s.viewportLength(height)
			} else {
				offset += s.viewportLength(height)
			}
		}
		s.request(min(max(offset, 0), s.maxOffset(height)))
		return nil, RedrawCommand{}
	case MouseMove:
		if s.grab < 0 {
			return nil, nil
		}
		s.request(s.offsetAt(m, pos-s.grab, height))
		return s, RedrawCommand{}
	case MouseLeftUp:
		if s.grab < 0 {
			return nil, nil
		}
		s.grab = -1
		return nil, ConsumeEventCommand{}
	}
	return nil, nil
}

func (s *ScrollBar) request(offset int) {
	s.offset = offset
	if s.changed != nil {
		s.changed(offset)
	}
}

var _ Primitive = &ScrollBar{}
