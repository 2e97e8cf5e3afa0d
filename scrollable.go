package listview

import "time"

// ScrollDimensions describes the viewport and the scrolled content.
type ScrollDimensions struct {
	Width        int
	ScrollWidth  int
	Height       int
	ScrollHeight int
}

// ScrollPosition is a scroll offset.
type ScrollPosition struct {
	ScrollLeft int
	ScrollTop  int
}

// ScrollEvent is fired whenever dimensions or position change.
type ScrollEvent struct {
	ScrollDimensions
	ScrollPosition

	WidthChanged        bool
	ScrollWidthChanged  bool
	ScrollLeftChanged   bool
	HeightChanged       bool
	ScrollHeightChanged bool
	ScrollTopChanged    bool

	InSmoothScrolling bool
}

type scrollState struct {
	ScrollDimensions
	ScrollPosition
}

func (s scrollState) validated() scrollState {
	s.Width = max(s.Width, 0)
	s.Height = max(s.Height, 0)
	if s.ScrollLeft+s.Width > s.ScrollWidth {
		s.ScrollLeft = s.ScrollWidth - s.Width
	}
	s.ScrollLeft = max(s.ScrollLeft, 0)
	if s.ScrollTop+s.Height > s.ScrollHeight {
		s.ScrollTop = s.ScrollHeight - s.Height
	}
	s.ScrollTop = max(s.ScrollTop, 0)
	return s
}

type smoothScroll struct {
	from     ScrollPosition
	to       ScrollPosition
	start    time.Time
	duration time.Duration
	frame    Disposable
}

// Scrollable owns a scroll position clamped to its dimensions and animates
// smooth scrolls on scheduler frames.
type Scrollable struct {
	scheduler Scheduler
	duration  time.Duration
	state     scrollState
	smooth    *smoothScroll
	onScroll  Emitter[ScrollEvent]
}

// NewScrollable returns a Scrollable. A zero smoothDuration disables animation.
func NewScrollable(scheduler Scheduler, smoothDuration time.Duration) *Scrollable {
	return &Scrollable{scheduler: scheduler, duration: smoothDuration}
}

// SetSmoothScrollDuration changes the animation length.
func (s *Scrollable) SetSmoothScrollDuration(d time.Duration) {
	s.duration = d
}

// OnScroll subscribes to scroll events.
func (s *Scrollable) OnScroll(fn func(ScrollEvent)) Disposable {
	return s.onScroll.Subscribe(fn)
}

// Dimensions returns the current dimensions.
func (s *Scrollable) Dimensions() ScrollDimensions {
	return s.state.ScrollDimensions
}

// Position returns the current position.
func (s *Scrollable) Position() ScrollPosition {
	return s.state.ScrollPosition
}

// FuturePosition returns the target of a running animation, or the current
// position.
func (s *Scrollable) FuturePosition() ScrollPosition {
	if s.smooth != nil {
		return s.smooth.to
	}
	return s.state.ScrollPosition
}

// SetDimensions changes the dimensions and clamps the position.
func (s *Scrollable) SetDimensions(d ScrollDimensions) {
	next := s.state
	next.ScrollDimensions = d
	s.setState(next.validated(), s.smooth != nil)
	if s.smooth != nil {
		s.smooth.to = s.clamp(s.smooth.to)
	}
}

// SetPositionNow jumps to p, cancelling any animation.
func (s *Scrollable) SetPositionNow(p ScrollPosition) {
	s.stopSmooth()
	next := s.state
	next.ScrollPosition = p
	s.setState(next.validated(), false)
}

// SetPositionSmooth animates to p. With reuseAnimation a running animation is
// retargeted without restarting its clock.
func (s *Scrollable) SetPositionSmooth(p ScrollPosition, reuseAnimation bool) {
	if s.duration <= 0 {
		s.SetPositionNow(p)
		return
	}
	to := s.clamp(p)
	if s.smooth != nil {
		if s.smooth.to == to {
			return
		}
		if reuseAnimation {
			s.smooth.to = to
			return
		}
		s.stopSmooth()
	}
	if to == s.state.ScrollPosition {
		return
	}
	s.smooth = &smoothScroll{
		from:     s.state.ScrollPosition,
		to:       to,
		start:    s.scheduler.Now(),
		duration: s.duration,
	}
	s.smooth.frame = s.scheduler.NextFrame(s.animate)
}

// Dispose stops any animation.
func (s *Scrollable) Dispose() {
	s.stopSmooth()
}

func (s *Scrollable) clamp(p ScrollPosition) ScrollPosition {
	next := s.state
	next.ScrollPosition = p
	return next.validated().ScrollPosition
}

func (s *Scrollable) stopSmooth() {
	if s.smooth == nil {
		return
	}
	s.smooth.frame.Dispose()
	s.smooth = nil
}

func (s *Scrollable) animate() {
	op := s.smooth
	if op == nil {
		return
	}
	elapsed := s.scheduler.Now().Sub(op.start)
	next := s.state
	if elapsed >= op.duration {
		s.smooth = nil
		next.ScrollPosition = op.to
		s.setState(next.validated(), false)
		return
	}

	t := easeInOutCubic(float64(elapsed) / float64(op.duration))
	next.ScrollLeft = op.from.ScrollLeft + int(float64(op.to.ScrollLeft-op.from.ScrollLeft)*t)
	next.ScrollTop = op.from.ScrollTop + int(float64(op.to.ScrollTop-op.from.ScrollTop)*t)
	op.frame = s.scheduler.NextFrame(s.animate)
	s.setState(next.validated(), true)
}

func (s *Scrollable) setState(next scrollState, inSmooth bool) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	s.onScroll.Fire(ScrollEvent{
		ScrollDimensions:    next.ScrollDimensions,
		ScrollPosition:      next.ScrollPosition,
		WidthChanged:        prev.Width != next.Width,
		ScrollWidthChanged:  prev.ScrollWidth != next.ScrollWidth,
		ScrollLeftChanged:   prev.ScrollLeft != next.ScrollLeft,
		HeightChanged:       prev.Height != next.Height,
		ScrollHeightChanged: prev.ScrollHeight != next.ScrollHeight,
		ScrollTopChanged:    prev.ScrollTop != next.ScrollTop,
		InSmoothScrolling:   inSmooth,
	})
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}
