package listview

import (
	"log/slog"
	"time"
)

const (
	defaultMaxReflowPasses   = 64
	defaultDragScrollEdge    = 35
	defaultDragScrollMaxStep = 14
	defaultSmoothDuration    = 125 * time.Millisecond
	horizontalScrollbarSize  = 10
	widthMeasureDelay        = 50 * time.Millisecond
	dragLeaveDelay           = 100 * time.Millisecond
	dragScrollIdleTimeout    = time.Second
)

// Options configures a ListView. The zero value is a fixed-height list with
// no drag and drop.
type Options[T any] struct {
	// ID prefixes the id attribute of every row.
	ID string

	// SupportDynamicHeights enables measuring rows whose delegate reports a
	// dynamic height.
	SupportDynamicHeights bool
	// HorizontalScrolling sizes the content to the widest rendered row.
	HorizontalScrolling bool

	PaddingTop    int
	PaddingBottom int

	// SmoothScrolling animates ScrollBy and reuse-animation scrolls over
	// SmoothScrollDuration.
	SmoothScrolling      bool
	SmoothScrollDuration time.Duration

	// DisableRowHeight leaves row heights to the host.
	DisableRowHeight bool
	// RowLineHeight sets each row's line height to its size.
	RowLineHeight bool

	DragAndDrop DragAndDrop[T]
	// DragSession shares dragged data between lists. Each list gets its own
	// session when nil.
	DragSession *DragSession
	// DragScrollEdge is the distance from an edge that starts auto-scrolling
	// while dragging, DragScrollMaxStep the largest step per frame.
	DragScrollEdge    int
	DragScrollMaxStep int

	// UserSelection enables text selection across rows.
	UserSelection bool

	// AccessibilityProvider may implement RoleProvider, CheckedProvider,
	// SetSizeProvider and PosInSetProvider.
	AccessibilityProvider any

	// Scheduler runs deferred callbacks. A FrameScheduler is created when nil.
	Scheduler Scheduler
	Logger    *slog.Logger

	// MaxReflowPasses bounds the dynamic height measurement loop.
	MaxReflowPasses int
}

// OptionsUpdate changes options of a live list. Nil fields are left alone.
type OptionsUpdate struct {
	PaddingTop           *int
	PaddingBottom        *int
	SmoothScrolling      *bool
	SmoothScrollDuration *time.Duration
	HorizontalScrolling  *bool
}

func (o *Options[T]) validate() error {
	if o.SupportDynamicHeights && o.HorizontalScrolling {
		return ErrDynamicHeightsWithHorizontalScrolling
	}
	if o.UserSelection && o.DragAndDrop != nil {
		return ErrSelectionWithDragAndDrop
	}
	return nil
}

func (o *Options[T]) applyDefaults() {
	if o.Scheduler == nil {
		o.Scheduler = NewFrameScheduler(time.Now())
	}
	if o.Logger == nil {
		o.Logger = defaultLogger
	}
	if o.DragSession == nil {
		o.DragSession = NewDragSession()
	}
	if o.MaxReflowPasses <= 0 {
		o.MaxReflowPasses = defaultMaxReflowPasses
	}
	if o.DragScrollEdge <= 0 {
		o.DragScrollEdge = defaultDragScrollEdge
	}
	if o.DragScrollMaxStep <= 0 {
		o.DragScrollMaxStep = defaultDragScrollMaxStep
	}
	if o.SmoothScrollDuration <= 0 {
		o.SmoothScrollDuration = defaultSmoothDuration
	}
	if o.ID == "" {
		o.ID = "list"
	}
}
