package listview

import "errors"

var (
	// ErrNoContainer is returned when a list is created without a host container.
	ErrNoContainer = errors.New("listview: no container")
	// ErrNoRenderer is raised when a row is requested for an unregistered template id.
	ErrNoRenderer = errors.New("listview: no renderer found")
	// ErrDuplicateRenderer is returned when two renderers share a template id.
	ErrDuplicateRenderer = errors.New("listview: duplicate renderer")
	// ErrDynamicHeightsWithHorizontalScrolling is returned when both options are enabled.
	ErrDynamicHeightsWithHorizontalScrolling = errors.New("listview: horizontal scrolling and dynamic heights not supported simultaneously")
	// ErrSelectionWithDragAndDrop is returned when user selection and a drag policy are both enabled.
	ErrSelectionWithDragAndDrop = errors.New("listview: drag and drop and user selection cannot be used simultaneously")
	// ErrRecursiveSplice is raised when Splice is called while a splice is running.
	ErrRecursiveSplice = errors.New("listview: can't run recursive splices")
	// ErrInTransaction is raised when a row cache transaction is opened inside another one.
	ErrInTransaction = errors.New("listview: already in transaction")
	// ErrReflowDiverged is returned when dynamic heights do not settle within the pass limit.
	ErrReflowDiverged = errors.New("listview: dynamic heights did not converge")
	// ErrInvalidDropFeedback reports drop feedback that highlights several rows with a
	// before or after position.
	ErrInvalidDropFeedback = errors.New("listview: can't use multiple feedbacks with position different than 'over'")
	// ErrDisposed is returned by operations on a disposed list.
	ErrDisposed = errors.New("listview: disposed")
)
