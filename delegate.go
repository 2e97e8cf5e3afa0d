package listview

// Delegate provides sizes and template ids for elements.
type Delegate[T any] interface {
	Height(element T) int
	TemplateID(element T) string
}

// DynamicHeighter is implemented by delegates whose elements may need to be
// measured after rendering.
type DynamicHeighter[T any] interface {
	HasDynamicHeight(element T) bool
}

// DynamicHeightGetter returns a known height for an element, skipping measurement.
type DynamicHeightGetter[T any] interface {
	DynamicHeight(element T) (int, bool)
}

// DynamicHeightSetter is told the height measured for an element.
type DynamicHeightSetter[T any] interface {
	SetDynamicHeight(element T, height int)
}

// RenderDetails carries per-render information to renderers.
type RenderDetails struct {
	Height int
}

// Renderer builds and fills rows of one template.
type Renderer[T any] interface {
	TemplateID() string
	// RenderTemplate builds the template state for a new node.
	RenderTemplate(node Node) any
	RenderElement(element T, index int, template any, details RenderDetails)
	DisposeTemplate(template any)
}

// ElementDisposer is implemented by renderers that clean up after an element
// leaves a row. The index is -1 when the list is being disposed.
type ElementDisposer[T any] interface {
	DisposeElement(element T, index int, template any, details RenderDetails)
}

// CheckedState is the accessibility checked state of a row.
type CheckedState int

const (
	CheckedUnset CheckedState = iota
	CheckedFalse
	CheckedTrue
	CheckedMixed
)

func (c CheckedState) String() string {
	switch c {
	case CheckedFalse:
		return "false"
	case CheckedTrue:
		return "true"
	case CheckedMixed:
		return "mixed"
	default:
		return ""
	}
}

// CheckedValue is an observable checked state.
type CheckedValue interface {
	Value() CheckedState
	OnDidChange(fn func(CheckedState)) Disposable
}

// RoleProvider returns the role of an element's row.
type RoleProvider[T any] interface {
	Role(element T) string
}

// CheckedProvider returns the checked state of an element's row. A non-nil
// CheckedValue is followed while the row is attached.
type CheckedProvider[T any] interface {
	Checked(element T) (CheckedState, CheckedValue)
}

// SetSizeProvider returns the set size announced for an element.
type SetSizeProvider[T any] interface {
	SetSize(element T, index, length int) int
}

// PosInSetProvider returns the position announced for an element.
type PosInSetProvider[T any] interface {
	PosInSet(element T, index int) int
}
