package listview

import (
	"math"
	"slices"
	"sort"
	"strconv"
)

// Sector is a vertical quarter of a row under the pointer.
type Sector int

const (
	SectorNone Sector = iota - 1
	SectorTop
	SectorCenterTop
	SectorCenterBottom
	SectorBottom
)

func (s Sector) String() string {
	switch s {
	case SectorTop:
		return "top"
	case SectorCenterTop:
		return "center-top"
	case SectorCenterBottom:
		return "center-bottom"
	case SectorBottom:
		return "bottom"
	default:
		return "none"
	}
}

// SectorOf classifies an offset within a row of the given height.
func SectorOf(offset, height int) Sector {
	if height <= 0 {
		return SectorTop
	}
	sector := int(math.Floor(float64(offset) / float64(height) / 0.25))
	return Sector(min(max(sector, int(SectorTop)), int(SectorBottom)))
}

// DropEffectType tells the host which cursor to show over a drop target.
type DropEffectType int

const (
	DropEffectMove DropEffectType = iota
	DropEffectCopy
)

// DropPosition places drop feedback relative to the target rows.
type DropPosition int

const (
	DropPositionOver DropPosition = iota
	DropPositionBefore
	DropPositionAfter
)

func (p DropPosition) class() string {
	switch p {
	case DropPositionBefore:
		return ClassDropTargetBefore
	case DropPositionAfter:
		return ClassDropTargetAfter
	default:
		return ClassDropTarget
	}
}

// DragOverEffect describes how a drop would apply.
type DragOverEffect struct {
	Type     DropEffectType
	Position DropPosition
}

// DragOverReaction is a drag policy's answer to a pointer over the list.
type DragOverReaction struct {
	Accept bool
	// Feedback lists the indices to highlight. Nil highlights the target
	// row, or the whole list when there is no target; -1 stands for the
	// whole list.
	Feedback []int
	Effect   *DragOverEffect
}

// DataTransferText is the format holding a dragged element's URI.
const DataTransferText = "text/plain"

// DataTransfer carries dragged data between a host and the list.
type DataTransfer struct {
	data          map[string]string
	Files         []string
	EffectAllowed string
	DropEffect    DropEffectType
	// Label is shown next to the pointer while dragging.
	Label string
}

// SetData stores value under format.
func (d *DataTransfer) SetData(format, value string) {
	if d.data == nil {
		d.data = make(map[string]string)
	}
	d.data[format] = value
}

// Data returns the value stored under format.
func (d *DataTransfer) Data(format string) string {
	return d.data[format]
}

// Types returns the stored formats, sorted.
func (d *DataTransfer) Types() []string {
	types := make([]string, 0, len(d.data))
	for t := range d.data {
		types = append(types, t)
	}
	sort.Strings(types)
	if len(d.Files) > 0 {
		types = append(types, "Files")
	}
	return types
}

// DragEvent is a host pointer event during a drag. X and Y are relative to
// the viewport.
type DragEvent struct {
	X, Y         int
	DataTransfer *DataTransfer
}

// DragData is the payload of a running drag.
type DragData interface {
	Update(dt *DataTransfer)
}

// ElementsDragData holds elements dragged from this list.
type ElementsDragData[T any] struct {
	Elements []T
	// Context is free for the drag policy to use.
	Context any
}

// Update implements DragData.
func (d *ElementsDragData[T]) Update(*DataTransfer) {}

// ExternalElementsDragData holds elements dragged from another list sharing
// the session.
type ExternalElementsDragData[T any] struct {
	Elements []T
}

// Update implements DragData.
func (d *ExternalElementsDragData[T]) Update(*DataTransfer) {}

// NativeDragData describes data dragged in from outside every list.
type NativeDragData struct {
	Types []string
	Files []string
}

// Update implements DragData.
func (d *NativeDragData) Update(dt *DataTransfer) {
	if dt == nil {
		return
	}
	d.Types = dt.Types()
	d.Files = append(d.Files[:0], dt.Files...)
}

// DragSession shares the data of a running drag between lists. Lists that
// must recognize each other's drags are created with the same session.
type DragSession struct {
	data DragData
}

// NewDragSession returns an idle session.
func NewDragSession() *DragSession {
	return &DragSession{}
}

// Current returns the data of the running drag, or nil.
func (s *DragSession) Current() DragData {
	return s.data
}

// Clear forgets the running drag.
func (s *DragSession) Clear() {
	s.data = nil
}

// DropTarget is the element under the pointer.
type DropTarget[T any] struct {
	Element T
	// Index is -1 when the pointer is below the last element.
	Index  int
	Sector Sector
}

// DragAndDrop is the drag policy of a list.
type DragAndDrop[T any] interface {
	// DragURI returns the URI of a draggable element.
	DragURI(element T) (string, bool)
	// DragElements returns the elements dragged when element is dragged.
	DragElements(element T) []T
	OnDragOver(data DragData, target DropTarget[T], ev DragEvent) DragOverReaction
	Drop(data DragData, target DropTarget[T], ev DragEvent)
}

// DragLabeler names the elements of a drag, shown next to the pointer.
type DragLabeler[T any] interface {
	DragLabel(elements []T) (string, bool)
}

// DragStarter is told when a drag starts.
type DragStarter interface {
	OnDragStart(data DragData, ev DragEvent)
}

// DragLeaver is told when the pointer leaves the list.
type DragLeaver[T any] interface {
	OnDragLeave(data DragData, target DropTarget[T], ev DragEvent)
}

// DragEnder is told when a drag started in this list ends.
type DragEnder interface {
	OnDragEnd(ev DragEvent)
}

type dragState[T any] struct {
	policy  DragAndDrop[T]
	session *DragSession

	canDrop  bool
	current  DragData
	feedback []int
	position DropPosition
	hasFeed  bool
	undo     Disposable

	leaveTimeout MutableDisposable

	animation     Disposable
	animationStop MutableDisposable
	mouseY        int
	hasMouseY     bool
}

func (d *dragState[T]) clearFeedback() {
	d.feedback = nil
	d.hasFeed = false
	if d.undo != nil {
		d.undo.Dispose()
		d.undo = nil
	}
}

func (d *dragState[T]) teardownAnimation() {
	d.animationStop.Clear()
	if d.animation != nil {
		d.animation.Dispose()
		d.animation = nil
	}
	d.hasMouseY = false
}

func (d *dragState[T]) dispose() {
	d.leaveTimeout.Clear()
	d.teardownAnimation()
	d.clearFeedback()
}

func (v *ListView[T]) target(ev DragEvent) DropTarget[T] {
	index, ok := v.ElementAtPoint(ev.Y)
	if !ok {
		return DropTarget[T]{Index: -1, Sector: SectorNone}
	}
	offset := v.ScrollTop() + ev.Y - v.ElementTop(index)
	return DropTarget[T]{
		Element: v.items[index].element,
		Index:   index,
		Sector:  SectorOf(offset, v.items[index].size),
	}
}

// StartDrag starts dragging the element at index. It reports false when the
// element is not draggable.
func (v *ListView[T]) StartDrag(index int, ev DragEvent) bool {
	if v.dnd.policy == nil || index < 0 || index >= len(v.items) {
		return false
	}
	it := v.items[index]
	if it.dragURI == "" {
		return false
	}

	elements := v.dnd.policy.DragElements(it.element)
	if len(elements) == 0 {
		elements = []T{it.element}
	}
	if ev.DataTransfer != nil {
		ev.DataTransfer.EffectAllowed = "copyMove"
		ev.DataTransfer.SetData(DataTransferText, it.dragURI)
		label, ok := "", false
		if l, is := v.dnd.policy.(DragLabeler[T]); is {
			label, ok = l.DragLabel(elements)
		}
		if !ok {
			label = strconv.Itoa(len(elements))
		}
		ev.DataTransfer.Label = label
	}

	v.container.ToggleClass(ClassDragging, true)
	v.dnd.current = &ElementsDragData[T]{Elements: elements}
	v.dnd.session.data = &ExternalElementsDragData[T]{Elements: elements}
	if s, ok := v.dnd.policy.(DragStarter); ok {
		s.OnDragStart(v.dnd.current, ev)
	}
	return true
}

// DragOver handles a pointer moving over the list during a drag and reports
// whether a drop would be accepted.
func (v *ListView[T]) DragOver(ev DragEvent) bool {
	if v.dnd.policy == nil {
		return false
	}
	v.dnd.leaveTimeout.Clear()
	v.setupDragScroll(ev.Y)

	if v.dnd.current == nil {
		if data := v.dnd.session.Current(); data != nil {
			v.dnd.current = data
		} else {
			if ev.DataTransfer == nil {
				return false
			}
			v.dnd.current = &NativeDragData{}
		}
	}
	v.dnd.current.Update(ev.DataTransfer)

	target := v.target(ev)
	reaction := v.dnd.policy.OnDragOver(v.dnd.current, target, ev)
	v.dnd.canDrop = reaction.Accept
	if !v.dnd.canDrop {
		v.dnd.clearFeedback()
		return false
	}
	if ev.DataTransfer != nil {
		ev.DataTransfer.DropEffect = DropEffectMove
		if reaction.Effect != nil {
			ev.DataTransfer.DropEffect = reaction.Effect.Type
		}
	}

	feedback := reaction.Feedback
	if feedback == nil {
		feedback = []int{target.Index}
	}
	feedback = sanitizeFeedback(feedback, len(v.items))

	position := DropPositionOver
	if reaction.Effect != nil {
		position = reaction.Effect.Position
	}
	if v.dnd.hasFeed && slices.Equal(v.dnd.feedback, feedback) && v.dnd.position == position {
		return true
	}

	if len(feedback) > 1 && feedback[0] != -1 && position != DropPositionOver {
		v.logger.Error("invalid drop feedback", "error", ErrInvalidDropFeedback, "feedback", feedback)
		v.dnd.canDrop = false
		v.dnd.clearFeedback()
		return false
	}

	v.dnd.clearFeedback()
	v.dnd.feedback = feedback
	v.dnd.position = position
	v.dnd.hasFeed = true

	if len(feedback) > 0 && feedback[0] == -1 {
		class := position.class()
		v.container.ToggleClass(class, true)
		v.dnd.undo = DisposableFunc(func() { v.container.ToggleClass(class, false) })
		return true
	}

	if position == DropPositionAfter && len(feedback) == 1 && feedback[0] < len(v.items)-1 {
		feedback = []int{feedback[0] + 1}
		position = DropPositionBefore
	}
	class := position.class()
	for _, index := range feedback {
		it := v.items[index]
		it.dropTarget = true
		if row, ok := it.slot.Attached(); ok {
			row.Node.ToggleClass(class, true)
		}
	}
	v.dnd.undo = DisposableFunc(func() {
		for _, index := range feedback {
			if index >= len(v.items) {
				continue
			}
			it := v.items[index]
			it.dropTarget = false
			if row, ok := it.slot.Attached(); ok {
				row.Node.ToggleClass(class, false)
			}
		}
	})
	return true
}

// sanitizeFeedback keeps the distinct indices in [-1, length), sorted, and
// reduces any feedback containing -1 to the whole list.
func sanitizeFeedback(feedback []int, length int) []int {
	out := make([]int, 0, len(feedback))
	for _, i := range feedback {
		if i >= -1 && i < length && !slices.Contains(out, i) {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	if len(out) > 0 && out[0] == -1 {
		return []int{-1}
	}
	return out
}

// DragLeave handles the pointer leaving the list. Feedback is cleared after
// a short delay so moving between rows does not flicker.
func (v *ListView[T]) DragLeave(ev DragEvent) {
	v.dnd.leaveTimeout.Set(v.scheduler.AfterFunc(dragLeaveDelay, func() {
		v.dnd.clearFeedback()
		v.dnd.leaveTimeout.value = nil
	}))
	if v.dnd.current != nil {
		if l, ok := v.dnd.policy.(DragLeaver[T]); ok {
			l.OnDragLeave(v.dnd.current, v.target(ev), ev)
		}
	}
}

// Drop handles a drop on the list. It reports whether the policy received it.
func (v *ListView[T]) Drop(ev DragEvent) bool {
	if !v.dnd.canDrop {
		return false
	}
	data := v.dnd.current
	v.dnd.teardownAnimation()
	v.dnd.clearFeedback()
	v.dnd.leaveTimeout.Clear()
	v.container.ToggleClass(ClassDragging, false)
	v.dnd.current = nil
	v.dnd.session.Clear()
	v.dnd.canDrop = false

	if data == nil {
		return false
	}
	data.Update(ev.DataTransfer)
	v.dnd.policy.Drop(data, v.target(ev), ev)
	return true
}

// EndDrag finishes a drag started in this list.
func (v *ListView[T]) EndDrag(ev DragEvent) {
	v.dnd.canDrop = false
	v.dnd.teardownAnimation()
	v.dnd.clearFeedback()
	v.dnd.leaveTimeout.Clear()
	v.container.ToggleClass(ClassDragging, false)
	v.dnd.current = nil
	v.dnd.session.Clear()
	if v.dnd.policy == nil {
		return
	}
	if e, ok := v.dnd.policy.(DragEnder); ok {
		e.OnDragEnd(ev)
	}
}

// setupDragScroll scrolls the list while the pointer stays near an edge.
func (v *ListView[T]) setupDragScroll(y int) {
	if v.dnd.animation == nil {
		v.dnd.animation = Animate(v.scheduler, v.animateDragScroll)
	}
	v.dnd.animationStop.Set(v.scheduler.AfterFunc(dragScrollIdleTimeout, func() {
		if v.dnd.animation != nil {
			v.dnd.animation.Dispose()
			v.dnd.animation = nil
		}
	}))
	v.dnd.mouseY = y
	v.dnd.hasMouseY = true
}

func (v *ListView[T]) animateDragScroll() {
	if !v.dnd.hasMouseY {
		return
	}
	edge := v.opts.DragScrollEdge
	step := v.opts.DragScrollMaxStep
	diff := v.dnd.mouseY
	upper := v.RenderHeight() - edge

	switch {
	case diff < edge:
		v.SetScrollTop(v.ScrollTop() + max(-step, int(math.Floor(0.3*float64(diff-edge)))))
	case diff > upper:
		v.SetScrollTop(v.ScrollTop() + min(step, int(math.Floor(0.3*float64(diff-upper)))))
	}
}
