package main

import (
	"github.com/ayn2op/listview"
)

// reorder is a drag policy moving rows within one list.
type reorder struct {
	list *listview.ListView[string]
}

func (r *reorder) DragURI(element string) (string, bool) {
	return "row:" + element, true
}

func (r *reorder) DragElements(string) []string { return nil }

func (r *reorder) DragLabel(elements []string) (string, bool) {
	if len(elements) != 1 {
		return "", false
	}
	return "move " + elements[0], true
}

func (r *reorder) OnDragOver(data listview.DragData, target listview.DropTarget[string], _ listview.DragEvent) listview.DragOverReaction {
	if _, ok := data.(*listview.ElementsDragData[string]); !ok {
		return listview.DragOverReaction{}
	}
	if target.Index < 0 {
		return listview.DragOverReaction{
			Accept:   true,
			Feedback: []int{r.list.Length() - 1},
			Effect:   &listview.DragOverEffect{Type: listview.DropEffectMove, Position: listview.DropPositionAfter},
		}
	}
	position := listview.DropPositionBefore
	if target.Sector >= listview.SectorCenterBottom {
		position = listview.DropPositionAfter
	}
	return listview.DragOverReaction{
		Accept: true,
		Effect: &listview.DragOverEffect{Type: listview.DropEffectMove, Position: position},
	}
}

func (r *reorder) Drop(data listview.DragData, target listview.DropTarget[string], _ listview.DragEvent) {
	dragged, ok := data.(*listview.ElementsDragData[string])
	if !ok || len(dragged.Elements) == 0 {
		return
	}
	element := dragged.Elements[0]
	from := listview.IndexOf(r.list, element)
	if from < 0 {
		return
	}

	to := r.list.Length()
	if target.Index >= 0 {
		to = target.Index
		if target.Sector >= listview.SectorCenterBottom {
			to++
		}
	}
	if to > from {
		to--
	}
	if to == from {
		return
	}
	r.list.Splice(from, 1)
	r.list.Splice(to, 0, element)
}
