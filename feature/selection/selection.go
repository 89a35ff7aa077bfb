// Package selection adds single/multi selection tracking to a list,
// exposing _isSelected/_isFocused to the renderer (spec.md §4.8's lazy-
// getter cooperation pattern) and a selection:change event.
package selection

import (
	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
)

// Mode selects single vs. multi selection semantics.
type Mode uint8

const (
	Single Mode = iota
	Multi
)

// Config configures the selection feature.
type Config struct {
	Mode Mode
}

// Controller is the method set exposed on the list after Feature installs
// it, reachable via ctx.LookupMethod or List.Call.
type Controller struct {
	mode     Mode
	selected map[int]bool
	focused  int
	emit     func(selected []int, focused int)
}

func (c *Controller) Select(index int) {
	if c.mode == Single {
		for k := range c.selected {
			delete(c.selected, k)
		}
	}
	c.selected[index] = true
	c.focused = index
	c.emit(c.ids(), c.focused)
}

func (c *Controller) Deselect(index int) {
	delete(c.selected, index)
	c.emit(c.ids(), c.focused)
}

func (c *Controller) Toggle(index int) {
	if c.selected[index] {
		c.Deselect(index)
		return
	}
	c.Select(index)
}

func (c *Controller) Clear() {
	c.selected = make(map[int]bool)
	c.emit(c.ids(), c.focused)
}

// Focus moves keyboard focus to index without changing the selection,
// mirroring the usual list-widget distinction between "selected" and
// "focused" (spec.md §6's selection:change payload carries both).
func (c *Controller) Focus(index int) {
	c.focused = index
	c.emit(c.ids(), c.focused)
}

func (c *Controller) IsSelected(index int) bool { return c.selected[index] }
func (c *Controller) IsFocused(index int) bool  { return c.focused == index }

func (c *Controller) ids() []int {
	ids := make([]int, 0, len(c.selected))
	for i := range c.selected {
		ids = append(ids, i)
	}
	return ids
}

// restoreIds replaces the current selection wholesale, used by
// feature/snapshot's restore path; it does not touch focus.
func (c *Controller) restoreIds(ids []int) {
	c.selected = make(map[int]bool, len(ids))
	for _, id := range ids {
		c.selected[id] = true
	}
	c.emit(c.ids(), c.focused)
}

// Feature installs selection tracking at spec.md §4.8's priority-50 slot,
// after layout/async/scale have established item identity and before
// sections/scrollbar/snapshot, which may want to read selection state.
func Feature[N render.Node, T any](cfg Config) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "selection",
		Priority: vlist.PrioritySelection,
		Setup: func(ctx *vlist.Context[N, T]) error {
			ctrl := &Controller{mode: cfg.Mode, selected: make(map[int]bool), focused: -1}
			ctrl.emit = func(selected []int, focused int) {
				ctx.Emitter.Emit(vlist.EventSelectionChange, vlist.SelectionChangePayload{
					Selected: selected,
					Focused:  focused,
				})
				ctx.ForceRender()
			}
			ctx.RegisterMethod("_isSelected", func(index int) bool { return ctrl.IsSelected(index) })
			ctx.RegisterMethod("_isFocused", func(index int) bool { return ctrl.IsFocused(index) })
			ctx.RegisterMethod("_getSelectedIds", ctrl.ids)
			ctx.RegisterMethod("_restoreSelectedIds", ctrl.restoreIds)
			ctx.RegisterMethod("selection.Select", ctrl.Select)
			ctx.RegisterMethod("selection.Deselect", ctrl.Deselect)
			ctx.RegisterMethod("selection.Toggle", ctrl.Toggle)
			ctx.RegisterMethod("selection.Clear", ctrl.Clear)
			ctx.RegisterMethod("selection.Focus", ctrl.Focus)
			ctx.ClickHandlers = append(ctx.ClickHandlers, func(index int, _ T) { ctrl.Toggle(index) })
			return nil
		},
	}
}
