package vlist

// Snapshot is the restorable descriptor spec.md §6 documents as
// getScrollSnapshot's return shape: `{ index, offsetInItem, total,
// selectedIds? }`. Index/OffsetInItem decompose the scroll position
// relative to item boundaries (rather than storing the raw pixel
// position) so a restore remains meaningful even if item sizes changed
// between capture and restore, e.g. across a measured-sizing remount.
// SelectedIds is populated only when a selection feature is installed
// (via the "_getSelectedIds" method lookup); it is nil otherwise.
type Snapshot struct {
	Index        int
	OffsetInItem float64
	Total        int
	SelectedIds  []int
}

// GetScrollSnapshot captures the current state for later restoration via
// Restore. Safe to call at any time after Build.
func (l *List[N, T]) GetScrollSnapshot() Snapshot {
	pos := l.ctx.State.ScrollPosition
	index := l.ctx.SizeCache.IndexAtOffset(pos)
	snap := Snapshot{
		Index:        index,
		OffsetInItem: pos - l.ctx.SizeCache.GetOffset(index),
		Total:        l.ctx.DataManager.GetItemCount(),
	}
	if fn, ok := l.ctx.LookupMethod("_getSelectedIds"); ok {
		snap.SelectedIds = fn.(func() []int)()
	}
	return snap
}

// Restore repositions the list at snap.Index/OffsetInItem and forces a
// render, per spec.md §4.9's restore-on-remount scenario. If a selection
// feature is installed and snap.SelectedIds is non-nil, restoration also
// replays it via "_restoreSelectedIds". If the item count has since
// changed, the position is still applied verbatim — callers that need
// clamping should compare snap.Total against GetItemCount themselves
// first.
func (l *List[N, T]) Restore(snap Snapshot) {
	pos := l.ctx.SizeCache.GetOffset(snap.Index) + snap.OffsetInItem
	l.ctx.ScrollController.SetScrollTop(pos)
	if snap.SelectedIds != nil {
		if fn, ok := l.ctx.LookupMethod("_restoreSelectedIds"); ok {
			fn.(func([]int))(snap.SelectedIds)
		}
	}
	l.ctx.ForceRender()
}
