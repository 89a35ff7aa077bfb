package vlist

// HandleClick delegates a click on the item at index to every registered
// ClickHandler and emits item:click, per spec.md §6's event table and the
// Core Render Loop's "click/keydown delegation" responsibility (spec.md
// §2). Host bindings call this from their native pointer/click callback,
// resolving index from whatever identity attribute Renderer attached to
// the clicked node (e.g. "data-index"). event is passed through verbatim
// in the emitted payload and may be nil.
func (l *List[N, T]) HandleClick(index int, event interface{}) {
	item, _ := l.ctx.DataManager.GetItem(index)
	for _, fn := range l.ctx.ClickHandlers {
		fn(index, item)
	}
	l.ctx.Emitter.Emit(EventItemClick, ItemClickPayload[T]{Index: index, Item: item, Event: event})
}

// HandleDblClick is HandleClick's double-click counterpart.
func (l *List[N, T]) HandleDblClick(index int, event interface{}) {
	item, _ := l.ctx.DataManager.GetItem(index)
	for _, fn := range l.ctx.DblClickHandlers {
		fn(index, item)
	}
	l.ctx.Emitter.Emit(EventItemDblClick, ItemClickPayload[T]{Index: index, Item: item, Event: event})
}

// HandleKeydown delegates a keydown to every registered KeydownHandler in
// registration order, stopping at the first one that reports handled
// (spec.md §2's "click/keydown delegation"). Returns whether any handler
// claimed the key, so the host can decide whether to suppress its own
// default handling (e.g. page scroll on arrow keys).
func (l *List[N, T]) HandleKeydown(key string) bool {
	for _, fn := range l.ctx.KeydownHandlers {
		if fn(key) {
			return true
		}
	}
	return false
}
