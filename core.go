package vlist

import (
	"git.sr.ht/~vlist/vlist/data"
	"git.sr.ht/~vlist/vlist/rangemath"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/sizecache"
	"git.sr.ht/~vlist/vlist/velocity"
	"git.sr.ht/~vlist/vlist/viewport"
)

// core drives the render loop described in spec.md §4.5. It owns the
// renderer and the "last frame" snapshot the early-exit check compares
// against.
type core[N render.Node, T any] struct {
	ctx      *Context[N, T]
	renderer *render.Renderer[N, T]
	tracker  *velocity.Tracker

	lastScrollPos     float64
	lastContainerSize float64
	lastTotalSize     float64
	initialized       bool

	lastVelocity         float64
	lastVelocityReliable bool
}

func newCore[N render.Node, T any](ctx *Context[N, T], renderer *render.Renderer[N, T]) *core[N, T] {
	c := &core[N, T]{
		ctx:      ctx,
		renderer: renderer,
		tracker:  velocity.New(velocity.CoreSampleCount, velocity.CoreMinReliable),
	}
	ctx.requestRender = func() { c.renderIfNeeded() }
	if ctx.rangeFn == nil {
		ctx.rangeFn = c.defaultRangeFn
	}
	if ctx.renderFn == nil {
		ctx.renderFn = c.defaultRenderFn
	}
	return c
}

// defaultRangeFn implements spec.md §4.2's plain single-column range math.
func (c *core[N, T]) defaultRangeFn(state *viewport.State, cache sizecache.Cache, overscan int) (visible, renderRange rangemath.Range) {
	total := cache.GetTotal()
	visible = rangemath.VisibleRange(state.ScrollPosition, state.ContainerSize, cache, total)
	renderRange = rangemath.ApplyOverscan(visible, overscan, total)
	return visible, renderRange
}

// defaultRenderFn wraps the Renderer, sourcing items from the configured
// data manager and offsets from the configured size cache.
func (c *core[N, T]) defaultRenderFn(target rangemath.Range) {
	ctx := c.ctx
	getItem := func(index int) (T, bool) {
		return ctx.DataManager.GetItem(index)
	}
	offsetOf := func(index int) float64 {
		return ctx.SizeCache.GetOffset(index)
	}
	var selected render.SelectedFunc
	if fn, ok := ctx.LookupMethod("_isSelected"); ok {
		selected = fn.(func(int) bool)
	}
	var focused render.FocusedFunc
	if fn, ok := ctx.LookupMethod("_isFocused"); ok {
		focused = fn.(func(int) bool)
	}
	c.renderer.Render(target, getItem, offsetOf, ctx.State.Orientation, selected, focused)
}

// applyChanges drains pending data-manager mutations and rebuilds the size
// cache/tracked-node state they invalidate, per spec.md §4.7's
// per-change-kind invalidation rules.
func (c *core[N, T]) applyChanges(changes []data.Change) {
	if len(changes) == 0 {
		return
	}
	needsRebuild := false
	needsGraceSkip := false
	for _, ch := range changes {
		switch ch.Kind {
		case data.ChangeReplace, data.ChangeAppend, data.ChangePrepend, data.ChangeRemove:
			needsRebuild = true
		}
		if ch.Kind == data.ChangeReplace || ch.Kind == data.ChangePrepend || ch.Kind == data.ChangeRemove {
			needsGraceSkip = true
		}
	}
	if needsRebuild {
		c.ctx.RebuildSizeCache(c.ctx.DataManager.GetItemCount())
	}
	if needsGraceSkip {
		c.renderer.SkipGraceOnNextRender()
	}
	c.ctx.forceFlag = true
}

// renderIfNeeded is the core render loop (spec.md §4.5): drain pending data
// changes, recompute ranges, early-exit when nothing changed, otherwise run
// the render function and emit the frame's events.
func (c *core[N, T]) renderIfNeeded() {
	ctx := c.ctx
	c.applyChanges(ctx.DataManager.Changes())

	scrollPos := ctx.ScrollController.GetScrollTop()
	containerSize := ctx.Scaffold.MainSize()
	totalSize := ctx.SizeCache.GetTotalSize()

	unchanged := c.initialized &&
		scrollPos == c.lastScrollPos &&
		containerSize == c.lastContainerSize &&
		totalSize == c.lastTotalSize &&
		!ctx.forceFlag

	if unchanged {
		// Spec.md §4.5: "The grace-period release loop still runs so stale
		// items expire even on stationary frames."
		c.renderer.Tick()
		return
	}

	resized := c.initialized && containerSize != c.lastContainerSize
	contentSizeChanged := c.initialized && totalSize != c.lastTotalSize

	ctx.State.ScrollPosition = scrollPos
	ctx.State.ContainerSize = containerSize
	ctx.State.ActualSize = totalSize
	ctx.State.IsCompressed = ctx.ScrollController.IsCompressed()
	ctx.State.CompressionRatio = ctx.ScrollController.CompressionRatio()
	ctx.State.TotalSize = totalSize * ctx.State.CompressionRatio

	visible, renderRange := ctx.rangeFn(ctx.State, ctx.SizeCache, ctx.Config.Overscan)
	rangeChanged := visible != ctx.State.VisibleRange
	ctx.State.VisibleRange = visible
	ctx.State.RenderRange = renderRange

	ctx.renderFn(renderRange)

	ctx.Emitter.Emit(EventScroll, ScrollPayload{ScrollPosition: scrollPos})
	if rangeChanged {
		ctx.Emitter.Emit(EventRangeChange, RangeChangePayload{Start: visible.Start, End: visible.End})
	}
	if resized {
		ctx.Emitter.Emit(EventResize, ResizePayload{Width: containerSize, Height: containerSize})
		for _, fn := range ctx.ResizeHandlers {
			fn(containerSize, containerSize)
		}
	}
	if contentSizeChanged {
		for _, fn := range ctx.ContentSizeHandlers {
			fn(totalSize)
		}
	}

	for _, fn := range ctx.AfterScroll {
		fn(scrollPos)
	}

	if v, ok := c.tracker.Velocity(); ok {
		materialChange := !c.lastVelocityReliable || velocityDelta(v, c.lastVelocity) > velocityMaterialDelta
		if materialChange {
			ctx.Emitter.Emit(EventVelocityChange, VelocityChangePayload{Velocity: v, Reliable: true})
			c.lastVelocity = v
			c.lastVelocityReliable = true
		}
	}

	c.lastScrollPos = scrollPos
	c.lastContainerSize = containerSize
	c.lastTotalSize = totalSize
	c.initialized = true
	ctx.forceFlag = false
}

// velocityMaterialDelta is the minimum px/ms change required before a
// second velocity:change fires for the same reliable reading, per spec.md
// §6's "when velocity changes materially."
const velocityMaterialDelta = 0.05

func velocityDelta(a, b float64) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}

// RecordVelocitySample feeds a real (position, timestamp) pair into the
// core's velocity tracker. Host bindings call this from their scroll event
// handler — separately from renderIfNeeded, which has no access to wall
// time — typically right before calling ScrollController.SetScrollTop.
func (c *core[N, T]) RecordVelocitySample(pos, timeMs float64) {
	c.tracker.Record(pos, timeMs)
}
