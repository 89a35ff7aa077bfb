package vlist

import (
	"git.sr.ht/~vlist/vlist/data"
	"git.sr.ht/~vlist/vlist/emitter"
	"git.sr.ht/~vlist/vlist/rangemath"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/scroll"
	"git.sr.ht/~vlist/vlist/sizecache"
	"git.sr.ht/~vlist/vlist/viewport"
)

// RangeFunc computes the visible and render (visible+overscan) ranges for
// the current frame. The default implementation wraps rangemath; a feature
// such as grid or masonry installs its own to account for multi-column
// layout.
type RangeFunc func(state *viewport.State, cache sizecache.Cache, overscan int) (visible, renderRange rangemath.Range)

// RenderFunc executes one render pass over target. The default wraps a
// render.Renderer; a feature may replace it entirely (spec.md §4.8).
type RenderFunc func(target rangemath.Range)

// Context is the Builder Context (spec.md §3, §4.8): the coordinating
// object passed to every feature's Setup. It is exclusively owned by one
// List instance and destroyed along with it.
type Context[N render.Node, T any] struct {
	Config   *Config[N, T]
	Scaffold *Scaffold[N]
	State    *viewport.State
	Emitter  *emitter.Emitter
	Logger   Logger

	// Methods accumulates feature-contributed methods during Setup; Build
	// flattens it into the public List handle.
	Methods map[string]interface{}

	SizeCache        sizecache.Cache
	ScrollController scroll.Controller
	DataManager      data.Manager[T]

	// Handler slots (spec.md §3 Builder Context definition). Features
	// append to these during Setup. The render loop invokes AfterScroll,
	// Resize and ContentSize handlers; HandleClick, HandleDblClick and
	// HandleKeydown invoke the input handlers; Destroy invokes
	// DestroyHandlers.
	AfterScroll         []func(scrollPos float64)
	ClickHandlers       []func(index int, item T)
	DblClickHandlers    []func(index int, item T)
	KeydownHandlers     []func(key string) (handled bool)
	ResizeHandlers      []func(width, height float64)
	ContentSizeHandlers []func(totalSize float64)
	DestroyHandlers     []func()

	rangeFn    RangeFunc
	renderFn   RenderFunc
	forceFlag  bool
	requestRender func()
}

// SetRenderFns installs a replacement range/render function pair. Passing
// nil for either leaves the current installation in place. Per spec.md
// §4.8, a feature that replaces the renderer is responsible for
// maintaining the same range-update and release-grace invariants; the core
// cannot enforce this.
func (ctx *Context[N, T]) SetRenderFns(rangeFn RangeFunc, renderFn RenderFunc) {
	if rangeFn != nil {
		ctx.rangeFn = rangeFn
	}
	if renderFn != nil {
		ctx.renderFn = renderFn
	}
}

// RebuildSizeCache rebuilds the active size cache for a new item count,
// per spec.md §4.8's "rebuild via ctx.rebuildSizeCache(n)".
func (ctx *Context[N, T]) RebuildSizeCache(n int) {
	ctx.SizeCache.Rebuild(n)
}

// ForceRender marks the core render loop to run on the next
// renderIfNeeded call even if scroll position and container size are
// unchanged (spec.md §4.5 "Early exit").
func (ctx *Context[N, T]) ForceRender() {
	ctx.forceFlag = true
	if ctx.requestRender != nil {
		ctx.requestRender()
	}
}

// RegisterMethod adds a named method to the public handle's methods
// registry. Setup calls this instead of writing to ctx.Methods directly so
// a future version of Context can enforce conflict detection at a single
// seam (spec.md §4.8 "conflict detection").
func (ctx *Context[N, T]) RegisterMethod(name string, fn interface{}) {
	if ctx.Methods == nil {
		ctx.Methods = make(map[string]interface{})
	}
	ctx.Methods[name] = fn
}

// LookupMethod resolves a method the way spec.md §4.8's cooperation
// pattern describes: a feature that needs another feature's internal
// getter (e.g. "_getSelectedIds") looks it up lazily and caches the
// function reference itself.
func (ctx *Context[N, T]) LookupMethod(name string) (interface{}, bool) {
	fn, ok := ctx.Methods[name]
	return fn, ok
}
