package vlist

import (
	"fmt"
	"reflect"

	"git.sr.ht/~vlist/vlist/data"
	"git.sr.ht/~vlist/vlist/emitter"
	"git.sr.ht/~vlist/vlist/pool"
	"git.sr.ht/~vlist/vlist/rangemath"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/scroll"
	"git.sr.ht/~vlist/vlist/sizecache"
	"git.sr.ht/~vlist/vlist/viewport"
)

// List is the public handle returned by New (spec.md §5's flattened
// per-instance API). N is the host node type, T the caller's item type.
type List[N render.Node, T any] struct {
	ctx     *Context[N, T]
	core    *core[N, T]
	destroy bool
}

// Option configures a List beyond what Config expresses: feature
// composition and node allocation, both of which need the host node type N
// bound before they can be constructed.
type Option[N render.Node, T any] func(*buildState[N, T])

type buildState[N render.Node, T any] struct {
	builder *Builder[N, T]
}

// WithFeatures registers features on the list's Builder, run in priority
// order at Build time (spec.md §4.8).
func WithFeatures[N render.Node, T any](features ...Feature[N, T]) Option[N, T] {
	return func(bs *buildState[N, T]) {
		for _, f := range features {
			bs.builder.Use(f)
		}
	}
}

// New constructs a List from cfg, resolving the host container, wiring up
// the size cache/scroll controller/renderer/pool, running every registered
// feature's Setup, and performing the first render. Mirrors spec.md §6's
// build() sequence: validate config, resolve container, construct the
// engine components, run features, render once, return the handle.
func New[N render.Node, T any](cfg Config[N, T], opts ...Option[N, T]) (*List[N, T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}

	scaffold, err := cfg.Resolve(cfg.Container)
	if err != nil {
		return nil, fmt.Errorf("vlist: resolving container: %w", err)
	}

	total := len(cfg.Items)
	sizeCache := buildSizeCache(cfg.Item.Sizing, total, cfg.Logger)

	virtualCap := cfg.Scroll.VirtualCap
	if virtualCap <= 0 {
		virtualCap = scroll.MaxVirtualSize
	}
	scrollCtrl := scroll.NewController(scaffold.ScrollHost, sizeCache.GetTotalSize(), virtualCap)

	em := emitter.New(emitterLogger{cfg.Logger})

	dataMgr := data.Manager[T](data.NewInMemory(cfg.Items, nil))

	if scaffold.NewNode == nil {
		return nil, fmt.Errorf("vlist: host binding's Scaffold.NewNode must be set")
	}
	p := pool.New(cfg.Pool.MaxSize, scaffold.NewNode, scaffold.ResetNode)

	renderer := render.New(render.Config[N, T]{
		Pool:      p,
		Container: scaffold.ItemsContainer,
		Template:  cfg.Item.Template,
		IDOf:      cfg.IDOf,
		Allocate:  cfg.Allocate,
	})

	state := &viewport.State{
		Orientation:      cfg.Orientation,
		Reverse:          cfg.Reverse,
		CompressionRatio: 1,
	}

	ctx := &Context[N, T]{
		Config:           &cfg,
		Scaffold:         scaffold,
		State:            state,
		Emitter:          em,
		Logger:           cfg.Logger,
		SizeCache:        sizeCache,
		ScrollController: scrollCtrl,
		DataManager:      dataMgr,
		Methods:          make(map[string]interface{}),
	}

	bs := &buildState[N, T]{builder: NewBuilder[N, T]()}
	for _, opt := range opts {
		opt(bs)
	}
	if err := bs.builder.Build(ctx); err != nil {
		return nil, err
	}

	c := newCore(ctx, renderer)
	l := &List[N, T]{ctx: ctx, core: c}

	c.renderIfNeeded()
	return l, nil
}

func buildSizeCache(sizing ItemSizing, total int, log Logger) sizecache.Cache {
	switch sizing.Kind {
	case SizeVariable:
		return sizecache.Variable(sizing.VariableFunc, total, nil, sizecacheLogger{log})
	case SizeMeasured:
		return sizecache.Measured(sizing.Estimated, total, sizecacheLogger{log})
	default:
		return sizecache.Fixed(sizing.Fixed, total)
	}
}

type sizecacheLogger struct{ l Logger }

func (s sizecacheLogger) Warnf(format string, args ...interface{}) {
	if s.l != nil {
		s.l.Warnf(format, args...)
	}
}

type emitterLogger struct{ l Logger }

func (e emitterLogger) Errorf(format string, args ...interface{}) {
	if e.l != nil {
		e.l.Errorf(format, args...)
	}
}

// --- Data mutation passthroughs (spec.md §5) ---

func (l *List[N, T]) SetItems(items []T) {
	l.ctx.DataManager.SetItems(items)
	l.core.renderIfNeeded()
}

func (l *List[N, T]) AppendItems(items []T) {
	l.ctx.DataManager.AppendItems(items)
	l.core.renderIfNeeded()
}

func (l *List[N, T]) PrependItems(items []T) {
	l.ctx.DataManager.PrependItems(items)
	l.core.renderIfNeeded()
}

func (l *List[N, T]) UpdateItem(index int, patch data.Patch) {
	l.ctx.DataManager.UpdateItem(index, patch)
	l.core.renderIfNeeded()
}

func (l *List[N, T]) RemoveItem(index int) {
	l.ctx.DataManager.RemoveItem(index)
	l.core.renderIfNeeded()
}

func (l *List[N, T]) GetItem(index int) (T, bool) { return l.ctx.DataManager.GetItem(index) }
func (l *List[N, T]) GetItems() []T               { return l.ctx.DataManager.GetItems() }
func (l *List[N, T]) GetItemCount() int           { return l.ctx.DataManager.GetItemCount() }

// --- Scroll control ---

// ScrollToIndex positions index according to align and returns a
// ScrollFuture (spec.md §4.2/§5). The default implementation jumps
// instantly and resolves the future immediately; a feature (e.g. a
// host-specific animated scroll feature) may replace this behavior by
// registering a "_scrollToIndexAnimated" method of type
// func(int, rangemath.Align) *ScrollFuture, which ScrollToIndex then calls.
func (l *List[N, T]) ScrollToIndex(index int, align rangemath.Align) *ScrollFuture {
	if fn, ok := l.ctx.LookupMethod("_scrollToIndexAnimated"); ok {
		return fn.(func(int, rangemath.Align) *ScrollFuture)(index, align)
	}
	pos := rangemath.ScrollToIndexPosition(index, align, l.ctx.SizeCache, l.ctx.State.ContainerSize, l.ctx.ScrollController.GetScrollTop())
	l.ctx.ScrollController.SetScrollTop(pos)
	l.ctx.ForceRender()
	return resolvedScrollFuture()
}

// RecordScroll feeds a real (position, timeMs) sample into the core's
// velocity tracker. Host bindings call this from their native scroll
// event handler before (or instead of) calling ForceRender, since the core
// has no access to wall-clock time on its own.
func (l *List[N, T]) RecordScroll(pos, timeMs float64) {
	l.core.RecordVelocitySample(pos, timeMs)
	l.ctx.ForceRender()
}

// --- Events ---

func (l *List[N, T]) On(event string, listener emitter.Listener) emitter.Handle {
	return l.ctx.Emitter.OnIndexed(event, listener)
}

func (l *List[N, T]) Off(h emitter.Handle) {
	l.ctx.Emitter.OffIndexed(h)
}

// --- Dynamic method call ---

// Call invokes a feature-contributed method by name, mirroring the source
// spec's flattened per-instance method registry (spec.md §5: features
// "attach additional methods directly onto the list instance"). args are
// passed positionally via reflection; Call panics if name is unregistered
// or the argument count/types don't match, the same way a direct Go method
// call would fail to compile if misused — callers that want a static
// signature should use ctx.LookupMethod and a type assertion instead.
func (l *List[N, T]) Call(name string, args ...interface{}) []interface{} {
	fn, ok := l.ctx.LookupMethod(name)
	if !ok {
		panic(fmt.Sprintf("vlist: no method registered under %q", name))
	}
	fv := reflect.ValueOf(fn)
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = reflect.ValueOf(a)
	}
	out := fv.Call(in)
	result := make([]interface{}, len(out))
	for i, o := range out {
		result[i] = o.Interface()
	}
	return result
}

// Destroy tears down the list: runs every registered DestroyHandler in
// reverse registration order (the last feature to set up tears down
// first), then clears the emitter and calls the scaffold's Detach, per
// spec.md §4.9's teardown sequence. The element pool is not cleared.
// Destroy is idempotent.
func (l *List[N, T]) Destroy() {
	if l.destroy {
		return
	}
	l.destroy = true
	for i := len(l.ctx.DestroyHandlers) - 1; i >= 0; i-- {
		l.ctx.DestroyHandlers[i]()
	}
	l.ctx.Emitter.Clear()
	if l.ctx.Scaffold.Detach != nil {
		l.ctx.Scaffold.Detach()
	}
}
