// Package render implements the renderer (spec.md §4.3): it diffs a target
// index range against the set of currently tracked host nodes, applying
// templates only on change, and releases nodes back to the pool after a
// grace period once they leave the range.
package render

import (
	"strconv"

	"git.sr.ht/~vlist/vlist/pool"
	"git.sr.ht/~vlist/vlist/rangemath"
	"git.sr.ht/~vlist/vlist/viewport"
)

// DefaultReleaseGrace is the number of frames a tracked item survives after
// leaving the render range (spec.md §6 RELEASE_GRACE).
const DefaultReleaseGrace = 2

// DefaultMaskCharacter is the placeholder glyph shown before real data
// loads (spec.md §6 DEFAULT_MASK_CHARACTER).
const DefaultMaskCharacter = "x"

// Node is the host's materialized element contract. Host bindings
// (hosts/gio, hosts/term) implement this over their native widget/cell
// type.
type Node interface {
	// SetAttr sets an identity attribute (data-index, data-id, aria-*).
	SetAttr(key, value string)
	// SetClass toggles a stable class name.
	SetClass(name string, on bool)
	// SetTransform positions the node at offset along the given axis. Host
	// bindings map this to translateY/translateX, a terminal row/column
	// offset, or equivalent.
	SetTransform(offset float64, orientation viewport.Orientation)
	// Apply renders content into the node. Implementations that work with
	// strings must perform a single assignment per call (spec.md §9:
	// "a single innerHTML assignment per template application"); node-based
	// implementations should diff/replace children in one call.
	Apply(content interface{})
}

// Container batches node insertion so the renderer produces at most one
// host-side commit per frame regardless of how many items entered
// together (spec.md §4.3 step 5: "one reflow").
type Container[N Node] interface {
	// Stage queues n for insertion.
	Stage(n N)
	// Flush commits every staged node in a single host operation. Called
	// at most once per Render call.
	Flush()
	// Detach removes n from the host tree immediately (used on release).
	Detach(n N)
}

// Template transforms item data into displayable content. The renderer
// does not interpret content; it is passed straight to Node.Apply.
type Template[T any] func(item T, index int, state interface{}) interface{}

// IDFunc extracts a change-tracking identity from an item. The default
// (nil) tracks identity by index, which never triggers a re-apply except
// on materialization; supply one that reads a stable field (e.g. item.ID)
// to get spec.md's "item's id changing at the same index triggers template
// re-evaluation" behavior.
type IDFunc[T any] func(item T) interface{}

// Allocator allocates per-item persistent state, mirroring the teacher's
// list.Allocator. May be nil if items need no persistent state.
type Allocator[T any] func(item T, index int) interface{}

// ItemGetter fetches the item for index. ok is false when the data manager
// has not yet loaded that index (spec.md §4.9: renders a placeholder).
type ItemGetter[T any] func(index int) (item T, ok bool)

// SelectedFunc and FocusedFunc are resolved lazily on first use per frame,
// per spec.md §4.8 "lazy getters" cooperation pattern. A nil func means no
// selection/focus feature is installed; the renderer treats every index as
// unselected/unfocused in that case (spec.md §9: "a shared empty set
// constant as the selection fallback").
type SelectedFunc func(index int) bool
type FocusedFunc func(index int) bool

const (
	classSelected    = "vlist-item--selected"
	classFocused     = "vlist-item--focused"
	classPlaceholder = "vlist-item--placeholder"
)

type tracked[N any] struct {
	element       N
	lastItemID    interface{}
	lastSelected  bool
	lastFocused   bool
	lastOffset    float64
	lastSeenFrame int
	state         interface{}
}

// Config bundles the host-specific hooks a Renderer needs.
type Config[N Node, T any] struct {
	Pool         *pool.Pool[N]
	Container    Container[N]
	Template     Template[T]
	IDOf         IDFunc[T]
	Allocate     Allocator[T]
	ReleaseGrace int
	MaskChar     string
	// PlaceholderContent builds the content shown for an in-range index the
	// data manager hasn't loaded yet. Defaults to repeating MaskChar.
	PlaceholderContent func(index int) interface{}
}

// Renderer implements spec.md §4.3's diff/materialize/release algorithm.
type Renderer[N Node, T any] struct {
	cfg           Config[N, T]
	tracked       map[int]*tracked[N]
	visibleSet    map[int]struct{}
	frameCounter  int
	skipGraceOnce bool
}

// New constructs a Renderer from cfg, applying defaults for ReleaseGrace,
// MaskChar, and PlaceholderContent when left zero.
func New[N Node, T any](cfg Config[N, T]) *Renderer[N, T] {
	if cfg.ReleaseGrace <= 0 {
		cfg.ReleaseGrace = DefaultReleaseGrace
	}
	if cfg.MaskChar == "" {
		cfg.MaskChar = DefaultMaskCharacter
	}
	if cfg.PlaceholderContent == nil {
		mask := cfg.MaskChar
		cfg.PlaceholderContent = func(int) interface{} { return mask }
	}
	return &Renderer[N, T]{
		cfg:        cfg,
		tracked:    make(map[int]*tracked[N]),
		visibleSet: make(map[int]struct{}),
	}
}

// idOf returns the change-tracking identity for index/item, defaulting to
// the index itself when no IDFunc is configured.
func (r *Renderer[N, T]) idOf(index int, item T) interface{} {
	if r.cfg.IDOf == nil {
		return index
	}
	return r.cfg.IDOf(item)
}

// OffsetFunc reads the main-axis offset for index from a caller-supplied
// accessor. The renderer doesn't import sizecache directly to stay
// decoupled from sizing strategy; the core passes a closure over its
// active sizecache.Cache.
type OffsetFunc func(index int) float64

// Render executes one diff/materialize/release pass over target, per
// spec.md §4.3. It must be called from the single-threaded render loop.
//
// A panicking Template is recovered: the offending node is released back to
// the pool (never leaked) and the panic value is re-raised after cleanup.
// The core's render loop does not recover it: the panic propagates to
// whoever triggered the render, per spec.md §4.9 / §7.
func (r *Renderer[N, T]) Render(target rangemath.Range, getItem ItemGetter[T], offsetOf OffsetFunc, orientation viewport.Orientation, selected SelectedFunc, focused FocusedFunc) {
	r.frameCounter++
	for k := range r.visibleSet {
		delete(r.visibleSet, k)
	}
	for i := target.Start; i < target.End; i++ {
		r.visibleSet[i] = struct{}{}
	}

	for i := target.Start; i < target.End; i++ {
		offset := offsetOf(i)
		isSelected := selected != nil && selected(i)
		isFocused := focused != nil && focused(i)

		if t, ok := r.tracked[i]; ok {
			r.diff(t, i, getItem, offset, isSelected, isFocused, orientation)
			continue
		}
		r.materialize(i, getItem, offset, isSelected, isFocused, orientation)
	}

	r.cfg.Container.Flush()
	r.release()
}

func (r *Renderer[N, T]) diff(t *tracked[N], index int, getItem ItemGetter[T], offset float64, isSelected, isFocused bool, orientation viewport.Orientation) {
	item, ok := getItem(index)
	var id interface{}
	if ok {
		id = r.idOf(index, item)
	} else {
		id = "__placeholder__"
	}
	if id != t.lastItemID {
		r.applyContent(t, index, item, ok)
		t.lastItemID = id
	}
	if isSelected != t.lastSelected {
		t.element.SetClass(classSelected, isSelected)
		t.lastSelected = isSelected
	}
	if isFocused != t.lastFocused {
		t.element.SetClass(classFocused, isFocused)
		t.lastFocused = isFocused
	}
	if offset != t.lastOffset {
		t.element.SetTransform(offset, orientation)
		t.lastOffset = offset
	}
	t.lastSeenFrame = r.frameCounter
}

func (r *Renderer[N, T]) materialize(index int, getItem ItemGetter[T], offset float64, isSelected, isFocused bool, orientation viewport.Orientation) {
	el := r.cfg.Pool.Acquire()
	defer func() {
		if rec := recover(); rec != nil {
			r.cfg.Pool.Release(el)
			panic(rec)
		}
	}()

	item, ok := getItem(index)
	var state interface{}
	if ok && r.cfg.Allocate != nil {
		state = r.cfg.Allocate(item, index)
	}

	el.SetAttr("data-index", strconv.Itoa(index))
	el.SetClass(classPlaceholder, !ok)
	if ok {
		content := r.cfg.Template(item, index, state)
		el.Apply(content)
	} else {
		el.Apply(r.cfg.PlaceholderContent(index))
	}
	el.SetClass(classSelected, isSelected)
	el.SetClass(classFocused, isFocused)
	el.SetTransform(offset, orientation)

	r.cfg.Container.Stage(el)

	var id interface{} = "__placeholder__"
	if ok {
		id = r.idOf(index, item)
	}
	r.tracked[index] = &tracked[N]{
		element:       el,
		lastItemID:    id,
		lastSelected:  isSelected,
		lastFocused:   isFocused,
		lastOffset:    offset,
		lastSeenFrame: r.frameCounter,
		state:         state,
	}
}

// applyContent re-applies the template for an already-materialized node
// whose item identity changed, or swaps it to/from placeholder state.
func (r *Renderer[N, T]) applyContent(t *tracked[N], index int, item T, ok bool) {
	t.element.SetClass(classPlaceholder, !ok)
	if !ok {
		t.element.Apply(r.cfg.PlaceholderContent(index))
		return
	}
	var state interface{}
	if r.cfg.Allocate != nil {
		state = r.cfg.Allocate(item, index)
	}
	t.element.Apply(r.cfg.Template(item, index, state))
	t.state = state
}

// SkipGraceOnNextRender forces the very next release() pass to expire every
// out-of-range tracked entry immediately, ignoring ReleaseGrace. The core
// calls this ahead of a forced render (spec.md §4.5's grace-skipping forced
// render path) so stale items do not linger once a feature has invalidated
// the whole range (e.g. a sizing mode switch or a data reset).
func (r *Renderer[N, T]) SkipGraceOnNextRender() {
	r.skipGraceOnce = true
}

// release expires tracked entries that have been outside the visible set
// for longer than ReleaseGrace frames (spec.md §4.3 step 6).
func (r *Renderer[N, T]) release() {
	grace := r.cfg.ReleaseGrace
	if r.skipGraceOnce {
		grace = 0
		r.skipGraceOnce = false
	}
	for index, t := range r.tracked {
		if _, visible := r.visibleSet[index]; visible {
			continue
		}
		if r.frameCounter-t.lastSeenFrame <= grace {
			continue
		}
		r.cfg.Container.Detach(t.element)
		r.cfg.Pool.Release(t.element)
		delete(r.tracked, index)
	}
}

// TrackedCount reports how many indices currently have a live tracked
// entry (visible or within grace). Exposed for tests verifying the bounded
// DOM invariant (spec.md §8).
func (r *Renderer[N, T]) TrackedCount() int {
	return len(r.tracked)
}

// ElementFor returns the node tracked for index, if any — used by tests
// asserting pointer-equality across the grace window (spec.md §8 "Grace
// contract").
func (r *Renderer[N, T]) ElementFor(index int) (N, bool) {
	t, ok := r.tracked[index]
	if !ok {
		var zero N
		return zero, false
	}
	return t.element, true
}

// Tick advances the frame counter and runs the release pass without
// performing a render, for stationary frames where renderIfNeeded's early
// exit applies: spec.md §4.5 requires "the grace-period release loop
// still runs so stale items expire even on stationary frames."
func (r *Renderer[N, T]) Tick() {
	r.frameCounter++
	r.release()
}

