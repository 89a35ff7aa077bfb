// Package async adapts the teacher's request/update channel-pair loader
// (gioverse-chat's list.asyncProcess) into a data.Manager[T], so a list can
// page data in from a backend instead of holding its whole item set in
// memory up front (spec.md §4.7, §4.8).
package async

import (
	"sort"

	"git.sr.ht/~vlist/vlist/data"
	"git.sr.ht/~vlist/vlist/render"
)

// Direction indicates which edge of the loaded window a load request
// targets, matching the teacher's list.Direction.
type Direction uint8

const (
	NoDirection Direction = iota
	Before
	After
)

// LoadFunc fetches more items adjacent to edge (the current first or last
// loaded item) in the given direction. Returning zero items leaves the
// window unchanged; it does not mark the direction exhausted, so a later
// SetViewport may ask again (only MarkExhausted stops a direction).
type LoadFunc[T any] func(dir Direction, edge T) []T

// Comparator reports whether a sorts before b, used to keep the loaded
// window ordered after out-of-order arrivals (mirrors list.Comparator).
type Comparator[T any] func(a, b T) bool

// Config configures a Manager.
type Config[T any] struct {
	Loader     LoadFunc[T]
	Comparator Comparator[T]
	// MaxWindow caps the number of items held in memory at once, evicting
	// from the edge farthest from the current viewport once exceeded
	// (mirrors the teacher's Compact.Size / list.NewCompact).
	MaxWindow int
	// Invalidator is called once a background load lands, so the host can
	// schedule a re-render (mirrors Hooks.Invalidator).
	Invalidator func()
}

type loadRequest struct {
	dir  Direction
	edge int // index into items at time of request
}

// Manager implements data.Manager[T] with a bounded, paged window loaded
// on demand via an internal goroutine, modeled directly on
// gioverse-chat's asyncProcess: an unbuffered request channel paired with a
// buffered (size 1) update channel, so at most one stale update is ever
// queued behind a newer one.
type Manager[T any] struct {
	cfg Config[T]

	items       []T
	viewStart   int
	viewEnd     int
	exhausted   [2]bool // indexed by Direction-1 (Before, After)
	changes     []data.Change
	loading     bool

	reqChan    chan loadRequest
	updateChan chan []T
}

var _ data.Manager[int] = (*Manager[int])(nil)

// New constructs a Manager. initial seeds the loaded window (may be empty;
// the first SetViewport call triggers a load if so).
func New[T any](cfg Config[T], initial []T) *Manager[T] {
	if cfg.MaxWindow <= 0 {
		cfg.MaxWindow = 500
	}
	m := &Manager[T]{
		cfg:        cfg,
		items:      append([]T(nil), initial...),
		reqChan:    make(chan loadRequest),
		updateChan: make(chan []T, 1),
	}
	go m.run()
	return m
}

// run is the background loader loop, directly modeled on
// gioverse-chat's asyncProcess goroutine: it blocks on reqChan, invokes the
// loader, and pushes the merged result to updateChan followed by an
// Invalidator call.
func (m *Manager[T]) run() {
	for req := range m.reqChan {
		var edge T
		switch req.dir {
		case Before:
			if len(m.items) > 0 {
				edge = m.items[0]
			}
		case After:
			if len(m.items) > 0 {
				edge = m.items[len(m.items)-1]
			}
		}
		loaded := m.cfg.Loader(req.dir, edge)
		m.updateChan <- loaded
	}
}

// PollUpdates drains any landed background loads and merges them into the
// window. Host bindings call this once per frame (or feature/async's Setup
// wires it into ctx's render loop via AfterScroll) since the manager itself
// has no access to the host's render cadence.
func (m *Manager[T]) PollUpdates() {
	for {
		select {
		case loaded, ok := <-m.updateChan:
			m.loading = false
			if !ok {
				return
			}
			m.merge(loaded)
			if m.cfg.Invalidator != nil {
				m.cfg.Invalidator()
			}
		default:
			return
		}
	}
}

func (m *Manager[T]) merge(loaded []T) {
	if len(loaded) == 0 {
		return
	}
	m.items = append(m.items, loaded...)
	if m.cfg.Comparator != nil {
		sort.SliceStable(m.items, func(i, j int) bool {
			return m.cfg.Comparator(m.items[i], m.items[j])
		})
	}
	m.compact()
	m.changes = append(m.changes, data.Change{Kind: data.ChangeReplace})
}

// compact evicts items outside [viewStart-MaxWindow/2, viewEnd+MaxWindow/2]
// once the window exceeds MaxWindow, mirroring list.Compact.Compact's
// keep-region-centered eviction.
func (m *Manager[T]) compact() {
	if len(m.items) <= m.cfg.MaxWindow {
		return
	}
	half := m.cfg.MaxWindow / 2
	keepStart := m.viewStart - half
	if keepStart < 0 {
		keepStart = 0
	}
	keepEnd := m.viewEnd + half
	if keepEnd > len(m.items) {
		keepEnd = len(m.items)
	}
	if keepEnd-keepStart >= len(m.items) {
		return
	}
	trimmed := make([]T, keepEnd-keepStart)
	copy(trimmed, m.items[keepStart:keepEnd])
	m.items = trimmed
	m.viewStart -= keepStart
	m.viewEnd -= keepStart
	if m.viewStart < 0 {
		m.viewStart = 0
	}
}

// SetViewport records the currently visible index range and, if the range
// reaches the last loaded item (or the first), issues a non-blocking load
// request in that direction; After is checked before Before (mirrors the
// teacher's loadRequest triggered from the scroll-driven viewport).
func (m *Manager[T]) SetViewport(start, end int) {
	m.viewStart, m.viewEnd = start, end
	if m.loading {
		return
	}
	switch {
	case end >= len(m.items) && !m.exhausted[After-1]:
		m.request(After)
	case start <= 0 && !m.exhausted[Before-1]:
		m.request(Before)
	}
}

func (m *Manager[T]) request(dir Direction) {
	m.loading = true
	select {
	case m.reqChan <- loadRequest{dir: dir, edge: len(m.items)}:
	default:
		// The loader goroutine is still busy with a prior request; this
		// view-driven trigger is advisory, so drop it rather than block the
		// render loop.
		m.loading = false
	}
}

// MarkExhausted stops SetViewport from issuing further load requests in
// dir. It is the only way a direction becomes exhausted: an empty loader
// result does not do it (e.g. a host calls this on "no more results" from
// an explicit API response field).
func (m *Manager[T]) MarkExhausted(dir Direction) {
	if dir == Before || dir == After {
		m.exhausted[dir-1] = true
	}
}

// Close terminates the background goroutine. Safe to call once; a second
// call panics, matching close()'s own semantics — Destroy only ever calls
// it once.
func (m *Manager[T]) Close() {
	close(m.reqChan)
}

// --- data.Manager[T] ---

func (m *Manager[T]) GetItem(index int) (T, bool) {
	if index < 0 || index >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[index], true
}

func (m *Manager[T]) GetItemCount() int { return len(m.items) }
func (m *Manager[T]) GetItems() []T     { return m.items }

func (m *Manager[T]) SetItems(items []T) {
	m.items = items
	m.changes = append(m.changes, data.Change{Kind: data.ChangeReplace})
}

func (m *Manager[T]) AppendItems(items []T) {
	if len(items) == 0 {
		return
	}
	m.items = append(m.items, items...)
	m.changes = append(m.changes, data.Change{Kind: data.ChangeAppend})
}

func (m *Manager[T]) PrependItems(items []T) {
	if len(items) == 0 {
		return
	}
	merged := make([]T, 0, len(items)+len(m.items))
	merged = append(merged, items...)
	merged = append(merged, m.items...)
	m.items = merged
	m.changes = append(m.changes, data.Change{Kind: data.ChangePrepend})
}

func (m *Manager[T]) UpdateItem(index int, patch data.Patch) {
	// Async windows don't support patch-merge without an Updater; callers
	// needing in-place update should replace the item via SetItems on their
	// backing source and re-SetItems, or keep using data.InMemory.
	_ = patch
	if index < 0 || index >= len(m.items) {
		return
	}
	m.changes = append(m.changes, data.Change{Kind: data.ChangeUpdate, Index: index})
}

func (m *Manager[T]) RemoveItem(index int) {
	if index < 0 || index >= len(m.items) {
		return
	}
	m.items = append(m.items[:index], m.items[index+1:]...)
	m.changes = append(m.changes, data.Change{Kind: data.ChangeRemove, Index: index})
}

func (m *Manager[T]) Changes() []data.Change {
	c := m.changes
	m.changes = nil
	return c
}

// compile-time assertion that Manager stays usable with render.ItemGetter's
// shape without an adapter.
var _ render.ItemGetter[int] = (*Manager[int])(nil).GetItem
