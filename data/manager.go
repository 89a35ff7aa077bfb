// Package data implements the default data manager (spec.md §4.7): an
// in-memory array held by reference, with the mutation methods the core
// render loop and public handle delegate to. It is replaceable wholesale by
// feature/async, which installs a paging-aware Manager behind the same
// interface.
package data

// Patch is a partial update applied to a single item by UpdateItem.
// Implementations of Manager decide how to merge a Patch into an item;
// the default in-memory Manager requires T to supply an Updater function at
// construction time since Go has no structural field-merge primitive.
type Patch = interface{}

// ChangeKind classifies what changed so the core can choose a minimal
// invalidation strategy (spec.md §4.7: "append preserves tracked items;
// prepend/remove shifts indices and forces a full re-diff").
type ChangeKind uint8

const (
	// ChangeReplace indicates the entire item set was replaced (setItems);
	// the size cache must be fully rebuilt and the render range reset.
	ChangeReplace ChangeKind = iota
	// ChangeAppend indicates items were added at the end; existing tracked
	// items remain valid at their current indices.
	ChangeAppend
	// ChangePrepend indicates items were added at the start; every existing
	// index shifts and tracked items must be fully re-diffed.
	ChangePrepend
	// ChangeUpdate indicates a single item's fields changed in place; its
	// index is unchanged but its id may have, which the renderer uses to
	// decide whether to re-apply the template.
	ChangeUpdate
	// ChangeRemove indicates an item was removed, shifting every later
	// index down by one.
	ChangeRemove
)

// Change describes a single data-manager mutation. The core's forceRender
// path reads only Kind to decide how to refresh the size cache and the
// render; Index (set for ChangeUpdate/ChangeRemove) is recorded for other
// consumers.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Manager is the contract spec.md §4.7 assigns to the data layer. T is the
// caller's item type; the core treats it as opaque (per spec.md §3, Item
// identity is the caller's responsibility).
type Manager[T any] interface {
	GetItem(index int) (item T, ok bool)
	GetItemCount() int
	GetItems() []T

	SetItems(items []T)
	AppendItems(items []T)
	PrependItems(items []T)
	UpdateItem(index int, patch Patch)
	RemoveItem(index int)

	// Changes returns and clears the queue of mutations recorded since the
	// last call, in order. The core render loop drains this once per
	// renderIfNeeded pass.
	Changes() []Change
}

// Updater merges a Patch into an existing item of type T, returning the
// updated value. The default in-memory Manager requires one because Go has
// no generic "merge struct fields" operation.
type Updater[T any] func(item T, patch Patch) T

// InMemory is the default Manager: an items slice held by reference, never
// copied by the core (spec.md §3 memory-constant discipline). Callers must
// not mutate the slice passed to SetItems/the constructor without going
// through a Manager method afterward.
type InMemory[T any] struct {
	items   []T
	update  Updater[T]
	changes []Change
}

// NewInMemory constructs an InMemory manager over items (held by
// reference, not copied). update may be nil if UpdateItem is never called.
func NewInMemory[T any](items []T, update Updater[T]) *InMemory[T] {
	return &InMemory[T]{items: items, update: update}
}

func (m *InMemory[T]) GetItem(index int) (item T, ok bool) {
	if index < 0 || index >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[index], true
}

func (m *InMemory[T]) GetItemCount() int { return len(m.items) }

// GetItems returns the manager's backing slice by reference. Callers must
// treat it as read-only; mutating it directly bypasses change tracking.
func (m *InMemory[T]) GetItems() []T { return m.items }

func (m *InMemory[T]) SetItems(items []T) {
	m.items = items
	m.changes = append(m.changes, Change{Kind: ChangeReplace})
}

func (m *InMemory[T]) AppendItems(items []T) {
	if len(items) == 0 {
		return
	}
	m.items = append(m.items, items...)
	m.changes = append(m.changes, Change{Kind: ChangeAppend})
}

func (m *InMemory[T]) PrependItems(items []T) {
	if len(items) == 0 {
		return
	}
	merged := make([]T, 0, len(items)+len(m.items))
	merged = append(merged, items...)
	merged = append(merged, m.items...)
	m.items = merged
	m.changes = append(m.changes, Change{Kind: ChangePrepend})
}

func (m *InMemory[T]) UpdateItem(index int, patch Patch) {
	if index < 0 || index >= len(m.items) || m.update == nil {
		return
	}
	m.items[index] = m.update(m.items[index], patch)
	m.changes = append(m.changes, Change{Kind: ChangeUpdate, Index: index})
}

func (m *InMemory[T]) RemoveItem(index int) {
	if index < 0 || index >= len(m.items) {
		return
	}
	m.items = append(m.items[:index], m.items[index+1:]...)
	m.changes = append(m.changes, Change{Kind: ChangeRemove, Index: index})
}

func (m *InMemory[T]) Changes() []Change {
	c := m.changes
	m.changes = nil
	return c
}
