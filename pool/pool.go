// Package pool implements the bounded element pool (spec.md §4.4): a stack
// of reusable host nodes of a single type, acquired by the renderer and
// released back once an item's tracked entry expires.
package pool

// DefaultMax is the default pool capacity (spec.md §6 DEFAULT_POOL_MAX).
const DefaultMax = 100

// Reset clears a node's identity attributes and state before it re-enters
// the pool. Different consumers (list rows, grid cells, table cells) reset
// different attributes, so Reset is supplied per Pool rather than baked in.
type Reset[N any] func(n N)

// Create allocates a brand-new node when the pool is empty.
type Create[N any] func() N

// Pool is a stack of up to Max reusable nodes of type N.
type Pool[N any] struct {
	Max     int
	create  Create[N]
	reset   Reset[N]
	stack   []N
}

// New constructs a Pool. max <= 0 selects DefaultMax.
func New[N any](max int, create Create[N], reset Reset[N]) *Pool[N] {
	if max <= 0 {
		max = DefaultMax
	}
	return &Pool[N]{Max: max, create: create, reset: reset}
}

// Acquire pops a node from the stack, or creates a new one if the stack is
// empty.
func (p *Pool[N]) Acquire() N {
	if n := len(p.stack); n > 0 {
		node := p.stack[n-1]
		var zero N
		p.stack[n-1] = zero // avoid retaining a reference in the backing array
		p.stack = p.stack[:n-1]
		return node
	}
	return p.create()
}

// Release resets a node (it does not detach it; the renderer detaches it
// from its container first), then pushes it back onto the stack if there
// is room under Max. Nodes released past capacity are dropped (left
// for the host's own garbage collection / detachment).
func (p *Pool[N]) Release(n N) {
	if p.reset != nil {
		p.reset(n)
	}
	if len(p.stack) >= p.Max {
		return
	}
	p.stack = append(p.stack, n)
}

// Clear drops every pooled node without resetting them (the caller is
// expected to be tearing the whole list down).
func (p *Pool[N]) Clear() {
	p.stack = nil
}

// Size reports the number of nodes currently held in the pool.
func (p *Pool[N]) Size() int {
	return len(p.stack)
}
