package vlist

import "sync"

// ErrScrollInterrupted is delivered to a ScrollFuture when an animated
// scroll is cancelled by user input mid-flight (spec.md §4.6 "a pending
// animated scroll is cancelled because a tracked velocity sample exceeded
// threshold").
type ErrScrollInterrupted struct{}

func (ErrScrollInterrupted) Error() string { return "vlist: scroll interrupted by user input" }

// ScrollFuture stands in for the promise ScrollToIndex returns in the
// source spec: host bindings that animate the scroll (rather than jumping
// instantly) resolve or reject it once the animation settles or is
// interrupted. A host binding with no animation (the default, jump-only
// ScrollToIndex) resolves it immediately.
type ScrollFuture struct {
	mu       sync.Mutex
	done     chan struct{}
	err      error
	settled  bool
	onSettle []func(error)
}

func newScrollFuture() *ScrollFuture {
	return &ScrollFuture{done: make(chan struct{})}
}

func resolvedScrollFuture() *ScrollFuture {
	f := newScrollFuture()
	f.settle(nil)
	return f
}

// settle resolves or rejects the future exactly once; later calls are
// no-ops, matching promise settle-once semantics.
func (f *ScrollFuture) settle(err error) {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return
	}
	f.settled = true
	f.err = err
	callbacks := f.onSettle
	f.onSettle = nil
	f.mu.Unlock()

	close(f.done)
	for _, cb := range callbacks {
		cb(err)
	}
}

// Wait blocks until the scroll settles (or was already settled) and
// returns the terminal error, if any.
func (f *ScrollFuture) Wait() error {
	<-f.done
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// OnSettle registers cb to run once the future settles. If it has already
// settled, cb runs synchronously before OnSettle returns.
func (f *ScrollFuture) OnSettle(cb func(err error)) {
	f.mu.Lock()
	if f.settled {
		err := f.err
		f.mu.Unlock()
		cb(err)
		return
	}
	f.onSettle = append(f.onSettle, cb)
	f.mu.Unlock()
}

// Done reports whether the future has settled.
func (f *ScrollFuture) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}
