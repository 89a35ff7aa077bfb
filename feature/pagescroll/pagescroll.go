// Package pagescroll adapts an outer page/window scroll position into the
// scroll.Native the engine expects, for lists that scroll with the whole
// document rather than inside a fixed-height container (spec.md §4.6,
// summarized as an alternative scroll source sharing the same controller).
package pagescroll

import "git.sr.ht/~vlist/vlist/scroll"

// Source is the host's window/page scroll primitive: GetPageScrollY and
// SetPageScrollY read/write the document's scroll position; OffsetTop
// reports the list container's current distance from the document top
// (which can itself change as sibling content above it resizes).
type Source interface {
	GetPageScrollY() float64
	SetPageScrollY(y float64)
	OffsetTop() float64
}

// Adapter implements scroll.Native by translating page scroll position
// into a position relative to the list container's current offset from
// the page top.
type Adapter struct {
	src Source
}

// New wraps src as a scroll.Native.
func New(src Source) *Adapter {
	return &Adapter{src: src}
}

var _ scroll.Native = (*Adapter)(nil)

func (a *Adapter) GetNativePosition() float64 {
	pos := a.src.GetPageScrollY() - a.src.OffsetTop()
	if pos < 0 {
		return 0
	}
	return pos
}

func (a *Adapter) SetNativePosition(pos float64) {
	a.src.SetPageScrollY(pos + a.src.OffsetTop())
}
