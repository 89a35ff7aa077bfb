// Package rangemath holds the pure functions (spec.md §4.2) that translate a
// scroll position and container size into the index range the render loop
// should materialize. Every function here is side-effect free: the render
// loop owns mutation of its Range fields, these functions just compute the
// new values.
package rangemath

import "git.sr.ht/~vlist/vlist/sizecache"

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len reports the number of indices in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Align controls where scrollToIndex places the target index within the
// viewport.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignAuto
)

// VisibleRange computes the half-open range of indices currently visible
// within a viewport of containerSize at scrollPos, per spec.md §4.2.
func VisibleRange(scrollPos, containerSize float64, cache sizecache.Cache, total int) Range {
	if total <= 0 {
		return Range{}
	}
	start := cache.IndexAtOffset(scrollPos)
	end := cache.IndexAtOffset(scrollPos+containerSize-1) + 1
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return Range{Start: start, End: end}
}

// ApplyOverscan expands a range by overscan items on each side, clamped to
// [0, total]. It returns a new Range; callers that need to mutate a shared
// record in place should copy Start/End out of the result themselves.
func ApplyOverscan(r Range, overscan, total int) Range {
	if overscan < 0 {
		overscan = 0
	}
	start := r.Start - overscan
	if start < 0 {
		start = 0
	}
	end := r.End + overscan
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return Range{Start: start, End: end}
}

// ScrollToIndexPosition computes the scroll position that satisfies align
// for the item at index, per spec.md §4.2. AlignAuto is a no-op (returns
// currentScrollPos) if the index is already fully visible within
// containerSize at the current position; otherwise it aligns to the nearer
// edge (start if the item is above the viewport, end if below).
func ScrollToIndexPosition(index int, align Align, cache sizecache.Cache, containerSize, currentScrollPos float64) float64 {
	itemStart := cache.GetOffset(index)
	itemSize := cache.GetSize(index)
	itemEnd := itemStart + itemSize
	total := cache.GetTotalSize()

	clamp := func(pos float64) float64 {
		maxPos := total - containerSize
		if maxPos < 0 {
			maxPos = 0
		}
		if pos < 0 {
			return 0
		}
		if pos > maxPos {
			return maxPos
		}
		return pos
	}

	switch align {
	case AlignStart:
		return clamp(itemStart)
	case AlignCenter:
		return clamp(itemStart - (containerSize-itemSize)/2)
	case AlignEnd:
		return clamp(itemEnd - containerSize)
	case AlignAuto:
		viewStart := currentScrollPos
		viewEnd := currentScrollPos + containerSize
		switch {
		case itemStart >= viewStart && itemEnd <= viewEnd:
			// Already fully visible; no-op.
			return currentScrollPos
		case itemStart < viewStart:
			return clamp(itemStart)
		default:
			return clamp(itemEnd - containerSize)
		}
	default:
		return clamp(itemStart)
	}
}
