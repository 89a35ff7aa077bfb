// Package sizecache maps a logical item index onto a main-axis offset and
// back. It is the lowest-level component of the virtual list engine: every
// other component (range math, the renderer, the scroll controller) reads
// offsets through this package rather than recomputing them.
package sizecache

import "sort"

// Logger receives non-fatal warnings about malformed size data. A nil
// Logger is valid; warnings are simply dropped.
type Logger interface {
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...interface{}) {}

// SizeFunc computes the size of the item at index. ctx is an opaque,
// feature-supplied value (for example a grid's current column width);
// implementations that don't need it should ignore it.
type SizeFunc func(index int, ctx interface{}) float64

// Cache is the contract every sizing mode implements. Reads are safe for
// concurrent use only insofar as the caller serializes Rebuild and
// SetMeasured against the reader methods; the core render loop is
// single-threaded and never needs to do otherwise.
type Cache interface {
	// GetSize returns the main-axis extent of the item at index.
	GetSize(index int) float64
	// GetOffset returns the main-axis offset at which the item at index
	// begins. GetOffset(0) == 0 and GetOffset(GetTotal()) == GetTotalSize().
	GetOffset(index int) float64
	// IndexAtOffset returns the index whose half-open offset interval
	// contains pos, clamped to [0, GetTotal()-1].
	IndexAtOffset(pos float64) int
	// GetTotalSize returns the sum of all item sizes.
	GetTotalSize() float64
	// GetTotal returns the item count the cache was built for.
	GetTotal() int
	// Rebuild recomputes the cache for a new item count. Callers must
	// invoke this whenever the item count changes.
	Rebuild(newTotal int)
	// IsVariable reports whether items may have differing sizes (true for
	// the variable-function and measured modes, false for fixed).
	IsVariable() bool
}

// clampNonNegative applies the §4.9 failure-semantics rule: a non-finite or
// negative size is treated as zero and surfaced as a warning.
func clampNonNegative(log Logger, index int, size float64) float64 {
	if size < 0 || size-size != 0 { // size-size is NaN for NaN and ±Inf, catching both without importing math
		if log != nil {
			log.Warnf("sizecache: index %d produced invalid size %v, treating as 0", index, size)
		}
		return 0
	}
	return size
}

// ---- Fixed ----

// fixed implements Cache for a single uniform item size. Every operation is
// O(1) arithmetic.
type fixed struct {
	size  float64
	total int
}

// Fixed constructs a Cache where every item has the same main-axis size.
func Fixed(size float64, total int) Cache {
	if size < 0 || size != size {
		size = 0
	}
	return &fixed{size: size, total: total}
}

func (f *fixed) GetSize(index int) float64 {
	if index < 0 || index >= f.total {
		return 0
	}
	return f.size
}

func (f *fixed) GetOffset(index int) float64 {
	if index < 0 {
		index = 0
	}
	if index > f.total {
		index = f.total
	}
	return float64(index) * f.size
}

func (f *fixed) IndexAtOffset(pos float64) int {
	if f.total <= 0 {
		return 0
	}
	if f.size <= 0 {
		return f.total - 1
	}
	idx := int(pos / f.size)
	return clampIndex(idx, f.total)
}

func (f *fixed) GetTotalSize() float64 { return float64(f.total) * f.size }
func (f *fixed) GetTotal() int         { return f.total }
func (f *fixed) Rebuild(newTotal int)  { f.total = newTotal }
func (f *fixed) IsVariable() bool      { return false }

func clampIndex(idx, total int) int {
	if total <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx > total-1 {
		return total - 1
	}
	return idx
}

// ---- Variable (function-driven prefix sum) ----

// variable implements Cache over a pure SizeFunc. The prefix-sum array is
// fully rebuilt on Rebuild; GetOffset is then O(1) and IndexAtOffset is
// O(log n) via binary search.
type variable struct {
	fn     SizeFunc
	ctx    interface{}
	prefix []float64 // length total+1, prefix[i] == GetOffset(i)
	log    Logger
}

// Variable constructs a Cache driven by a pure index->size function. ctx is
// forwarded to fn on every call (e.g. a grid feature's column width); it may
// be nil.
func Variable(fn SizeFunc, total int, ctx interface{}, log Logger) Cache {
	if log == nil {
		log = noopLogger{}
	}
	v := &variable{fn: fn, ctx: ctx, log: log}
	v.Rebuild(total)
	return v
}

func (v *variable) Rebuild(newTotal int) {
	if newTotal < 0 {
		newTotal = 0
	}
	prefix := make([]float64, newTotal+1)
	for i := 0; i < newTotal; i++ {
		size := clampNonNegative(v.log, i, v.fn(i, v.ctx))
		prefix[i+1] = prefix[i] + size
	}
	v.prefix = prefix
}

func (v *variable) GetTotal() int { return len(v.prefix) - 1 }

func (v *variable) GetSize(index int) float64 {
	total := v.GetTotal()
	if index < 0 || index >= total {
		return 0
	}
	return v.prefix[index+1] - v.prefix[index]
}

func (v *variable) GetOffset(index int) float64 {
	total := v.GetTotal()
	if index < 0 {
		index = 0
	}
	if index > total {
		index = total
	}
	return v.prefix[index]
}

func (v *variable) GetTotalSize() float64 {
	if len(v.prefix) == 0 {
		return 0
	}
	return v.prefix[len(v.prefix)-1]
}

// IndexAtOffset performs a binary search over the prefix-sum array for the
// half-open interval [prefix[i], prefix[i+1]) containing pos.
func (v *variable) IndexAtOffset(pos float64) int {
	total := v.GetTotal()
	if total <= 0 {
		return 0
	}
	// sort.Search finds the smallest i such that prefix[i+1] > pos, which is
	// exactly the item whose interval contains pos.
	i := sort.Search(total, func(i int) bool {
		return v.prefix[i+1] > pos
	})
	return clampIndex(i, total)
}

func (v *variable) IsVariable() bool { return true }

// ---- Measured (Mode B) ----

// measured implements Cache for items that start at an estimated size and
// are corrected as the host measures them (e.g. via a ResizeObserver
// analog). The prefix sum is patched in place by the observed delta rather
// than fully rebuilt on every measurement.
type measured struct {
	estimate float64
	sizes    []float64 // per-index actual or estimated size
	observed []bool
	prefix   []float64 // length len(sizes)+1
	log      Logger
}

// Measured constructs a Cache for runtime-measured sizing. estimatedSize is
// used for every index until SetMeasured corrects it.
func Measured(estimatedSize float64, total int, log Logger) *MeasuredCache {
	if log == nil {
		log = noopLogger{}
	}
	m := &measured{estimate: estimatedSize, log: log}
	m.Rebuild(total)
	return &MeasuredCache{m: m}
}

// MeasuredCache is the public handle for the measured sizing mode. It
// exposes the Cache contract plus SetMeasured, the hook a host binding
// calls when it learns an item's real size.
type MeasuredCache struct{ m *measured }

func (mc *MeasuredCache) GetSize(index int) float64     { return mc.m.GetSize(index) }
func (mc *MeasuredCache) GetOffset(index int) float64   { return mc.m.GetOffset(index) }
func (mc *MeasuredCache) IndexAtOffset(pos float64) int { return mc.m.IndexAtOffset(pos) }
func (mc *MeasuredCache) GetTotalSize() float64         { return mc.m.GetTotalSize() }
func (mc *MeasuredCache) GetTotal() int                 { return mc.m.GetTotal() }
func (mc *MeasuredCache) Rebuild(newTotal int)          { mc.m.Rebuild(newTotal) }
func (mc *MeasuredCache) IsVariable() bool              { return true }

// SetMeasured records the true size of the item at index, patching the
// prefix sum by the delta in place (never a full rebuild). It returns the
// signed delta (newSize - oldSize) so the scroll controller can apply the
// scroll-anchor-drift correction described in spec.md §9: when the
// measurement is above the current scroll position, the caller should add
// delta to scrollPosition; when it is at or below, no adjustment is needed.
func (mc *MeasuredCache) SetMeasured(index int, size float64) (delta float64) {
	return mc.m.setMeasured(index, size)
}

func (m *measured) setMeasured(index int, size float64) float64 {
	if index < 0 || index >= len(m.sizes) {
		return 0
	}
	size = clampNonNegative(m.log, index, size)
	old := m.sizes[index]
	delta := size - old
	if delta == 0 {
		m.observed[index] = true
		return 0
	}
	m.sizes[index] = size
	m.observed[index] = true
	for i := index + 1; i < len(m.prefix); i++ {
		m.prefix[i] += delta
	}
	return delta
}

func (m *measured) Rebuild(newTotal int) {
	if newTotal < 0 {
		newTotal = 0
	}
	sizes := make([]float64, newTotal)
	observed := make([]bool, newTotal)
	// Preserve previously-observed sizes for indices that still exist;
	// newly-added indices start at the estimate.
	for i := range sizes {
		if i < len(m.sizes) && m.observed != nil && i < len(m.observed) && m.observed[i] {
			sizes[i] = m.sizes[i]
			observed[i] = true
		} else {
			sizes[i] = m.estimate
		}
	}
	prefix := make([]float64, newTotal+1)
	for i, s := range sizes {
		prefix[i+1] = prefix[i] + s
	}
	m.sizes = sizes
	m.observed = observed
	m.prefix = prefix
}

func (m *measured) GetTotal() int { return len(m.sizes) }

func (m *measured) GetSize(index int) float64 {
	if index < 0 || index >= len(m.sizes) {
		return 0
	}
	return m.sizes[index]
}

func (m *measured) GetOffset(index int) float64 {
	total := m.GetTotal()
	if index < 0 {
		index = 0
	}
	if index > total {
		index = total
	}
	return m.prefix[index]
}

func (m *measured) GetTotalSize() float64 {
	if len(m.prefix) == 0 {
		return 0
	}
	return m.prefix[len(m.prefix)-1]
}

func (m *measured) IndexAtOffset(pos float64) int {
	total := m.GetTotal()
	if total <= 0 {
		return 0
	}
	i := sort.Search(total, func(i int) bool {
		return m.prefix[i+1] > pos
	})
	return clampIndex(i, total)
}

func (m *measured) IsVariable() bool { return true }
