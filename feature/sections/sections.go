// Package sections adds sticky section headers to a list: items are
// grouped by a caller-supplied key function, and the header for the
// section containing the first visible item is reported as "sticky" via
// the GetStickyHeader method (spec.md §4.8). Boundaries are rebuilt from an
// AfterScroll hook when the item count changes; the feature does not alter
// the range or render path.
package sections

import (
	"sort"

	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
)

// KeyFunc returns the section key for the item at index. Equal adjacent
// keys belong to the same section.
type KeyFunc[T any] func(item T, index int) interface{}

// Config configures the sections feature.
type Config[T any] struct {
	KeyOf KeyFunc[T]
}

// boundaries holds, for a given item count, the index of the first item in
// each section (sorted ascending, as sort.Search requires).
type boundaries struct {
	starts []int
	keys   []interface{}
}

// Controller exposes sticky-header lookups to the host binding.
type Controller[T any] struct {
	b boundaries
}

// GetStickyHeader returns the index of the first item in the section that
// contains visibleStart, found via binary search over section start
// indices (spec.md's sticky-header mention: "summarized, not fully
// specified" beyond needing an efficient lookup as the list scrolls).
func (c *Controller[T]) GetStickyHeader(visibleStart int) (headerIndex int, key interface{}, ok bool) {
	if len(c.b.starts) == 0 {
		return 0, nil, false
	}
	// sort.Search finds the first boundary start > visibleStart; the
	// section containing visibleStart starts one boundary earlier.
	i := sort.Search(len(c.b.starts), func(i int) bool {
		return c.b.starts[i] > visibleStart
	})
	if i == 0 {
		return 0, nil, false
	}
	i--
	return c.b.starts[i], c.b.keys[i], true
}

func buildBoundaries[T any](getItem func(int) (T, bool), total int, keyOf KeyFunc[T]) boundaries {
	var b boundaries
	var lastKey interface{}
	haveLast := false
	for i := 0; i < total; i++ {
		item, ok := getItem(i)
		if !ok {
			continue
		}
		key := keyOf(item, i)
		if !haveLast || key != lastKey {
			b.starts = append(b.starts, i)
			b.keys = append(b.keys, key)
			lastKey = key
			haveLast = true
		}
	}
	return b
}

// Feature installs section-boundary tracking at spec.md §4.8's priority-60
// slot, after selection (so a click handler sees the already-resolved
// item) and before scrollbar/snapshot (which may want section markers).
func Feature[N render.Node, T any](cfg Config[T]) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "sections",
		Priority: vlist.PrioritySections,
		Setup: func(ctx *vlist.Context[N, T]) error {
			ctrl := &Controller[T]{}
			rebuild := func() {
				ctrl.b = buildBoundaries(ctx.DataManager.GetItem, ctx.DataManager.GetItemCount(), cfg.KeyOf)
			}
			rebuild()
			lastCount := ctx.DataManager.GetItemCount()
			ctx.AfterScroll = append(ctx.AfterScroll, func(float64) {
				// A count change is a cheap, conservative signal that section
				// boundaries may have shifted; per-key churn within a stable
				// count is not detected here.
				if n := ctx.DataManager.GetItemCount(); n != lastCount {
					lastCount = n
					rebuild()
				}
			})
			ctx.RegisterMethod("sections.Rebuild", rebuild)
			ctx.RegisterMethod("sections.GetStickyHeader", ctrl.GetStickyHeader)
			return nil
		},
	}
}
