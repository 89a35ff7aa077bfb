// Package grid implements fixed-column-count grid layout: N items share
// each row, so the visible index range must be computed from row offsets
// rather than per-item offsets directly (spec.md §4.8, summarized as a
// layout variant sharing the core's range/render seam).
package grid

import (
	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/rangemath"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/sizecache"
	"git.sr.ht/~vlist/vlist/viewport"
)

// Config configures the grid feature.
type Config struct {
	// Columns is the fixed number of items per row.
	Columns int
	// RowSize is the main-axis extent of one row.
	RowSize float64
}

// Feature installs grid range math at spec.md §4.8's priority-10 layout
// slot, replacing the default single-column rangeFn before any later
// feature observes ctx.State.VisibleRange.
func Feature[N render.Node, T any](cfg Config) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "grid",
		Priority: vlist.PriorityLayout,
		Setup: func(ctx *vlist.Context[N, T]) error {
			if cfg.Columns < 1 {
				cfg.Columns = 1
			}
			total := ctx.DataManager.GetItemCount()
			rowCache := sizecache.Fixed(cfg.RowSize, rowCount(total, cfg.Columns))
			ctx.SizeCache = &gridCache{rows: rowCache, columns: cfg.Columns, rowSize: cfg.RowSize, total: total}

			ctx.SetRenderFns(func(state *viewport.State, cache sizecache.Cache, overscan int) (visible, renderRange rangemath.Range) {
				gc := cache.(*gridCache)
				rowVisible := rangemath.VisibleRange(state.ScrollPosition, state.ContainerSize, gc.rows, rowCount(gc.total, gc.columns))
				itemVisible := rangemath.Range{Start: rowVisible.Start * gc.columns, End: min(rowVisible.End*gc.columns, gc.total)}
				itemRender := rangemath.ApplyOverscan(itemVisible, overscan*gc.columns, gc.total)
				return itemVisible, itemRender
			}, nil)
			return nil
		},
	}
}

func rowCount(total, columns int) int {
	if columns < 1 {
		columns = 1
	}
	return (total + columns - 1) / columns
}

// gridCache adapts a per-row Cache into the per-item Cache the renderer and
// rest of the engine expect: GetOffset/GetSize resolve an item index to its
// row's offset/size; every item in a row shares that row's extent.
type gridCache struct {
	rows    sizecache.Cache
	columns int
	rowSize float64
	total   int
}

func (g *gridCache) row(index int) int { return index / g.columns }

func (g *gridCache) GetSize(index int) float64 {
	if index < 0 || index >= g.total {
		return 0
	}
	return g.rowSize
}

func (g *gridCache) GetOffset(index int) float64 {
	return g.rows.GetOffset(g.row(index))
}

func (g *gridCache) IndexAtOffset(pos float64) int {
	return g.rows.IndexAtOffset(pos) * g.columns
}

func (g *gridCache) GetTotalSize() float64 { return g.rows.GetTotalSize() }
func (g *gridCache) GetTotal() int         { return g.total }

func (g *gridCache) Rebuild(newTotal int) {
	g.total = newTotal
	g.rows.Rebuild(rowCount(newTotal, g.columns))
}

func (g *gridCache) IsVariable() bool { return false }
