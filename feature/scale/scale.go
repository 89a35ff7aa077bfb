// Package scale exposes tuning for the compressed-mode scroll
// controller's fine-motion band, the "empirical constant" spec.md §9 calls
// out as something implementers should make configurable.
package scale

import (
	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/scroll"
)

// Config configures the scale feature.
type Config struct {
	// FineMotionBand overrides the default fraction of the native scroll
	// range the controller keeps the thumb within during wheel-driven fine
	// motion before scheduling a recenter. Ignored (and a no-op) when the
	// controller is running in native (uncompressed) mode.
	FineMotionBand float64
}

// Feature installs fine-motion tuning at spec.md §4.8's priority-30 slot,
// right after async (which may have changed the item count and therefore
// whether the controller is compressed at all) and before selection.
func Feature[N render.Node, T any](cfg Config) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "scale",
		Priority: vlist.PriorityScale,
		Setup: func(ctx *vlist.Context[N, T]) error {
			if cfg.FineMotionBand <= 0 {
				return nil
			}
			if fm, ok := ctx.ScrollController.(scroll.FineMotion); ok {
				fm.SetFineMotionBand(cfg.FineMotionBand)
			}
			return nil
		},
	}
}
