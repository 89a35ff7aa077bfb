package async

import (
	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
)

// Feature installs a Manager as the list's data.Manager and wires its
// viewport tracking and invalidation into the Context, per spec.md §4.8's
// priority-20 async slot (runs after layout, before everything that reads
// item data).
func Feature[N render.Node, T any](cfg Config[T], initial []T) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "async",
		Priority: vlist.PriorityAsync,
		Setup: func(ctx *vlist.Context[N, T]) error {
			cfg.Invalidator = ctx.ForceRender
			mgr := New(cfg, initial)
			ctx.DataManager = mgr

			ctx.AfterScroll = append(ctx.AfterScroll, func(float64) {
				mgr.PollUpdates()
				mgr.SetViewport(ctx.State.VisibleRange.Start, ctx.State.VisibleRange.End)
			})
			ctx.DestroyHandlers = append(ctx.DestroyHandlers, mgr.Close)
			ctx.RegisterMethod("_asyncManager", mgr)
			return nil
		},
	}
}
