// Package scrollbar renders a custom scrollbar thumb whose color blends
// between an idle and an active tone based on scroll velocity, and whose
// extent/position accounts for compressed-mode compression ratio (spec.md
// §4.6, §4.8).
package scrollbar

import (
	"github.com/lucasb-eyer/go-colorful"

	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
)

// Config configures thumb geometry and coloring.
type Config struct {
	IdleColor   colorful.Color
	ActiveColor colorful.Color
	// VelocityFullBlend is the px/ms velocity at which the thumb reaches
	// ActiveColor; velocities above it clamp to ActiveColor.
	VelocityFullBlend float64
}

// Geometry is the thumb's current position and extent, both normalized to
// [0,1] of the track's main-axis length.
type Geometry struct {
	Start, Length float64
	Color         colorful.Color
}

// Controller computes scrollbar geometry on demand.
type Controller struct {
	cfg Config
}

// Compute derives the thumb geometry from the current viewport state
// (spec.md §4.6: the thumb must track the *logical* position in
// compressed mode, not the host's compressed native position).
func (c *Controller) Compute(scrollPos, containerSize, totalSize, velocityPxMs float64) Geometry {
	if totalSize <= 0 {
		return Geometry{Length: 1, Color: c.cfg.IdleColor}
	}
	length := containerSize / totalSize
	if length > 1 {
		length = 1
	}
	maxStart := 1 - length
	start := scrollPos / totalSize
	if start < 0 {
		start = 0
	}
	if start > maxStart {
		start = maxStart
	}
	return Geometry{Start: start, Length: length, Color: c.blend(velocityPxMs)}
}

func (c *Controller) blend(velocityPxMs float64) colorful.Color {
	full := c.cfg.VelocityFullBlend
	if full <= 0 {
		full = 2.0
	}
	if velocityPxMs < 0 {
		velocityPxMs = -velocityPxMs
	}
	t := velocityPxMs / full
	if t > 1 {
		t = 1
	}
	return c.cfg.IdleColor.BlendLuv(c.cfg.ActiveColor, t)
}

// Feature installs the scrollbar controller at spec.md §4.8's priority-70
// slot, after sections (whose sticky header may affect the track's
// effective start) and before snapshot.
func Feature[N render.Node, T any](cfg Config) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "scrollbar",
		Priority: vlist.PriorityScrollbar,
		Setup: func(ctx *vlist.Context[N, T]) error {
			ctrl := &Controller{cfg: cfg}
			lastVelocity := 0.0
			ctx.Emitter.On(vlist.EventVelocityChange, func(payload interface{}) {
				if p, ok := payload.(vlist.VelocityChangePayload); ok && p.Reliable {
					lastVelocity = p.Velocity
				}
			})
			ctx.RegisterMethod("scrollbar.Compute", func() Geometry {
				return ctrl.Compute(ctx.State.ScrollPosition, ctx.State.ContainerSize, ctx.State.ActualSize, lastVelocity)
			})
			return nil
		},
	}
}
