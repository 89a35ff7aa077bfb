package scrollbar

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestComputeClampsThumbWithinTrack(t *testing.T) {
	ctrl := &Controller{cfg: Config{IdleColor: colorful.Color{R: 0, G: 0, B: 0}, ActiveColor: colorful.Color{R: 1, G: 1, B: 1}, VelocityFullBlend: 2}}

	geo := ctrl.Compute(950, 100, 1000, 0)
	assert.InDelta(t, 0.9, geo.Start+0, 0.01)
	assert.LessOrEqual(t, geo.Start+geo.Length, 1.0+1e-9)
}

func TestComputeBlendsTowardActiveWithVelocity(t *testing.T) {
	ctrl := &Controller{cfg: Config{IdleColor: colorful.Color{R: 0, G: 0, B: 0}, ActiveColor: colorful.Color{R: 1, G: 1, B: 1}, VelocityFullBlend: 2}}

	idle := ctrl.Compute(0, 100, 1000, 0)
	fast := ctrl.Compute(0, 100, 1000, 10)
	assert.NotEqual(t, idle.Color, fast.Color)
}
