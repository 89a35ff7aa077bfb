package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vlist/vlist/viewport"
)

// newResizableTestConfig is newTestConfig, but MainSize reads from a
// pointer the test can mutate between renders, so resize/content-size
// handler firing can be exercised without a real host.
func newResizableTestConfig(items []string, mainSize *float64) Config[*testNode, string] {
	cfg := DefaultConfig[*testNode, string]()
	cfg.Items = items
	cfg.Item.Sizing = ItemSizing{Kind: SizeFixed, Fixed: 10}
	cfg.Item.Template = func(item string, index int, state interface{}) interface{} { return item }
	cfg.Orientation = viewport.Vertical
	container := &testContainer{}
	scrollHost := &testScroll{}
	cfg.Container = "#root"
	cfg.Resolve = func(interface{}) (*Scaffold[*testNode], error) {
		return &Scaffold[*testNode]{
			ScrollHost:     scrollHost,
			ItemsContainer: container,
			MainSize:       func() float64 { return *mainSize },
			CrossSize:      func() float64 { return 100 },
			NewNode:        newTestNode,
			ResetNode:      func(n *testNode) { n.attrs = map[string]string{}; n.classes = map[string]bool{}; n.content = nil },
			Detach:         func() {},
		}, nil
	}
	return cfg
}

func TestResizeHandlersFireOnContainerSizeChange(t *testing.T) {
	mainSize := 30.0
	l, err := New[*testNode, string](newResizableTestConfig([]string{"a", "b", "c", "d", "e"}, &mainSize))
	require.NoError(t, err)

	var gotWidth, gotHeight float64
	calls := 0
	l.ctx.ResizeHandlers = append(l.ctx.ResizeHandlers, func(width, height float64) {
		calls++
		gotWidth, gotHeight = width, height
	})

	mainSize = 60.0
	l.ctx.ForceRender()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 60.0, gotWidth)
	assert.Equal(t, 60.0, gotHeight)
}

func TestResizeHandlersDoNotFireWhenSizeIsUnchanged(t *testing.T) {
	mainSize := 30.0
	l, err := New[*testNode, string](newResizableTestConfig([]string{"a", "b", "c"}, &mainSize))
	require.NoError(t, err)

	calls := 0
	l.ctx.ResizeHandlers = append(l.ctx.ResizeHandlers, func(width, height float64) { calls++ })

	l.ctx.ForceRender()
	assert.Equal(t, 0, calls, "same container size must not be treated as a resize")
}

func TestContentSizeHandlersFireWhenTotalSizeChanges(t *testing.T) {
	mainSize := 30.0
	l, err := New[*testNode, string](newResizableTestConfig([]string{"a", "b"}, &mainSize))
	require.NoError(t, err)

	var gotTotal float64
	calls := 0
	l.ctx.ContentSizeHandlers = append(l.ctx.ContentSizeHandlers, func(totalSize float64) {
		calls++
		gotTotal = totalSize
	})

	l.AppendItems([]string{"c", "d"})

	assert.Equal(t, 1, calls)
	assert.Equal(t, l.ctx.SizeCache.GetTotalSize(), gotTotal)
}

func TestVelocityChangeGatesOnMaterialDelta(t *testing.T) {
	mainSize := 30.0
	l, err := New[*testNode, string](newResizableTestConfig(make([]string, 1000), &mainSize))
	require.NoError(t, err)

	var readings []float64
	l.On(EventVelocityChange, func(p interface{}) {
		readings = append(readings, p.(VelocityChangePayload).Velocity)
	})

	// Feed enough samples for the tracker to become reliable, advancing at
	// a steady rate so the velocity reading stabilizes.
	for i := 0; i < 10; i++ {
		l.RecordScroll(float64(i)*10, float64(i)*16)
	}
	require.NotEmpty(t, readings, "tracker should have become reliable and emitted at least once")
	firstCount := len(readings)

	// A further sample consistent with the same rate must not re-emit
	// (no material change from the last emitted reading).
	l.RecordScroll(10*10, 10*16)
	assert.Equal(t, firstCount, len(readings), "an unchanged velocity reading must not re-emit velocity:change")

	// A sharply different rate must emit again.
	l.RecordScroll(10*10+500, 10*16+16)
	assert.Greater(t, len(readings), firstCount, "a materially different velocity must emit again")
}
