package velocity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnreliableBeforeMinSamples(t *testing.T) {
	tr := New(CoreSampleCount, CoreMinReliable)
	tr.Record(0, 0)
	v, reliable := tr.Velocity()
	assert.False(t, reliable)
	assert.Equal(t, float64(0), v)
}

func TestReliableAfterMinSamples(t *testing.T) {
	tr := New(CoreSampleCount, CoreMinReliable)
	tr.Record(0, 0)
	tr.Record(100, 50)
	v, reliable := tr.Velocity()
	assert.True(t, reliable)
	assert.Equal(t, float64(2), v)
}

func TestRingBufferEvictsOldestSample(t *testing.T) {
	tr := New(3, 2)
	tr.Record(0, 0)
	tr.Record(10, 10)
	tr.Record(20, 20)
	tr.Record(30, 30) // evicts the (0,0) sample
	v, reliable := tr.Velocity()
	assert.True(t, reliable)
	// Oldest retained is now (10,10), newest is (30,30): (30-10)/(30-10) = 1
	assert.Equal(t, float64(1), v)
}

func TestExceedsRequiresReliableVelocity(t *testing.T) {
	tr := New(CoreSampleCount, CoreMinReliable)
	assert.False(t, tr.Exceeds(CancelVelocityThreshold))
	tr.Record(0, 0)
	tr.Record(1000, 10) // 100 px/ms
	assert.True(t, tr.Exceeds(CancelVelocityThreshold))
}

func TestZeroTimeDeltaIsUnreliable(t *testing.T) {
	tr := New(CoreSampleCount, CoreMinReliable)
	tr.Record(0, 5)
	tr.Record(10, 5)
	_, reliable := tr.Velocity()
	assert.False(t, reliable)
}
