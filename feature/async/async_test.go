package async

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadsMoreWhenViewportReachesEdge(t *testing.T) {
	loaded := make(chan Direction, 4)
	mgr := New(Config[int]{
		MaxWindow: 1000,
		Loader: func(dir Direction, edge int) []int {
			loaded <- dir
			if dir == After {
				return []int{edge + 1, edge + 2}
			}
			return nil
		},
	}, []int{1, 2, 3})

	// SetViewport's request send races the background goroutine's startup;
	// retry until it lands rather than assuming the first attempt wins.
	deadlineReq := time.Now().Add(time.Second)
	for time.Now().Before(deadlineReq) {
		mgr.SetViewport(0, 3) // end == len(items), should trigger an After load
		select {
		case dir := <-loaded:
			assert.Equal(t, After, dir)
			goto requested
		default:
			time.Sleep(time.Millisecond)
		}
	}
	t.Fatal("loader was never invoked")
requested:

	// Give the background goroutine a moment to push its update.
	deadline := time.Now().Add(time.Second)
	for mgr.GetItemCount() == 3 && time.Now().Before(deadline) {
		mgr.PollUpdates()
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 5, mgr.GetItemCount())
	mgr.Close()
}

func TestInMemoryMutationsQueueChanges(t *testing.T) {
	mgr := New(Config[int]{Loader: func(Direction, int) []int { return nil }}, []int{1, 2, 3})
	defer mgr.Close()

	mgr.AppendItems([]int{4})
	mgr.PrependItems([]int{0})
	mgr.RemoveItem(0)

	changes := mgr.Changes()
	require.Len(t, changes, 3)
	assert.Empty(t, mgr.Changes(), "Changes must drain the queue")
}

func TestGetItemOutOfRange(t *testing.T) {
	mgr := New(Config[int]{Loader: func(Direction, int) []int { return nil }}, []int{1, 2})
	defer mgr.Close()

	_, ok := mgr.GetItem(5)
	assert.False(t, ok)
	item, ok := mgr.GetItem(1)
	require.True(t, ok)
	assert.Equal(t, 2, item)
}
