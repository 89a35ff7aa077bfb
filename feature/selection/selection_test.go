package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestController(mode Mode) *Controller {
	return &Controller{mode: mode, selected: make(map[int]bool), focused: -1, emit: func([]int, int) {}}
}

func TestSingleModeSelectionReplaces(t *testing.T) {
	c := newTestController(Single)
	c.Select(1)
	c.Select(2)
	assert.False(t, c.IsSelected(1))
	assert.True(t, c.IsSelected(2))
}

func TestMultiModeSelectionAccumulates(t *testing.T) {
	c := newTestController(Multi)
	c.Select(1)
	c.Select(2)
	assert.True(t, c.IsSelected(1))
	assert.True(t, c.IsSelected(2))
}

func TestToggleFlipsState(t *testing.T) {
	c := newTestController(Multi)
	c.Toggle(5)
	assert.True(t, c.IsSelected(5))
	c.Toggle(5)
	assert.False(t, c.IsSelected(5))
}

func TestClearRemovesAllSelections(t *testing.T) {
	c := newTestController(Multi)
	c.Select(1)
	c.Select(2)
	c.Clear()
	assert.False(t, c.IsSelected(1))
	assert.False(t, c.IsSelected(2))
}

func TestSelectMovesFocusToSelectedIndex(t *testing.T) {
	c := newTestController(Multi)
	c.Select(3)
	assert.True(t, c.IsFocused(3))
}

func TestFocusDoesNotChangeSelection(t *testing.T) {
	c := newTestController(Multi)
	c.Select(1)
	c.Focus(2)
	assert.True(t, c.IsSelected(1))
	assert.True(t, c.IsFocused(2))
	assert.False(t, c.IsSelected(2))
}

func TestRestoreIdsReplacesSelectionWithoutTouchingFocus(t *testing.T) {
	c := newTestController(Multi)
	c.Focus(7)
	c.restoreIds([]int{1, 2})
	assert.True(t, c.IsSelected(1))
	assert.True(t, c.IsSelected(2))
	assert.True(t, c.IsFocused(7))
}
