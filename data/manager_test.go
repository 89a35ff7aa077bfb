package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string
	Name string
}

func TestGetItemBoundsChecked(t *testing.T) {
	m := NewInMemory([]row{{ID: "a"}, {ID: "b"}}, nil)
	_, ok := m.GetItem(5)
	assert.False(t, ok)
	item, ok := m.GetItem(1)
	require.True(t, ok)
	assert.Equal(t, "b", item.ID)
}

func TestSetItemsReplacesByReferenceAndRecordsChange(t *testing.T) {
	backing := []row{{ID: "a"}}
	m := NewInMemory[row](nil, nil)
	m.SetItems(backing)
	assert.Equal(t, 1, m.GetItemCount())
	assert.Equal(t, []Change{{Kind: ChangeReplace}}, m.Changes())
	// Draining Changes() must clear the queue.
	assert.Empty(t, m.Changes())
}

func TestAppendPreservesExistingOrder(t *testing.T) {
	m := NewInMemory([]row{{ID: "a"}}, nil)
	m.AppendItems([]row{{ID: "b"}, {ID: "c"}})
	assert.Equal(t, 3, m.GetItemCount())
	item, _ := m.GetItem(0)
	assert.Equal(t, "a", item.ID)
	last, _ := m.GetItem(2)
	assert.Equal(t, "c", last.ID)
	assert.Equal(t, []Change{{Kind: ChangeAppend}}, m.Changes())
}

func TestPrependShiftsExistingIndices(t *testing.T) {
	m := NewInMemory([]row{{ID: "orig"}}, nil)
	m.PrependItems([]row{{ID: "new"}})
	first, _ := m.GetItem(0)
	second, _ := m.GetItem(1)
	assert.Equal(t, "new", first.ID)
	assert.Equal(t, "orig", second.ID)
	assert.Equal(t, []Change{{Kind: ChangePrepend}}, m.Changes())
}

func TestUpdateItemUsesUpdaterAndRecordsIndex(t *testing.T) {
	m := NewInMemory([]row{{ID: "a", Name: "old"}}, func(r row, patch Patch) row {
		r.Name = patch.(string)
		return r
	})
	m.UpdateItem(0, "new")
	item, _ := m.GetItem(0)
	assert.Equal(t, "new", item.Name)
	assert.Equal(t, []Change{{Kind: ChangeUpdate, Index: 0}}, m.Changes())
}

func TestRemoveItemShiftsLaterIndicesDown(t *testing.T) {
	m := NewInMemory([]row{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)
	m.RemoveItem(1)
	assert.Equal(t, 2, m.GetItemCount())
	item, _ := m.GetItem(1)
	assert.Equal(t, "c", item.ID)
	assert.Equal(t, []Change{{Kind: ChangeRemove, Index: 1}}, m.Changes())
}
