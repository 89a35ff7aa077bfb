package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.sr.ht/~vlist/vlist/sizecache"
)

func fixedRows(rows int, size float64) sizecache.Cache {
	return sizecache.Fixed(size, rows)
}

func TestRowCountRoundsUp(t *testing.T) {
	assert.Equal(t, 4, rowCount(10, 3))
	assert.Equal(t, 3, rowCount(9, 3))
	assert.Equal(t, 0, rowCount(0, 3))
}

func TestGridCacheMapsItemsWithinRowToSameOffset(t *testing.T) {
	c := &gridCache{rows: fixedRows(3, 100), columns: 3, rowSize: 100, total: 7}
	assert.Equal(t, c.GetOffset(0), c.GetOffset(1))
	assert.Equal(t, c.GetOffset(0), c.GetOffset(2))
	assert.NotEqual(t, c.GetOffset(0), c.GetOffset(3))
}

func TestGridCacheIndexAtOffsetReturnsRowStart(t *testing.T) {
	c := &gridCache{rows: fixedRows(3, 100), columns: 3, rowSize: 100, total: 7}
	assert.Equal(t, 3, c.IndexAtOffset(100))
}
