package term

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestRenderPadsShortTextToWidth(t *testing.T) {
	n := newNode()
	n.Apply(Cell{Text: "hi"})
	assert.Equal(t, "hi   ", n.Render(5))
}

func TestRenderTruncatesLongTextWithEllipsis(t *testing.T) {
	n := newNode()
	n.Apply(Cell{Text: "hello world"})
	out := n.Render(5)
	assert.Contains(t, out, "…")
	assert.LessOrEqual(t, runewidth.StringWidth(out), 5)
}

func TestContainerViewOrdersByRow(t *testing.T) {
	c := &Container{width: 10}
	a, b := newNode(), newNode()
	a.SetTransform(2, 0)
	a.Apply(Cell{Text: "second"})
	b.SetTransform(0, 0)
	b.Apply(Cell{Text: "first"})
	c.Stage(a)
	c.Stage(b)

	out := c.View()
	assert.Equal(t, "first     \nsecond    ", out)
}

func TestContainerDetachRemovesRow(t *testing.T) {
	c := &Container{width: 10}
	a := newNode()
	c.Stage(a)
	c.Detach(a)
	assert.Empty(t, c.attached)
}

func TestResolveWiresRowsAndColumns(t *testing.T) {
	scaffold, scroll, container := Resolve(20, 80)
	assert.Equal(t, 20.0, scaffold.MainSize())
	assert.Equal(t, 80.0, scaffold.CrossSize())
	assert.NotNil(t, scroll)
	assert.Equal(t, 80, container.width)
}
