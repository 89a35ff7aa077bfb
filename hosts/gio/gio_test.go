package gio

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.sr.ht/~vlist/vlist/viewport"
)

func TestContainerFlushMovesStagedToAttached(t *testing.T) {
	c := &Container{}
	n := newNode()
	c.Stage(n)
	assert.Empty(t, c.attached)
	c.Flush()
	assert.Equal(t, []*Node{n}, c.attached)
	assert.Empty(t, c.staged)
}

func TestContainerDetachRemovesNode(t *testing.T) {
	c := &Container{}
	a, b := newNode(), newNode()
	c.Stage(a)
	c.Stage(b)
	c.Flush()
	c.Detach(a)
	assert.Equal(t, []*Node{b}, c.attached)
}

func TestNodePointUsesOrientationAxis(t *testing.T) {
	n := newNode()
	n.SetTransform(20, viewport.Vertical)
	assert.Equal(t, image.Pt(5, 20), n.point(5))

	n.SetTransform(20, viewport.Horizontal)
	assert.Equal(t, image.Pt(20, 5), n.point(5))
}

func TestNodeApplyRejectsNonWidgetContent(t *testing.T) {
	n := newNode()
	n.Apply("not a widget")
	assert.NotNil(t, n.widget)
}

func TestNativeScrollRoundTrips(t *testing.T) {
	s := &NativeScroll{}
	s.SetNativePosition(42)
	assert.Equal(t, 42.0, s.GetNativePosition())
}

func TestResolveWiresFixedExtents(t *testing.T) {
	scaffold, scroll, container := Resolve(600, 300)
	assert.Equal(t, 600.0, scaffold.MainSize())
	assert.Equal(t, 300.0, scaffold.CrossSize())
	assert.Same(t, scroll, scaffold.ScrollHost)
	assert.Same(t, container, scaffold.ItemsContainer)
	node := scaffold.NewNode()
	assert.NotNil(t, node)
}
