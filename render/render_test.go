package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vlist/vlist/pool"
	"git.sr.ht/~vlist/vlist/rangemath"
	"git.sr.ht/~vlist/vlist/viewport"
)

type fakeNode struct {
	attrs       map[string]string
	classes     map[string]bool
	offset      float64
	orientation viewport.Orientation
	content     interface{}
	applyCount  int
}

func newFakeNode() *fakeNode {
	return &fakeNode{attrs: map[string]string{}, classes: map[string]bool{}}
}

func (n *fakeNode) SetAttr(key, value string)                                { n.attrs[key] = value }
func (n *fakeNode) SetClass(name string, on bool)                            { n.classes[name] = on }
func (n *fakeNode) SetTransform(offset float64, o viewport.Orientation)     { n.offset, n.orientation = offset, o }
func (n *fakeNode) Apply(content interface{})                               { n.content = content; n.applyCount++ }

type fakeContainer struct {
	staged   []*fakeNode
	attached []*fakeNode
	detached []*fakeNode
}

func (c *fakeContainer) Stage(n *fakeNode) { c.staged = append(c.staged, n) }
func (c *fakeContainer) Flush() {
	c.attached = append(c.attached, c.staged...)
	c.staged = nil
}
func (c *fakeContainer) Detach(n *fakeNode) { c.detached = append(c.detached, n) }

type item struct {
	ID   string
	Text string
}

func newTestRenderer(t *testing.T) (*Renderer[*fakeNode, item], *fakeContainer, map[int]item) {
	t.Helper()
	items := map[int]item{}
	container := &fakeContainer{}
	p := pool.New(100, func() *fakeNode { return newFakeNode() }, func(n *fakeNode) {
		n.attrs = map[string]string{}
		n.classes = map[string]bool{}
		n.content = nil
		n.applyCount = 0
	})
	r := New(Config[*fakeNode, item]{
		Pool:      p,
		Container: container,
		Template: func(it item, index int, state interface{}) interface{} {
			return it.Text
		},
		IDOf: func(it item) interface{} { return it.ID },
	})
	getItem := func(index int) (item, bool) {
		it, ok := items[index]
		return it, ok
	}
	_ = getItem
	return r, container, items
}

func offsetFn(size float64) OffsetFunc {
	return func(i int) float64 { return float64(i) * size }
}

func TestMaterializeSetsIdentityAndTransform(t *testing.T) {
	r, container, items := newTestRenderer(t)
	items[0] = item{ID: "a", Text: "hello"}
	items[1] = item{ID: "b", Text: "world"}

	getItem := func(index int) (item, bool) { it, ok := items[index]; return it, ok }
	r.Render(rangemath.Range{Start: 0, End: 2}, getItem, offsetFn(10), viewport.Vertical, nil, nil)

	require.Equal(t, 2, r.TrackedCount())
	el, ok := r.ElementFor(0)
	require.True(t, ok)
	assert.Equal(t, "0", el.attrs["data-index"])
	assert.Equal(t, float64(0), el.offset)
	assert.Equal(t, "hello", el.content)
	assert.Len(t, container.attached, 2, "one fragment append regardless of item count")
}

func TestIdempotentRenderCausesNoReapply(t *testing.T) {
	r, _, items := newTestRenderer(t)
	items[0] = item{ID: "a", Text: "hello"}
	getItem := func(index int) (item, bool) { it, ok := items[index]; return it, ok }

	r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	el, _ := r.ElementFor(0)
	before := el.applyCount

	r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	assert.Equal(t, before, el.applyCount, "re-render with no id/offset/selection change must not re-apply the template")
}

func TestIDChangeTriggersReapply(t *testing.T) {
	r, _, items := newTestRenderer(t)
	items[0] = item{ID: "a", Text: "hello"}
	getItem := func(index int) (item, bool) { it, ok := items[index]; return it, ok }
	r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, nil, nil)

	items[0] = item{ID: "changed", Text: "new text"}
	r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, nil, nil)

	el, _ := r.ElementFor(0)
	assert.Equal(t, "new text", el.content)
	assert.Equal(t, 2, el.applyCount)
}

func TestSelectionChangeTogglesClassWithoutReapply(t *testing.T) {
	r, _, items := newTestRenderer(t)
	items[0] = item{ID: "a", Text: "hello"}
	getItem := func(index int) (item, bool) { it, ok := items[index]; return it, ok }
	selected := map[int]bool{}

	r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, func(i int) bool { return selected[i] }, nil)
	el, _ := r.ElementFor(0)
	assert.False(t, el.classes["vlist-item--selected"])
	applyBefore := el.applyCount

	selected[0] = true
	r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, func(i int) bool { return selected[i] }, nil)
	assert.True(t, el.classes["vlist-item--selected"])
	assert.Equal(t, applyBefore, el.applyCount, "selection toggling must not re-apply the template")
}

func TestMissingItemRendersPlaceholder(t *testing.T) {
	r, _, items := newTestRenderer(t)
	_ = items
	getItem := func(index int) (item, bool) { return item{}, false }
	r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	el, ok := r.ElementFor(0)
	require.True(t, ok)
	assert.True(t, el.classes["vlist-item--placeholder"])
	assert.Equal(t, DefaultMaskCharacter, el.content)
}

func TestReleaseGraceRetainsSameElementPointer(t *testing.T) {
	r, _, items := newTestRenderer(t)
	for i := 0; i < 5; i++ {
		items[i] = item{ID: fmt.Sprintf("id%d", i), Text: fmt.Sprintf("text%d", i)}
	}
	getItem := func(index int) (item, bool) { it, ok := items[index]; return it, ok }

	r.Render(rangemath.Range{Start: 0, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	original, ok := r.ElementFor(2)
	require.True(t, ok)

	// Item 2 leaves the range for DefaultReleaseGrace frames (no more)...
	r.Render(rangemath.Range{Start: 3, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	r.Render(rangemath.Range{Start: 3, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	// ...and returns within the grace window.
	r.Render(rangemath.Range{Start: 0, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)

	returned, ok := r.ElementFor(2)
	require.True(t, ok)
	assert.Same(t, original, returned, "an item returning within RELEASE_GRACE frames must reuse the same element")
}

func TestReleaseAfterGraceFreesElementToPool(t *testing.T) {
	r, container, items := newTestRenderer(t)
	for i := 0; i < 5; i++ {
		items[i] = item{ID: fmt.Sprintf("id%d", i)}
	}
	getItem := func(index int) (item, bool) { it, ok := items[index]; return it, ok }

	r.Render(rangemath.Range{Start: 0, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	require.Equal(t, 5, r.TrackedCount())

	// Leave item 2 outside the range for longer than DefaultReleaseGrace.
	for i := 0; i < DefaultReleaseGrace+2; i++ {
		r.Render(rangemath.Range{Start: 3, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	}
	_, ok := r.ElementFor(2)
	assert.False(t, ok)
	assert.NotEmpty(t, container.detached)
}

func TestTickExpiresStaleEntriesWithoutARender(t *testing.T) {
	r, container, items := newTestRenderer(t)
	for i := 0; i < 5; i++ {
		items[i] = item{ID: fmt.Sprintf("id%d", i)}
	}
	getItem := func(index int) (item, bool) { it, ok := items[index]; return it, ok }

	r.Render(rangemath.Range{Start: 0, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	r.Render(rangemath.Range{Start: 3, End: 5}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	require.Equal(t, 5, r.TrackedCount(), "item 2 still within grace after leaving range once")

	for i := 0; i < DefaultReleaseGrace+2; i++ {
		r.Tick()
	}

	_, ok := r.ElementFor(2)
	assert.False(t, ok, "Tick alone must advance the frame counter past the grace window")
	assert.NotEmpty(t, container.detached)
}

func TestPanickingTemplateReleasesElementAndRepanics(t *testing.T) {
	container := &fakeContainer{}
	p := pool.New(100, func() *fakeNode { return newFakeNode() }, func(n *fakeNode) {})
	r := New(Config[*fakeNode, item]{
		Pool:      p,
		Container: container,
		Template: func(it item, index int, state interface{}) interface{} {
			panic("template blew up")
		},
	})
	getItem := func(index int) (item, bool) { return item{ID: "a"}, true }

	assert.Panics(t, func() {
		r.Render(rangemath.Range{Start: 0, End: 1}, getItem, offsetFn(10), viewport.Vertical, nil, nil)
	})
	assert.Equal(t, 1, p.Size(), "the node must be returned to the pool even though the template panicked")
	assert.Equal(t, 0, r.TrackedCount())
}
