// Package gio is the reference Gio (gioui.org) host binding: it implements
// render.Node, render.Container, scroll.Native, and vlist.Scaffold over a
// gioui.org/layout.Context, mirroring the way the teacher's list/element.go
// binds an Element to a persistent Gio widget that gets repositioned and
// re-laid-out rather than recreated every frame.
package gio

import (
	"image"

	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/viewport"
)

// Widget is the content a Template produces for this host: a Gio layout
// function plus the dimensions it wants, matching gioui.org's own
// layout.Widget convention.
type Widget func(gtx layout.Context) layout.Dimensions

// Node implements render.Node over a stored Widget. Apply replaces the
// Widget (there is no cheaper "patch" primitive in immediate-mode Gio) and
// Draw calls it each frame; position is applied at draw time via a stored
// offset.
type Node struct {
	attrs   map[string]string
	classes map[string]bool

	offset      float64
	orientation viewport.Orientation

	widget Widget
	size   image.Point
}

func newNode() *Node {
	return &Node{attrs: map[string]string{}, classes: map[string]bool{}}
}

func (n *Node) SetAttr(key, value string) { n.attrs[key] = value }
func (n *Node) SetClass(name string, on bool) { n.classes[name] = on }

func (n *Node) SetTransform(offset float64, orientation viewport.Orientation) {
	n.offset = offset
	n.orientation = orientation
}

// Apply stores the widget content has to produce; Draw performs the actual
// gio layout call at the node's current transform.
func (n *Node) Apply(content interface{}) {
	w, ok := content.(Widget)
	if !ok {
		// A non-Widget template result (e.g. a raw string placeholder) is
		// rendered as nothing — host bindings that want placeholder text
		// should return a Widget from PlaceholderContent too.
		n.widget = func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }
		return
	}
	n.widget = w
}

func (n *Node) reset() {
	n.attrs = map[string]string{}
	n.classes = map[string]bool{}
	n.widget = nil
}

// Draw lays n out at its stored offset, translated along orientation's
// axis, and records a pointer input op tagged with this node so click
// handlers can resolve back to n's data-index attribute.
func (n *Node) Draw(gtx layout.Context, crossAxis int) layout.Dimensions {
	defer op.Offset(n.point(crossAxis)).Push(gtx.Ops).Pop()
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	pointer.InputOp{Tag: n, Types: pointer.Press}.Add(gtx.Ops)
	area.Pop()
	if n.widget == nil {
		return layout.Dimensions{}
	}
	return n.widget(gtx)
}

func (n *Node) point(crossAxis int) image.Point {
	px := unit.Dp(n.offset).Ceil()
	if n.orientation == viewport.Horizontal {
		return image.Pt(px, crossAxis)
	}
	return image.Pt(crossAxis, px)
}

// Container batches staged nodes for a single Draw pass per frame,
// matching render.Container's "one reflow per frame" contract.
type Container struct {
	staged   []*Node
	attached []*Node
}

func (c *Container) Stage(n *Node) { c.staged = append(c.staged, n) }

func (c *Container) Flush() {
	c.attached = append(c.attached, c.staged...)
	c.staged = nil
}

func (c *Container) Detach(n *Node) {
	for i, a := range c.attached {
		if a == n {
			c.attached = append(c.attached[:i], c.attached[i+1:]...)
			return
		}
	}
}

// Draw lays out every attached node in attachment order, at their stored
// transforms. Called once per frame from the host's main Layout.
func (c *Container) Draw(gtx layout.Context) {
	for _, n := range c.attached {
		n.Draw(gtx, 0)
	}
}

var _ render.Container[*Node] = (*Container)(nil)

// NativeScroll implements scroll.Native over a gio widget.List-like
// position held in Dp, matching the way the teacher tracks scroll offset
// as a persistent field on its own list.Manager rather than querying Gio
// for it every frame (Gio itself has no ambient scroll position to read).
type NativeScroll struct {
	pos float64
}

func (s *NativeScroll) GetNativePosition() float64  { return s.pos }
func (s *NativeScroll) SetNativePosition(pos float64) { s.pos = pos }

// Resolve builds a vlist.Scaffold[*Node] bound to a fixed-size viewport.
// The returned MainSize/CrossSize are fixed at build time since Gio has no
// independent container resize callback; a host embedding this in a
// resizable window should rebuild the scaffold (or mutate the returned
// pointers' backing values) on its own resize handling.
func Resolve(mainSize, crossSize unit.Dp) (*vlist.Scaffold[*Node], *NativeScroll, *Container) {
	scroll := &NativeScroll{}
	container := &Container{}
	scaffold := &vlist.Scaffold[*Node]{
		ScrollHost:     scroll,
		ItemsContainer: container,
		MainSize:       func() float64 { return float64(mainSize) },
		CrossSize:      func() float64 { return float64(crossSize) },
		NewNode:        newNode,
		ResetNode:      (*Node).reset,
		Detach:         func() {},
	}
	return scaffold, scroll, container
}
