// Package term is the reference terminal host binding, built on
// bubbletea/lipgloss/go-runewidth. A terminal's visible row count is tiny
// compared to a large logical item count, so this host is the easiest way
// to exercise the scroll controller's compressed mode in a demo: set
// Config.Scroll.VirtualCap to a small number of rows instead of
// scroll.MaxVirtualSize.
package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/viewport"
)

// Cell is the content a Template produces: a single rendered line, styled
// with lipgloss. Node.Render truncates/pads it to the width it is given via
// go-runewidth, the same way bubbles' list/table components keep
// fixed-width cells aligned.
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// Node implements render.Node as one terminal row. Rows are addressed by
// their offset (row index) rather than a pixel position; Render formats the
// row's content, and Container.View places it by its stored row number.
type Node struct {
	attrs   map[string]string
	classes map[string]bool

	row int
	cell Cell
}

func newNode() *Node {
	return &Node{attrs: map[string]string{}, classes: map[string]bool{}}
}

func (n *Node) SetAttr(key, value string) { n.attrs[key] = value }
func (n *Node) SetClass(name string, on bool) { n.classes[name] = on }

func (n *Node) SetTransform(offset float64, orientation viewport.Orientation) {
	n.row = int(offset)
}

func (n *Node) Apply(content interface{}) {
	switch c := content.(type) {
	case Cell:
		n.cell = c
	case string:
		n.cell = Cell{Text: c}
	default:
		n.cell = Cell{}
	}
}

func (n *Node) reset() {
	n.attrs = map[string]string{}
	n.classes = map[string]bool{}
	n.cell = Cell{}
}

// Render formats the node's content padded/truncated to width columns,
// using go-runewidth for correct East-Asian/wide-rune column accounting.
func (n *Node) Render(width int) string {
	text := n.cell.Text
	if n.classes["vlist-item--selected"] {
		text = n.cell.Style.Reverse(true).Render(text)
	} else {
		text = n.cell.Style.Render(text)
	}
	w := runewidth.StringWidth(text)
	if w > width {
		return runewidth.Truncate(text, width, "…")
	}
	if w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

// Container batches attached rows for a single frame's View() call,
// matching render.Container's "one reflow per frame" contract. Rows are
// kept in staging order; View sorts a copy by row before rendering.
type Container struct {
	width    int
	attached []*Node
}

func (c *Container) Stage(n *Node) { c.attached = append(c.attached, n) }
func (c *Container) Flush()        {}

func (c *Container) Detach(n *Node) {
	for i, a := range c.attached {
		if a == n {
			c.attached = append(c.attached[:i], c.attached[i+1:]...)
			return
		}
	}
}

// View renders every attached node ordered by row, one per terminal line.
func (c *Container) View() string {
	ordered := append([]*Node(nil), c.attached...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].row < ordered[j-1].row; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	lines := make([]string, len(ordered))
	for i, n := range ordered {
		lines[i] = n.Render(c.width)
	}
	return strings.Join(lines, "\n")
}

var _ render.Container[*Node] = (*Container)(nil)

// NativeScroll implements scroll.Native as a plain row counter — a
// terminal has no independent native scrollbar to reconcile against, so
// this simply holds whatever the scroll controller (compressed, given a
// small VirtualCap) last wrote.
type NativeScroll struct {
	row float64
}

func (s *NativeScroll) GetNativePosition() float64   { return s.row }
func (s *NativeScroll) SetNativePosition(pos float64) { s.row = pos }

// Resolve builds a vlist.Scaffold[*Node] for a terminal viewport of the
// given row/column extent.
func Resolve(rows, cols int) (*vlist.Scaffold[*Node], *NativeScroll, *Container) {
	scroll := &NativeScroll{}
	container := &Container{width: cols}
	scaffold := &vlist.Scaffold[*Node]{
		ScrollHost:     scroll,
		ItemsContainer: container,
		MainSize:       func() float64 { return float64(rows) },
		CrossSize:      func() float64 { return float64(cols) },
		NewNode:        newNode,
		ResetNode:      (*Node).reset,
		Detach:         func() {},
	}
	return scaffold, scroll, container
}
