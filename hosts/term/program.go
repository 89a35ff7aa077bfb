package term

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/rangemath"
)

// KeyMap mirrors the up/down/pgup/pgdn binding set a bubbletea list view
// conventionally exposes, the same shape HamStudy-kubewatch's app.go keymap
// uses for its resource list.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	PageUp key.Binding
	PageDn key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the binding set Program starts with; callers may
// construct their own KeyMap to rebind before passing it to NewProgram.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Program is a minimal tea.Model that drives a *vlist.List[*Node, T] inside
// a bubbletea event loop: key messages move the scroll position by a line
// or a page, tea.WindowSizeMsg records the new rows/columns, sets the
// container's width and scrolls back to the top (the Scaffold's MainSize
// keeps the extent Resolve gave it), and View() renders whatever the list's Container last staged. It exists
// so the terminal host binding is actually runnable as a program rather
// than just a Scaffold a caller wires up by hand.
type Program[T any] struct {
	list      *vlist.List[*Node, T]
	scroll    *NativeScroll
	container *Container
	keys      KeyMap
	rows      int
	cols      int
	lineSize  float64
}

// NewProgram wraps an already-built list and its Resolve output into a
// runnable tea.Model. lineSize is the row height (in the same units the
// list's size cache uses) that a single Up/Down keypress moves.
func NewProgram[T any](list *vlist.List[*Node, T], scroll *NativeScroll, container *Container, rows, cols int, lineSize float64) *Program[T] {
	return &Program[T]{
		list:      list,
		scroll:    scroll,
		container: container,
		keys:      DefaultKeyMap(),
		rows:      rows,
		cols:      cols,
		lineSize:  lineSize,
	}
}

func (p *Program[T]) Init() tea.Cmd { return nil }

func (p *Program[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.rows, p.cols = msg.Height, msg.Width
		p.container.width = p.cols
		p.list.ScrollToIndex(0, rangemath.AlignStart)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			return p, tea.Quit
		case key.Matches(msg, p.keys.Up):
			p.scroll.row -= p.lineSize
			p.list.RecordScroll(p.scroll.row, wallClockMs())
		case key.Matches(msg, p.keys.Down):
			p.scroll.row += p.lineSize
			p.list.RecordScroll(p.scroll.row, wallClockMs())
		case key.Matches(msg, p.keys.PageUp):
			p.scroll.row -= p.lineSize * float64(p.rows)
			p.list.RecordScroll(p.scroll.row, wallClockMs())
		case key.Matches(msg, p.keys.PageDn):
			p.scroll.row += p.lineSize * float64(p.rows)
			p.list.RecordScroll(p.scroll.row, wallClockMs())
		case key.Matches(msg, p.keys.Top):
			p.list.ScrollToIndex(0, rangemath.AlignStart)
		case key.Matches(msg, p.keys.Bottom):
			p.list.ScrollToIndex(p.list.GetItemCount()-1, rangemath.AlignEnd)
		}
	}
	return p, nil
}

func (p *Program[T]) View() string {
	return p.container.View()
}

// wallClockMs is the only place hosts/term touches real time; it exists
// so Program can feed RecordScroll's required (pos, timeMs) pair without
// the rest of the engine ever calling time.Now() itself.
func wallClockMs() float64 {
	return float64(time.Now().UnixMilli())
}
