package term

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vlist "git.sr.ht/~vlist/vlist"
)

func newTestProgram(t *testing.T, items []string) (*Program[string], *NativeScroll) {
	t.Helper()
	scaffold, scroll, container := Resolve(10, 40)

	cfg := vlist.DefaultConfig[*Node, string]()
	cfg.Container = "test"
	cfg.Resolve = func(interface{}) (*vlist.Scaffold[*Node], error) { return scaffold, nil }
	cfg.Items = items
	cfg.Item.Sizing = vlist.ItemSizing{Kind: vlist.SizeFixed, Fixed: 1}
	cfg.Item.Template = func(item string, index int, _ interface{}) interface{} {
		return Cell{Text: item}
	}
	cfg.Orientation = 0

	list, err := vlist.New[*Node, string](cfg)
	require.NoError(t, err)

	return NewProgram[string](list, scroll, container, 10, 40, 1), scroll
}

func TestProgramDownKeyAdvancesScrollPosition(t *testing.T) {
	items := make([]string, 50)
	for i := range items {
		items[i] = "row"
	}
	p, scroll := newTestProgram(t, items)

	before := scroll.row
	_, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Greater(t, scroll.row, before)
}

func TestProgramQuitKeyReturnsQuitCommand(t *testing.T) {
	p, _ := newTestProgram(t, []string{"a"})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestProgramWindowResizeUpdatesContainerWidth(t *testing.T) {
	p, _ := newTestProgram(t, []string{"a", "b", "c"})
	_, _ = p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, p.container.width)
	assert.Equal(t, 100, p.cols)
	assert.Equal(t, 30, p.rows)
}
