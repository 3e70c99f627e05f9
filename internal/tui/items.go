package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/spinwin/internal/model"
	"github.com/Makepad-fr/spinwin/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	model.Item
	Number int
	Winner bool
}

func (i listItem) FilterValue() string { return i.Label }

// itemDelegate renders one option per line: number, color swatch, label.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := d.theme
	label := it.Label
	if it.Winner {
		label = t.Success.Render(label + " " + t.SymOK)
	}
	line := fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d", it.Number)), ui.Swatch(it.Color), label)

	prefix := "  "
	if index == m.Index() {
		prefix = lipgloss.NewStyle().Bold(true).Reverse(true).Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}
