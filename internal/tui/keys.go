package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Spin     key.Binding
	Add      key.Binding
	Remove   key.Binding
	Generate key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Spin:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "spin")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Remove:   key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "remove")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss/cancel")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spin, k.Add, k.Remove, k.Generate, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Spin, k.Back},
		{k.Add, k.Remove, k.Up, k.Down},
		{k.Generate, k.Help, k.Quit},
	}
}
