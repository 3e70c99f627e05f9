package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/spinwin/internal/wheel"
)

// Run starts the program and blocks until the user quits. It returns the
// last wheel state.
func Run(opts Options) (wheel.State, error) {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return wheel.State{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return wheel.State{}, nil
	}
	return fm.State(), nil
}
