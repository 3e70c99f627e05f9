package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	if w == nil {
		w = os.Stderr
	}
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// PanelStyle is the framed box used by Panel and the TUI.
func PanelStyle() lipgloss.Style {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}

// Panel draws lines in a framed box using the current theme.
func Panel(lines ...string) string {
	return PanelStyle().Render(strings.Join(lines, "\n"))
}

// ProgressBar renders a bar with a percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	done = max(0, min(done, total))
	t := Current()
	filled := done * width / total
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

// Swatch renders a two-cell block of a hex color.
func Swatch(hex string) string {
	t := Current()
	if t.Mono {
		return "[]"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}
