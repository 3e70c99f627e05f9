package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and box border.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.Color

	SymOK, SymFail, SymPointer string
	BarFull, BarEmpty          string
	// Fill is the glyph a wheel cell is drawn with.
	Fill string
	// Mono themes ignore slice colors.
	Mono bool
}

// Names lists the built-in themes.
var Names = []string{"classic", "neon", "mono"}

var current = Lookup("classic")

// Lookup returns the named theme; unknown names get classic.
func Lookup(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:    "neon",
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Border:  lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("13"),
			SymOK: "✔", SymFail: "✖", SymPointer: "▼",
			BarFull: "█", BarEmpty: "░",
			Fill: "█",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Border: lipgloss.NormalBorder(), BorderColor: lipgloss.Color(""),
			SymOK: "x", SymFail: "!", SymPointer: "v",
			BarFull: "#", BarEmpty: "-",
			Fill: "#",
			Mono: true,
		}
	default:
		return Theme{
			Name:    "classic",
			Title:   lipgloss.NewStyle().Bold(true),
			Muted:   lipgloss.NewStyle().Faint(true),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Border:  lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("8"),
			SymOK: "✔", SymFail: "✖", SymPointer: "▼",
			BarFull: "█", BarEmpty: "░",
			Fill: "█",
		}
	}
}

// SetTheme switches the current theme.
func SetTheme(name string) { current = Lookup(name) }

// Current returns what renderers need.
func Current() Theme { return current }
