package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/spinwin/internal/model"
	"github.com/Makepad-fr/spinwin/internal/ui"
	"github.com/Makepad-fr/spinwin/internal/wheel"
)

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2.0

// monoFills tell slices apart when the theme has no colors.
var monoFills = []string{"#", "+", "=", "%", "@", "*", ":", "o"}

type cell struct {
	slice int // -1 outside the disc
	text  string
	label bool
}

// Disc draws the wheel turned by rotation as a grid of 2r rows and
// 4r columns, with the pointer on an extra row above it. Each cell takes
// the color of the slice SliceAt finds at its screen angle, so the slice
// under the pointer is the one ResolveWinner reports. Slice numbers sit at
// the label anchors.
func Disc(items []model.Item, rotation float64, r int, t ui.Theme) string {
	if r < 2 {
		r = 2
	}
	rows, cols := 2*r, int(2*cellAspect)*r
	n := len(items)
	grid := make([][]cell, rows)
	cx, cy := float64(cols)/2, float64(rows)/2
	radius := float64(r)

	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			dx := (float64(x) + 0.5 - cx) / cellAspect
			dy := float64(y) + 0.5 - cy
			c := cell{slice: -1, text: " "}
			if n > 0 && math.Hypot(dx, dy) <= radius {
				angle := math.Atan2(dy, dx) * 180 / math.Pi
				c.slice = wheel.SliceAt(angle, rotation, n)
				c.text = fillFor(c.slice, t)
			}
			grid[y][x] = c
		}
	}

	if n > 1 {
		l := wheel.Layout{Radius: radius, LabelRatio: 0.62}
		for _, s := range l.Slices(items) {
			p := l.PointAt(s.Mid, rotation, radius*l.LabelRatio)
			placeLabel(grid, strconv.Itoa(s.Index+1), s.Index,
				int(math.Floor(cx+p.X*cellAspect)), int(math.Floor(cy+p.Y)))
		}
	}

	var b strings.Builder
	pointer := t.Title.Render(t.SymPointer)
	b.WriteString(strings.Repeat(" ", cols/2) + pointer + "\n")
	for y, row := range grid {
		renderRow(&b, row, items, t)
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func fillFor(slice int, t ui.Theme) string {
	if t.Mono {
		return monoFills[slice%len(monoFills)]
	}
	return t.Fill
}

// placeLabel writes text centred on (x, y) if every cell it covers belongs
// to the slice.
func placeLabel(grid [][]cell, text string, slice, x, y int) {
	if y < 0 || y >= len(grid) {
		return
	}
	start := x - len(text)/2
	if start < 0 || start+len(text) > len(grid[y]) {
		return
	}
	for i := range len(text) {
		if grid[y][start+i].slice != slice {
			return
		}
	}
	for i, ch := range text {
		grid[y][start+i] = cell{slice: slice, text: string(ch), label: true}
	}
}

// renderRow styles runs of equal cells together.
func renderRow(b *strings.Builder, row []cell, items []model.Item, t ui.Theme) {
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].slice == row[i].slice && row[j].label == row[i].label {
			run.WriteString(row[j].text)
			j++
		}
		b.WriteString(styleFor(row[i], items, t).Render(run.String()))
		i = j
	}
}

func styleFor(c cell, items []model.Item, t ui.Theme) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.slice < 0 || t.Mono {
		if c.label {
			return s.Bold(true)
		}
		return s
	}
	color := lipgloss.Color(items[c.slice].Color)
	if c.label {
		return s.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(color)
	}
	return s.Foreground(color)
}
