// Package wheel is the spin engine: slice geometry, the randomizer, the
// rotation-to-winner resolution and the spin state machine.
//
// Angles come in two frames. Wheel angles are degrees measured clockwise
// from the pointer's rest direction and are what slices are defined in.
// Screen angles are degrees with 0 at 3 o'clock, growing clockwise (y
// points down). ScreenAngle and SliceAt are the only conversions between
// them, and both the renderer and ResolveWinner go through them.
package wheel

import (
	"fmt"
	"math"
	"strings"

	"github.com/Makepad-fr/spinwin/internal/model"
)

const (
	// FullTurn is one revolution in degrees.
	FullTurn = 360.0

	// PointerDirection is the screen angle of the fixed pointer (12 o'clock).
	PointerDirection = -90.0

	// RestOffset is the wheel angle sitting under the pointer at rotation 0.
	// Slice 0 starts there.
	RestOffset = 0.0
)

// Point is a position in drawing coordinates.
type Point struct {
	X, Y float64
}

// Anchor is where a slice label is drawn and how it is turned.
type Anchor struct {
	Point
	Rotation float64 // degrees, screen frame
	Flipped  bool    // turned 180° to stay upright on the left half
}

// Slice is the derived geometry of one item. Never stored.
type Slice struct {
	Index int
	Item  model.Item

	Start, End, Mid float64 // wheel angles

	From, To Point // boundary points on the rim at rotation 0
	LargeArc bool
	Path     string // SVG path data
	Label    Anchor
}

// Span is the angular width of the slice.
func (s Slice) Span() float64 { return s.End - s.Start }

// Layout places the wheel in a drawing space.
type Layout struct {
	CenterX, CenterY float64
	Radius           float64
	LabelRatio       float64 // label radius as a fraction of Radius, in (0,1)
}

// DefaultLayout matches an 800x800 viewBox.
var DefaultLayout = Layout{CenterX: 400, CenterY: 400, Radius: 400, LabelRatio: 0.65}

// ComputeSlices partitions the circle into len(items) equal slices in item
// order using DefaultLayout.
func ComputeSlices(items []model.Item) []Slice {
	return DefaultLayout.Slices(items)
}

// Slices partitions the circle into len(items) equal slices in item order.
// Slice i covers [i*360/n, (i+1)*360/n), so the last one ends on exactly 360.
func (l Layout) Slices(items []model.Item) []Slice {
	n := len(items)
	if n == 0 {
		return nil
	}
	out := make([]Slice, n)
	for i, it := range items {
		start := float64(i) * FullTurn / float64(n)
		end := float64(i+1) * FullTurn / float64(n)
		s := Slice{
			Index:    i,
			Item:     it,
			Start:    start,
			End:      end,
			Mid:      (start + end) / 2,
			From:     l.PointAt(start, 0, l.Radius),
			To:       l.PointAt(end, 0, l.Radius),
			LargeArc: end-start > FullTurn/2,
		}
		s.Path = l.path(s)
		s.Label = l.anchor(s.Mid)
		out[i] = s
	}
	return out
}

// ScreenAngle converts a wheel angle to the screen frame for a wheel turned
// by rotation degrees clockwise. The result is in [0,360).
func ScreenAngle(wheelAngle, rotation float64) float64 {
	return Normalize(PointerDirection + wheelAngle - RestOffset + rotation)
}

// PointAt returns the drawing position of a wheel angle at the given radius.
func (l Layout) PointAt(wheelAngle, rotation, radius float64) Point {
	rad := ScreenAngle(wheelAngle, rotation) * math.Pi / 180
	return Point{
		X: l.CenterX + radius*math.Cos(rad),
		Y: l.CenterY + radius*math.Sin(rad),
	}
}

func (l Layout) anchor(mid float64) Anchor {
	screen := ScreenAngle(mid, 0)
	a := Anchor{
		Point:    l.PointAt(mid, 0, l.Radius*l.LabelRatio),
		Rotation: screen,
	}
	if screen > 90 && screen < 270 {
		a.Flipped = true
		a.Rotation = Normalize(screen + 180)
	}
	return a
}

// path builds "M centre L from A ... to Z". A slice spanning a full turn
// has equal endpoints, which an SVG arc would draw as nothing, so it is
// split into two half arcs.
func (l Layout) path(s Slice) string {
	var b strings.Builder
	r := l.Radius
	fmt.Fprintf(&b, "M %s %s L %s %s", num(l.CenterX), num(l.CenterY), num(s.From.X), num(s.From.Y))
	if s.Span() >= FullTurn {
		half := l.PointAt(s.Start+FullTurn/2, 0, r)
		fmt.Fprintf(&b, " A %s %s 0 1 1 %s %s", num(r), num(r), num(half.X), num(half.Y))
		fmt.Fprintf(&b, " A %s %s 0 1 1 %s %s", num(r), num(r), num(s.To.X), num(s.To.Y))
	} else {
		large := 0
		if s.LargeArc {
			large = 1
		}
		fmt.Fprintf(&b, " A %s %s 0 %d 1 %s %s", num(r), num(r), large, num(s.To.X), num(s.To.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

func num(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return fmt.Sprintf("%.2f", v)
}
