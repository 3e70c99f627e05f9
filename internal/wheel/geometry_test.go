package wheel

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/spinwin/internal/model"
)

func items(labels ...string) []model.Item {
	return model.NewList(labels...).Items()
}

func nItems(n int) []model.Item {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = string(rune('A' + i))
	}
	return items(labels...)
}

func TestComputeSlices_PartitionsCircle(t *testing.T) {
	for n := 1; n <= 24; n++ {
		slices := ComputeSlices(nItems(n))
		require.Len(t, slices, n)

		total := 0.0
		for i, s := range slices {
			assert.Equal(t, i, s.Index)
			total += s.Span()
			assert.InDelta(t, FullTurn/float64(n), s.Span(), 1e-9)
			if i > 0 {
				assert.Greater(t, s.Start, slices[i-1].Start, "n=%d i=%d", n, i)
				assert.Equal(t, slices[i-1].End, s.Start, "gap or overlap at n=%d i=%d", n, i)
			}
		}
		assert.InDelta(t, FullTurn, total, 1e-9, "n=%d", n)
		assert.Equal(t, 0.0, slices[0].Start)
		assert.Equal(t, FullTurn, slices[n-1].End)
	}
}

func TestComputeSlices_Empty(t *testing.T) {
	assert.Nil(t, ComputeSlices(nil))
}

func TestComputeSlices_KeepsItemOrder(t *testing.T) {
	in := items("a", "b", "c")
	for i, s := range ComputeSlices(in) {
		assert.Equal(t, in[i], s.Item)
	}
}

func TestComputeSlices_BoundaryPoints(t *testing.T) {
	slices := ComputeSlices(nItems(4))

	// Slice 0 starts under the pointer, at 12 o'clock, and runs clockwise.
	assert.InDelta(t, 400, slices[0].From.X, 1e-9)
	assert.InDelta(t, 0, slices[0].From.Y, 1e-9)
	assert.InDelta(t, 800, slices[0].To.X, 1e-9)
	assert.InDelta(t, 400, slices[0].To.Y, 1e-9)
	assert.InDelta(t, 400, slices[1].To.X, 1e-9)
	assert.InDelta(t, 800, slices[1].To.Y, 1e-9)

	for _, s := range slices {
		assert.InDelta(t, 400, math.Hypot(s.From.X-400, s.From.Y-400), 1e-9)
		assert.InDelta(t, 400, math.Hypot(s.To.X-400, s.To.Y-400), 1e-9)
	}
}

func TestComputeSlices_LabelAnchors(t *testing.T) {
	slices := ComputeSlices(nItems(4))

	tests := []struct {
		flipped  bool
		rotation float64
	}{
		{false, 315},
		{false, 45},
		{true, 315},
		{true, 45},
	}
	for i, tt := range tests {
		a := slices[i].Label
		assert.Equal(t, tt.flipped, a.Flipped, "slice %d", i)
		assert.InDelta(t, tt.rotation, a.Rotation, 1e-9, "slice %d", i)
		r := math.Hypot(a.X-400, a.Y-400)
		assert.InDelta(t, 400*0.65, r, 1e-9)
		assert.Less(t, r, 400.0)
	}
}

func TestComputeSlices_LargeArc(t *testing.T) {
	one := ComputeSlices(nItems(1))
	require.Len(t, one, 1)
	assert.True(t, one[0].LargeArc)
	assert.Equal(t, 2, strings.Count(one[0].Path, " A "), "full circle needs two arcs: %s", one[0].Path)
	assert.True(t, strings.HasPrefix(one[0].Path, "M 400.00 400.00 L 400.00 0.00"))
	assert.True(t, strings.HasSuffix(one[0].Path, " Z"))

	for _, s := range ComputeSlices(nItems(2)) {
		assert.False(t, s.LargeArc)
		assert.Equal(t, 1, strings.Count(s.Path, " A "))
		assert.Contains(t, s.Path, " 0 0 1 ")
	}
}

func TestLayout_Custom(t *testing.T) {
	l := Layout{CenterX: 10, CenterY: 20, Radius: 5, LabelRatio: 0.5}
	slices := l.Slices(nItems(3))
	require.Len(t, slices, 3)
	assert.InDelta(t, 10, slices[0].From.X, 1e-9)
	assert.InDelta(t, 15, slices[0].From.Y, 1e-9)
	assert.InDelta(t, 2.5, math.Hypot(slices[0].Label.X-10, slices[0].Label.Y-20), 1e-9)
}

func angularDistance(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	return math.Min(d, FullTurn-d)
}

// The slice reported as winner is the one drawn under the pointer.
func TestGeometryMatchesResolution(t *testing.T) {
	for n := 1; n <= 12; n++ {
		slices := ComputeSlices(nItems(n))
		for r := 0.3; r < 4*FullTurn; r += 7.7 {
			idx := ResolveWinner(r, n)
			s := slices[idx]
			assert.LessOrEqual(t,
				angularDistance(ScreenAngle(s.Mid, r), PointerDirection),
				s.Span()/2+1e-9,
				"n=%d rotation=%.2f idx=%d", n, r, idx)
		}
	}
}
