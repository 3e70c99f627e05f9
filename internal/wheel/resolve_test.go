package wheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWinner_Scenario(t *testing.T) {
	// 370 -> normalized 10 -> pointer 350 -> span 90 -> floor(350/90) = 3.
	assert.Equal(t, 3, ResolveWinner(370, 4))
}

func TestResolveWinner(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		n        int
		want     int
	}{
		{"rest", 0, 4, 0},
		{"small turn moves to last slice", 10, 4, 3},
		{"boundary belongs to next slice", 90, 4, 3},
		{"just past boundary", 91, 4, 2},
		{"half turn", 180, 4, 2},
		{"three quarters", 270, 4, 1},
		{"almost full turn", 350, 4, 0},
		{"negative rotation", -10, 4, 0},
		{"many turns", 360*7 + 100, 4, 2},
		{"single item", 123.4, 1, 0},
		{"two items", 200, 2, 0},
		{"six items", 45, 6, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveWinner(tt.rotation, tt.n))
		})
	}
}

func TestResolveWinner_NoItems(t *testing.T) {
	assert.Equal(t, -1, ResolveWinner(10, 0))
	assert.Equal(t, -1, ResolveWinner(10, -3))
	assert.Equal(t, -1, SliceAt(0, 10, 0))
}

func TestResolveWinner_Periodic(t *testing.T) {
	rotations := []float64{0, 12.5, 90, 370, 1234.75, -45.25, 359.875}
	for n := 1; n <= 12; n++ {
		for _, r := range rotations {
			want := ResolveWinner(r, n)
			for k := -3; k <= 10; k++ {
				assert.Equal(t, want, ResolveWinner(r+FullTurn*float64(k), n),
					"n=%d r=%v k=%d", n, r, k)
			}
		}
	}
}

// Sweeping the rotation over one turn visits every index in one contiguous
// run each, stepping down by one at each boundary.
func TestResolveWinner_PartitionsTurn(t *testing.T) {
	const step = 0.25
	for n := 1; n <= 13; n++ {
		var got []int
		for r := 0.0; r < FullTurn; r += step {
			got = append(got, ResolveWinner(r, n))
		}

		seen := make(map[int]bool)
		changes := 0
		for i, idx := range got {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n)
			seen[idx] = true
			next := got[(i+1)%len(got)]
			if next != idx {
				changes++
				assert.Equal(t, (idx-1+n)%n, next, "n=%d at sample %d", n, i)
			}
		}
		assert.Len(t, seen, n, "n=%d", n)
		if n == 1 {
			assert.Zero(t, changes)
		} else {
			assert.Equal(t, n, changes, "n=%d", n)
		}
	}
}

func TestIndexAt_ClampsFullTurn(t *testing.T) {
	assert.Equal(t, 3, indexAt(FullTurn, 4))
	assert.Equal(t, 0, indexAt(-0.0001, 4))
}

func TestSliceAt_PointerMatchesResolve(t *testing.T) {
	for n := 1; n <= 9; n++ {
		for r := -720.0; r < 1440; r += 13.25 {
			assert.Equal(t, ResolveWinner(r, n), SliceAt(PointerDirection, r, n), "n=%d r=%v", n, r)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-360, 0},
		{719.5, 359.5},
		{-1e-300, 0},
	}
	for _, tt := range tests {
		got := Normalize(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "Normalize(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, FullTurn)
	}
}
