package wheel

import "math"

// Normalize wraps deg into [0,360).
func Normalize(deg float64) float64 {
	r := math.Mod(deg, FullTurn)
	if r < 0 {
		r += FullTurn
	}
	// -tiny + 360 rounds to 360.
	if r >= FullTurn {
		r = 0
	}
	return r
}

// ResolveWinner returns the index of the slice under the pointer after the
// wheel has turned by rotation degrees. It returns -1 when n < 1.
//
// The wheel turns clockwise under a fixed pointer, so the wheel angle under
// the pointer is the negative of the rotation, shifted by RestOffset.
func ResolveWinner(rotation float64, n int) int {
	if n < 1 {
		return -1
	}
	normalized := Normalize(rotation)
	pointerAngle := Normalize(RestOffset - normalized)
	return indexAt(pointerAngle, n)
}

// SliceAt returns the index of the slice drawn at screenAngle while the
// wheel is turned by rotation. SliceAt(PointerDirection, r, n) equals
// ResolveWinner(r, n).
func SliceAt(screenAngle, rotation float64, n int) int {
	if n < 1 {
		return -1
	}
	wheelAngle := Normalize(screenAngle - PointerDirection + RestOffset - rotation)
	return indexAt(wheelAngle, n)
}

func indexAt(wheelAngle float64, n int) int {
	span := FullTurn / float64(n)
	idx := int(math.Floor(wheelAngle / span))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
