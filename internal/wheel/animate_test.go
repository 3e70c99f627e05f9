package wheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBezier_EaseOut(t *testing.T) {
	assert.Equal(t, 0.0, EaseOut.At(0))
	assert.Equal(t, 1.0, EaseOut.At(1))
	assert.Equal(t, 0.0, EaseOut.At(-1))
	assert.Equal(t, 1.0, EaseOut.At(2))
	assert.InDelta(t, 0.8024, EaseOut.At(0.5), 0.005)

	prev := 0.0
	for x := 0.01; x < 1; x += 0.01 {
		y := EaseOut.At(x)
		assert.GreaterOrEqual(t, y, prev, "x=%v", x)
		prev = y
	}
}

func TestBezier_Linear(t *testing.T) {
	linear := Bezier{X1: 0, Y1: 0, X2: 1, Y2: 1}
	for _, x := range []float64{0.1, 0.3, 0.5, 0.9} {
		assert.InDelta(t, x, linear.At(x), 1e-5)
	}
}

func TestAnimation_At(t *testing.T) {
	start := time.Unix(1000, 0)
	a := Animation{From: 10, To: 1810, Start: start, Duration: 5 * time.Second, Curve: EaseOut}

	v, done := a.At(start)
	assert.False(t, done)
	assert.InDelta(t, 10, v, 1e-9)

	v, done = a.At(start.Add(2500 * time.Millisecond))
	assert.False(t, done)
	assert.InDelta(t, 10+1800*0.8024, v, 10)

	v, done = a.At(start.Add(5 * time.Second))
	assert.True(t, done)
	assert.Equal(t, 1810.0, v)

	v, _ = a.At(start.Add(-time.Second))
	assert.InDelta(t, 10, v, 1e-9)
}

func TestAnimation_ZeroDuration(t *testing.T) {
	a := Animation{From: 1, To: 2}
	v, done := a.At(time.Now())
	assert.True(t, done)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, 1.0, a.Progress(time.Now()))
}

func TestAnimation_Progress(t *testing.T) {
	start := time.Unix(0, 0)
	a := Animation{Start: start, Duration: 4 * time.Second}
	assert.Equal(t, 0.0, a.Progress(start.Add(-time.Second)))
	assert.InDelta(t, 0.25, a.Progress(start.Add(time.Second)), 1e-9)
	assert.Equal(t, 1.0, a.Progress(start.Add(time.Minute)))
}
