package wheel

import (
	"math"
	"time"
)

// Bezier is a CSS-style cubic-bezier timing curve with fixed end points
// (0,0) and (1,1).
type Bezier struct {
	X1, Y1, X2, Y2 float64
}

// EaseOut decelerates hard at the end, like a wheel running out of momentum.
var EaseOut = Bezier{X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1}

func bezierAt(a, b, t float64) float64 {
	u := 1 - t
	return 3*u*u*t*a + 3*u*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	u := 1 - t
	return 3*u*u*a + 6*u*t*(b-a) + 3*t*t*(1-b)
}

// At maps animation progress x in [0,1] to eased progress.
func (c Bezier) At(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}
	t := x
	for range 8 {
		dx := bezierAt(c.X1, c.X2, t) - x
		if math.Abs(dx) < 1e-7 {
			return bezierAt(c.Y1, c.Y2, t)
		}
		slope := bezierSlope(c.X1, c.X2, t)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= dx / slope
	}
	// Newton stalled; bisect.
	lo, hi := 0.0, 1.0
	t = x
	for range 64 {
		v := bezierAt(c.X1, c.X2, t)
		if math.Abs(v-x) < 1e-7 {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return bezierAt(c.Y1, c.Y2, t)
}

// Animation eases a rotation from one value to another over a duration.
type Animation struct {
	From, To float64
	Start    time.Time
	Duration time.Duration
	Curve    Bezier
}

// At returns the rotation to draw at now and whether the animation is over.
func (a Animation) At(now time.Time) (float64, bool) {
	if a.Duration <= 0 {
		return a.To, true
	}
	elapsed := now.Sub(a.Start)
	if elapsed >= a.Duration {
		return a.To, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	p := a.Curve.At(float64(elapsed) / float64(a.Duration))
	return a.From + (a.To-a.From)*p, false
}

// Progress returns elapsed time as a fraction of the duration in [0,1].
func (a Animation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.Start)) / float64(a.Duration)
	return math.Max(0, math.Min(1, p))
}
