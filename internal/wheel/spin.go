package wheel

import "math/rand/v2"

// Full extra turns a spin makes, inclusive.
const (
	MinTurns = 5
	MaxTurns = 9
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int   { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

// DefaultRNG returns the process-wide auto-seeded source.
func DefaultRNG() RNG { return stdRNG{} }

// Randomizer draws spin targets.
type Randomizer struct {
	rng RNG
}

func NewRandomizer(rng RNG) *Randomizer {
	if rng == nil {
		rng = stdRNG{}
	}
	return &Randomizer{rng: rng}
}

// NextRotation returns current plus 5..9 full turns plus a uniform offset in
// [0,360). The offset alone decides the winner; the turns are for show.
// The result is never wrapped so the animation continues from where the
// wheel rests.
func (r *Randomizer) NextRotation(current float64) float64 {
	turns := MinTurns + r.rng.Intn(MaxTurns-MinTurns+1)
	offset := r.rng.Float64() * FullTurn
	if offset >= FullTurn {
		offset = 0
	}
	return current + FullTurn*float64(turns) + offset
}
