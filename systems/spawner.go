package systems

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/rovers/geom"
)

// chordEpsilon rejects angles whose line is (nearly) vertical or horizontal.
// Vertical lines have no finite slope; horizontal ones never meet the top or
// bottom edge.
const chordEpsilon = 1e-6

// Spawner picks the chords rovers travel along.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Chord returns a random directed chord across the arena. The line passes
// through a uniformly chosen interior anchor at a uniform angle; its two
// extreme boundary crossings (by x) become spawn and despawn in random order.
// Only spawn is clamped into the clipped arena.
func (s *Spawner) Chord(arena geom.Arena) (spawn, despawn geom.Vec) {
	anchor := geom.Vec{
		X: s.rng.Float64() * arena.Width,
		Y: s.rng.Float64() * arena.Height,
	}

	m := s.slope()
	b := anchor.Y - m*anchor.X

	pts := geom.BoundaryCrossings(m, b, arena.Width, arena.Height)
	lo, hi := pts[0], pts[len(pts)-1]

	if s.rng.Float64() < 0.5 {
		spawn, despawn = lo, hi
	} else {
		spawn, despawn = hi, lo
	}

	return arena.ClampToClip(spawn), despawn
}

// slope samples an angle in [0, 2π) until its line is neither vertical nor
// horizontal and returns tan(angle).
func (s *Spawner) slope() float64 {
	for {
		angle := s.rng.Float64() * 2 * math.Pi
		sin, cos := math.Sincos(angle)
		if math.Abs(cos) < chordEpsilon || math.Abs(sin) < chordEpsilon {
			continue
		}
		return sin / cos
	}
}
