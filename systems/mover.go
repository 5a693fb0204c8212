package systems

import (
	"math"

	"github.com/pthm-cable/rovers/components"
	"github.com/pthm-cable/rovers/geom"
)

// Heading returns the travel direction of a chord in radians.
// atan2 keeps the quadrant, so chords running right to left move leftwards.
func Heading(m *components.Motion) float64 {
	return math.Atan2(m.Despawn.Y-m.Spawn.Y, m.Despawn.X-m.Spawn.X)
}

// Advance moves loc one fixed tick along the rover's chord:
// speed/targetFPS pixels in the spawn→despawn direction. No bounds checks.
func Advance(loc geom.Vec, m *components.Motion, targetFPS float64) geom.Vec {
	step := m.Speed / targetFPS
	sin, cos := math.Sincos(Heading(m))
	return geom.Vec{
		X: loc.X + step*cos,
		Y: loc.Y + step*sin,
	}
}
