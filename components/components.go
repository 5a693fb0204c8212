// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
)

// Location is a generator point's current position in arena pixels.
type Location struct {
	geom.Vec
}

// Tint is the fill color of the generator's Voronoi cell.
type Tint struct {
	palette.Color
}

// Motion is carried only by rovers. Spawn and Despawn define the directed
// chord the rover travels; Despawn is never clamped and only sets direction.
type Motion struct {
	Spawn   geom.Vec
	Despawn geom.Vec
	Speed   float64 // pixels per second

	Placed  bool  // false until the lifecycle assigns a first chord
	Entered bool  // set the first tick the rover is strictly inside the arena
	Born    int64 // tick the current chord was assigned
}
