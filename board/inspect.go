package board

import (
	"github.com/pthm-cable/rovers/components"
	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
	"github.com/pthm-cable/rovers/systems"
)

// Info describes one generator for display.
type Info struct {
	Index    int
	Rover    bool
	Location geom.Vec
	Color    palette.Color
	Cell     []geom.Vec

	// Rover only.
	Motion  components.Motion
	Heading float64 // radians
	Age     int64   // ticks since the last respawn
}

// GeneratorAt returns the index of the generator whose last cell contains p,
// or -1 when p lies in no cell.
func (b *Board) GeneratorAt(p geom.Vec) int {
	for i := 0; i < b.adapter.Len(); i++ {
		if c := b.adapter.Cell(i); c != nil && geom.Contains(c, p) {
			return i
		}
	}
	return -1
}

// Info returns generator i's state. ok is false once i is out of range, as
// happens when rovers are removed in dynamic mode.
func (b *Board) Info(i int) (info Info, ok bool) {
	if i < 0 || i >= b.Generators() {
		return Info{}, false
	}
	e := b.generator(i)
	info = Info{
		Index:    i,
		Location: b.locMap.Get(e).Vec,
		Color:    b.tintMap.Get(e).Color,
	}
	if i < b.adapter.Len() {
		info.Cell = b.adapter.Cell(i)
	}
	if i >= len(b.points) {
		_, _, m := b.roverMap.Get(e)
		info.Rover = true
		info.Motion = *m
		info.Heading = systems.Heading(m)
		info.Age = b.tick - m.Born
	}
	return info, true
}
