package board

import (
	"github.com/pthm-cable/rovers/components"
	"github.com/pthm-cable/rovers/palette"
	"github.com/pthm-cable/rovers/systems"
	"github.com/pthm-cable/rovers/telemetry"
)

// Tick advances the board by one frame: lifecycle, movement, tessellation,
// rendering and the frame governor, in that order. Once the governor has
// stopped the board, Tick does nothing and keeps returning Stopped.
func (b *Board) Tick() Status {
	if b.governor.Stopped() {
		return Stopped
	}

	b.perf.StartTick()

	b.perf.StartPhase(telemetry.PhaseLifecycle)
	ev := b.lifecycle.Update(b, b.arena)
	b.collector.RecordLifecycle(ev.Spawned, ev.Respawned, ev.Removed)

	b.perf.StartPhase(telemetry.PhaseMove)
	for _, e := range b.rovers {
		loc, _, m := b.roverMap.Get(e)
		loc.Vec = systems.Advance(loc.Vec, m, b.targetFPS)
	}

	b.perf.StartPhase(telemetry.PhaseBuffer)
	n := b.Generators()
	b.adapter.Resize(n)
	for i := 0; i < n; i++ {
		b.adapter.Set(i, b.locMap.Get(b.generator(i)).Vec)
	}

	b.perf.StartPhase(telemetry.PhaseTessellate)
	b.adapter.Sync(b.arena.ClipBox())

	b.perf.StartPhase(telemetry.PhaseRender)
	skipped := 0
	for i := 0; i < n; i++ {
		poly := b.adapter.Cell(i)
		if poly == nil {
			skipped++
			continue
		}
		b.sink.FillPolygon(poly, b.tintMap.Get(b.generator(i)).Color)
	}
	b.sink.Flush()
	b.collector.RecordSkippedCells(skipped)

	b.perf.StartPhase(telemetry.PhaseGovernor)
	stopped := b.governor.Observe(b.clock())
	b.collector.RecordFrame(b.governor.LowFrames() > 0, b.governor.LowFrames())
	b.perf.EndTick()

	b.tick++
	b.flushWindow()

	if stopped {
		b.logger.Warn("frame governor stopped simulation",
			"tick", b.tick,
			"fps", b.governor.FPS(),
			"low_frames", b.governor.LowFrames(),
		)
		return Stopped
	}
	return Running
}

func (b *Board) flushWindow() {
	if !b.collector.ShouldFlush(b.tick) {
		return
	}
	speeds := make([]float64, 0, len(b.rovers))
	query := b.speeds.Query()
	for query.Next() {
		m := query.Get()
		if m.Placed {
			speeds = append(speeds, m.Speed)
		}
	}

	stats := b.collector.Flush(b.tick, len(b.points), len(b.rovers), speeds, b.governor.FPS())
	stats.LogStats(b.logger)
	if b.onWindow != nil {
		b.onWindow(stats)
	}
}

// Len implements systems.Population.
func (b *Board) Len() int { return len(b.rovers) }

// Rover implements systems.Population.
func (b *Board) Rover(i int) (*components.Location, *components.Motion) {
	loc, _, m := b.roverMap.Get(b.rovers[i])
	return loc, m
}

// Respawn implements systems.Population. The rover gets a fresh color, speed
// and chord and is moved to the chord's spawn point.
func (b *Board) Respawn(i int) {
	loc, tint, m := b.roverMap.Get(b.rovers[i])
	if m.Placed {
		b.collector.RecordTrip(b.tick - m.Born)
	}

	spawn, despawn := b.spawner.Chord(b.arena)
	*m = components.Motion{
		Spawn:   spawn,
		Despawn: despawn,
		Speed:   b.speed.Rand(),
		Placed:  true,
		Born:    b.tick,
	}
	tint.Color = b.colors.Bright()
	loc.Vec = spawn
}

// Spawn implements systems.Population.
func (b *Board) Spawn() {
	b.addRover(components.Location{}, components.Motion{}, palette.Color{})
	b.Respawn(len(b.rovers) - 1)
}

// Remove implements systems.Population. Later rovers shift down one index.
func (b *Board) Remove(i int) {
	e := b.rovers[i]
	if _, _, m := b.roverMap.Get(e); m.Placed {
		b.collector.RecordTrip(b.tick - m.Born)
	}
	b.world.RemoveEntity(e)
	b.rovers = append(b.rovers[:i], b.rovers[i+1:]...)
}
