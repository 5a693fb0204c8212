// Package board owns the generators of one Voronoi arena and advances them
// one tick at a time.
package board

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/rovers/components"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
	"github.com/pthm-cable/rovers/renderer"
	"github.com/pthm-cable/rovers/systems"
	"github.com/pthm-cable/rovers/telemetry"
	"github.com/pthm-cable/rovers/tessellation"
)

// Status is the result of a tick.
type Status int

const (
	Running Status = iota
	Stopped
)

func (s Status) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// Options carries the board's collaborators. Every field is optional.
type Options struct {
	Rand   *rand.Rand
	Clock  func() time.Time
	Logger *slog.Logger
	Sink   renderer.Sink

	Perf      *telemetry.PerfCollector
	Collector *telemetry.Collector
	// OnWindow receives each flushed stats window.
	OnWindow func(telemetry.WindowStats)

	// Points replaces the randomly placed fixed points.
	Points []geom.Vec
	// Lifecycle replaces the policy named in the config.
	Lifecycle systems.Lifecycle
}

// Board holds fixed points and rovers in an ECS world. Generator i is
// points[i] for i < len(points) and rovers[i-len(points)] after that; the
// tessellation buffer uses the same order.
type Board struct {
	arena     geom.Arena
	targetFPS float64

	world    *ecs.World
	pointMap *ecs.Map2[components.Location, components.Tint]
	roverMap *ecs.Map3[components.Location, components.Tint, components.Motion]
	tintMap  *ecs.Map[components.Tint]
	locMap   *ecs.Map[components.Location]
	speeds   *ecs.Filter1[components.Motion]
	points   []ecs.Entity
	rovers   []ecs.Entity

	spawner    *systems.Spawner
	colors     *palette.Generator
	speed      distuv.Uniform
	lifecycle  systems.Lifecycle
	governor   *systems.Governor
	adapter    *tessellation.Adapter
	background palette.Color

	sink      renderer.Sink
	logger    *slog.Logger
	clock     func() time.Time
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	onWindow  func(telemetry.WindowStats)

	tick int64
}

// New builds a board from cfg. The configuration is validated first; an
// invalid one yields a *config.Error and no board.
func New(cfg *config.Config, opts Options) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sink := opts.Sink
	if sink == nil {
		sink = renderer.Discard{}
	}

	colors := palette.NewGenerator(rng, cfg.Colors.Bright.Palette(), cfg.Colors.Dark.Palette())

	lifecycle := opts.Lifecycle
	if lifecycle == nil {
		var err error
		lifecycle, err = newLifecycle(cfg, rng)
		if err != nil {
			return nil, fmt.Errorf("lifecycle: %w", err)
		}
	}

	world := ecs.NewWorld()
	b := &Board{
		arena: geom.Arena{
			Width:  float64(cfg.Screen.Width),
			Height: float64(cfg.Screen.Height),
			Clip:   cfg.Arena.ClipDistance,
		},
		targetFPS: float64(cfg.Screen.TargetFPS),

		world:    world,
		pointMap: ecs.NewMap2[components.Location, components.Tint](world),
		roverMap: ecs.NewMap3[components.Location, components.Tint, components.Motion](world),
		tintMap:  ecs.NewMap[components.Tint](world),
		locMap:   ecs.NewMap[components.Location](world),
		speeds:   ecs.NewFilter1[components.Motion](world),

		spawner:   systems.NewSpawner(rng),
		colors:    colors,
		speed:     distuv.Uniform{Min: cfg.Rovers.MinSpeed, Max: cfg.Rovers.MaxSpeed, Src: rng},
		lifecycle: lifecycle,
		governor:  systems.NewGovernor(cfg.Governor.CutoffFPS, cfg.Governor.CutoffMinFrames, clock()),

		sink:      sink,
		logger:    logger,
		clock:     clock,
		perf:      opts.Perf,
		collector: opts.Collector,
		onWindow:  opts.OnWindow,
	}
	b.background = colors.Dark()

	fixed := opts.Points
	if fixed == nil {
		fixed = make([]geom.Vec, cfg.Points.Count)
		for i := range fixed {
			fixed[i] = geom.Vec{X: rng.Float64() * b.arena.Width, Y: rng.Float64() * b.arena.Height}
		}
	}
	for _, p := range fixed {
		loc := components.Location{Vec: p}
		tint := components.Tint{Color: colors.Dark()}
		b.points = append(b.points, b.pointMap.NewEntity(&loc, &tint))
	}

	// Rovers start unplaced; the lifecycle gives them their first chord.
	for i := 0; i < cfg.Rovers.Count; i++ {
		b.addRover(components.Location{}, components.Motion{}, palette.Color{})
	}

	b.adapter = tessellation.NewAdapter(b.Generators())
	if r, ok := sink.(renderer.Resizer); ok {
		r.Resize(b.arena.Width, b.arena.Height)
	}

	attrs := []any{
		"width", b.arena.Width,
		"height", b.arena.Height,
		"clip", b.arena.Clip,
		"points", len(b.points),
		"rovers", len(b.rovers),
		"lifecycle", lifecycle.Name(),
	}
	if d, ok := lifecycle.(*systems.DynamicSpawn); ok {
		attrs = append(attrs, "spawn_probability", d.Probability())
	}
	logger.Info("board created", attrs...)
	return b, nil
}

func newLifecycle(cfg *config.Config, rng *rand.Rand) (systems.Lifecycle, error) {
	switch cfg.Rovers.Lifecycle {
	case config.LifecycleDynamic:
		return systems.NewDynamicSpawn(
			float64(cfg.Screen.TargetFPS),
			cfg.Rovers.MeanSpawnInterval,
			cfg.Rovers.MaxPopulation,
			rng,
		)
	default:
		return systems.RespawnInPlace{}, nil
	}
}

func (b *Board) addRover(loc components.Location, m components.Motion, c palette.Color) ecs.Entity {
	tint := components.Tint{Color: c}
	e := b.roverMap.NewEntity(&loc, &tint, &m)
	b.rovers = append(b.rovers, e)
	return e
}

// Resize changes the arena to width×height pixels. Spawner bounds, the clip
// rectangle and a resizable sink follow on the next tick.
func (b *Board) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	b.arena.Width, b.arena.Height = width, height
	if r, ok := b.sink.(renderer.Resizer); ok {
		r.Resize(width, height)
	}
	b.logger.Info("arena resized", "width", width, "height", height)
}

// Resume re-bases the frame governor after the caller stopped ticking for a
// while, so the gap is not measured as a slow frame.
func (b *Board) Resume() {
	b.governor.Rebase(b.clock())
}

// Background returns the dark color drawn behind the cells.
func (b *Board) Background() palette.Color { return b.background }

// Arena returns the current arena bounds.
func (b *Board) Arena() geom.Arena { return b.arena }

// Ticks returns the number of completed ticks.
func (b *Board) Ticks() int64 { return b.tick }

// Points returns the number of fixed points.
func (b *Board) Points() int { return len(b.points) }

// Rovers returns the number of live rovers.
func (b *Board) Rovers() int { return len(b.rovers) }

// Generators returns the number of tessellation generators.
func (b *Board) Generators() int { return len(b.points) + len(b.rovers) }

// Stopped reports whether the frame governor has halted the board.
func (b *Board) Stopped() bool { return b.governor.Stopped() }

// FPS returns the frame rate measured on the last tick.
func (b *Board) FPS() float64 { return b.governor.FPS() }

// LowFrames returns the current run of slow frames.
func (b *Board) LowFrames() int { return b.governor.LowFrames() }

// LifecycleName returns the active lifecycle policy.
func (b *Board) LifecycleName() string { return b.lifecycle.Name() }

// Location returns generator i's position.
func (b *Board) Location(i int) geom.Vec {
	return b.locMap.Get(b.generator(i)).Vec
}

// Color returns generator i's fill color.
func (b *Board) Color(i int) palette.Color {
	return b.tintMap.Get(b.generator(i)).Color
}

// Cell returns generator i's polygon from the last tick, or nil.
func (b *Board) Cell(i int) []geom.Vec {
	return b.adapter.Cell(i)
}

// Coords returns the tessellation buffer of the last tick.
func (b *Board) Coords() []float64 { return b.adapter.Coords() }

func (b *Board) generator(i int) ecs.Entity {
	if i < len(b.points) {
		return b.points[i]
	}
	return b.rovers[i-len(b.points)]
}
