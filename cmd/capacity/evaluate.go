package main

import (
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/rovers/board"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/telemetry"
)

// Evaluation is one measured rover count, averaged over all seeds.
type Evaluation struct {
	Eval          int     `csv:"eval"`
	Rovers        int     `csv:"rovers"`
	Generators    int     `csv:"generators"`
	AvgTickUs     float64 `csv:"avg_tick_us"`
	MaxTickUs     float64 `csv:"max_tick_us"`
	TessellatePct float64 `csv:"tessellate_pct"`
	ProjectedFPS  float64 `csv:"projected_fps"`
	Fits          bool    `csv:"fits"`
}

// Evaluator runs headless boards of a given size and times their ticks.
type Evaluator struct {
	baseConfig *config.Config
	warmup     int
	ticks      int
	seeds      []uint64
	budget     time.Duration
}

// NewEvaluator creates an evaluator whose frame budget is the configured
// tick interval scaled by headroom (0.5 keeps half the frame for drawing).
func NewEvaluator(baseCfg *config.Config, warmup, ticks int, seeds []uint64, headroom float64) *Evaluator {
	interval := time.Second / time.Duration(baseCfg.Screen.TargetFPS)
	return &Evaluator{
		baseConfig: baseCfg,
		warmup:     warmup,
		ticks:      ticks,
		seeds:      seeds,
		budget:     time.Duration(float64(interval) * headroom),
	}
}

// Budget returns the tick duration a rover count must stay under.
func (e *Evaluator) Budget() time.Duration { return e.budget }

// Measure times a board with the given number of rovers.
func (e *Evaluator) Measure(rovers int) (Evaluation, error) {
	ev := Evaluation{Rovers: rovers, Generators: e.baseConfig.Points.Count + rovers}

	for _, seed := range e.seeds {
		stats, err := e.runSeed(rovers, seed)
		if err != nil {
			return ev, err
		}
		ev.AvgTickUs += float64(stats.AvgTickDuration.Microseconds())
		ev.TessellatePct += stats.PhasePct[telemetry.PhaseTessellate]
		if us := float64(stats.MaxTickDuration.Microseconds()); us > ev.MaxTickUs {
			ev.MaxTickUs = us
		}
	}

	n := float64(len(e.seeds))
	ev.AvgTickUs /= n
	ev.TessellatePct /= n
	if ev.AvgTickUs > 0 {
		ev.ProjectedFPS = 1e6 / ev.AvgTickUs
	}
	ev.Fits = time.Duration(ev.AvgTickUs*float64(time.Microsecond)) <= e.budget
	return ev, nil
}

func (e *Evaluator) runSeed(rovers int, seed uint64) (telemetry.PerfStats, error) {
	cfg := *e.baseConfig
	cfg.Rovers.Count = rovers
	cfg.Render.Backend = config.BackendHeadless

	perf := telemetry.NewPerfCollector(e.ticks)
	b, err := board.New(&cfg, board.Options{
		Rand:  rand.New(rand.NewPCG(seed, seed)),
		Clock: steadyClock(cfg.Screen.TargetFPS),
		Perf:  perf,
	})
	if err != nil {
		return telemetry.PerfStats{}, err
	}

	// Warmup ticks land in the rolling window too, but are overwritten
	// once the measured ticks fill it.
	for i := 0; i < e.warmup+e.ticks; i++ {
		b.Tick()
	}
	return perf.Stats(), nil
}

// steadyClock advances exactly one target frame per call, so the governor
// never judges a measurement run by its wall-clock speed.
func steadyClock(fps int) func() time.Time {
	t := time.Unix(0, 0)
	step := time.Second / time.Duration(fps)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}
