// Package telemetry tracks per-window board events, tick timings and writes
// them out as CSV.
package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
// A nil collector ignores every call.
type Collector struct {
	windowDurationTicks int64
	tickSeconds         float64

	windowStartTick int64

	spawned      int
	respawned    int
	removed      int
	skippedCells int
	lowFrames    int
	maxLowRun    int
	trips        []float64 // seconds from spawn to removal or respawn
}

// NewCollector creates a new stats collector.
// windowTicks: ticks per stats window
// tickSeconds: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, tickSeconds float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int64(windowTicks),
		tickSeconds:         tickSeconds,
	}
}

// RecordLifecycle adds one tick's lifecycle counts.
func (c *Collector) RecordLifecycle(spawned, respawned, removed int) {
	if c == nil {
		return
	}
	c.spawned += spawned
	c.respawned += respawned
	c.removed += removed
}

// RecordTrip records a rover finishing its chord after the given ticks.
func (c *Collector) RecordTrip(ticks int64) {
	if c == nil {
		return
	}
	c.trips = append(c.trips, float64(ticks)*c.tickSeconds)
}

// RecordSkippedCells records generators with no drawable cell this tick.
func (c *Collector) RecordSkippedCells(n int) {
	if c == nil {
		return
	}
	c.skippedCells += n
}

// RecordFrame records the governor's verdict on one frame: whether it was
// slow and the length of the current slow run.
func (c *Collector) RecordFrame(low bool, run int) {
	if c == nil {
		return
	}
	if low {
		c.lowFrames++
	}
	if run > c.maxLowRun {
		c.maxLowRun = run
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	if c == nil {
		return false
	}
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the population at window end and the live rover speeds.
func (c *Collector) Flush(currentTick int64, points, rovers int, speeds []float64, fps float64) WindowStats {
	speedMean, speedP10, speedP50, speedP90 := ComputeStats(speeds)
	tripMean, _, tripP50, tripP90 := ComputeStats(c.trips)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.tickSeconds,

		Points: points,
		Rovers: rovers,

		Spawned:   c.spawned,
		Respawned: c.respawned,
		Removed:   c.removed,

		SkippedCells: c.skippedCells,
		LowFrames:    c.lowFrames,
		MaxLowRun:    c.maxLowRun,
		FPS:          fps,

		SpeedMean: speedMean,
		SpeedP10:  speedP10,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,

		Trips:    len(c.trips),
		TripMean: tripMean,
		TripP50:  tripP50,
		TripP90:  tripP90,
	}

	c.windowStartTick = currentTick
	c.spawned = 0
	c.respawned = 0
	c.removed = 0
	c.skippedCells = 0
	c.lowFrames = 0
	c.maxLowRun = 0
	c.trips = c.trips[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
