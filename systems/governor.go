package systems

import (
	"math"
	"time"
)

// Governor watches inter-frame time and stops the simulation after a run of
// slow frames. Once stopped it never resumes.
type Governor struct {
	cutoffFPS       float64
	cutoffMinFrames int

	previous  time.Time
	lowFrames int
	lastFPS   float64
	stopped   bool
}

// NewGovernor creates a running governor whose first frame is measured from start.
func NewGovernor(cutoffFPS float64, cutoffMinFrames int, start time.Time) *Governor {
	return &Governor{
		cutoffFPS:       cutoffFPS,
		cutoffMinFrames: cutoffMinFrames,
		previous:        start,
	}
}

// Observe records a frame finishing at now and reports whether the governor
// is stopped. fps = 1000 / max(1, elapsed ms); a frame at or below the cutoff
// extends the low run, any faster frame resets it.
func (g *Governor) Observe(now time.Time) bool {
	if g.stopped {
		return true
	}

	elapsedMs := float64(now.Sub(g.previous)) / float64(time.Millisecond)
	g.previous = now
	g.lastFPS = 1000 / math.Max(1, elapsedMs)

	if g.lastFPS <= g.cutoffFPS {
		g.lowFrames++
	} else {
		g.lowFrames = 0
	}

	if g.lowFrames > g.cutoffMinFrames {
		g.stopped = true
	}
	return g.stopped
}

// Rebase moves the reference timestamp without recording a frame, so time
// spent paused is not measured.
func (g *Governor) Rebase(now time.Time) {
	g.previous = now
}

// Stopped reports whether the governor has tripped.
func (g *Governor) Stopped() bool { return g.stopped }

// LowFrames returns the current run of consecutive slow frames.
func (g *Governor) LowFrames() int { return g.lowFrames }

// FPS returns the rate measured by the last Observe call.
func (g *Governor) FPS() float64 { return g.lastFPS }
