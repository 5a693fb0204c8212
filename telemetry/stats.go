package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Points int `csv:"points"`
	Rovers int `csv:"rovers"`

	// Lifecycle events during window
	Spawned   int `csv:"spawned"`
	Respawned int `csv:"respawned"`
	Removed   int `csv:"removed"`

	// Rendering and pacing
	SkippedCells int     `csv:"skipped_cells"`
	LowFrames    int     `csv:"low_frames"`
	MaxLowRun    int     `csv:"max_low_run"`
	FPS          float64 `csv:"fps"`

	// Live rover speeds at window end, pixels per second
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Completed chords, seconds of simulated time
	Trips    int     `csv:"trips"`
	TripMean float64 `csv:"trip_mean"`
	TripP50  float64 `csv:"trip_p50"`
	TripP90  float64 `csv:"trip_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeStats calculates mean and percentiles from values.
func ComputeStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("points", s.Points),
		slog.Int("rovers", s.Rovers),
		slog.Int("spawned", s.Spawned),
		slog.Int("respawned", s.Respawned),
		slog.Int("removed", s.Removed),
		slog.Int("skipped_cells", s.SkippedCells),
		slog.Int("low_frames", s.LowFrames),
		slog.Int("max_low_run", s.MaxLowRun),
		slog.Float64("fps", s.FPS),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Int("trips", s.Trips),
		slog.Float64("trip_p50", s.TripP50),
	)
}

// LogStats logs the window stats through logger.
func (s WindowStats) LogStats(logger *slog.Logger) {
	logger.Info("stats", "window", s)
}
