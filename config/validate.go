package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/rovers/palette"
)

// ErrInvalid is matched by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Error describes one rejected configuration field.
type Error struct {
	Field  string // yaml path, e.g. "governor.cutoff_min_frames"
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Is reports ErrInvalid so callers can use errors.Is.
func (e *Error) Is(target error) bool { return target == ErrInvalid }

func invalid(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every field for a consistent board. The first problem
// found is returned as a *Error.
func (c *Config) Validate() error {
	// Comparisons against NaN are always false, so non-finite values are
	// rejected before any range check.
	for _, f := range []struct {
		field string
		v     float64
	}{
		{"arena.clip_distance", c.Arena.ClipDistance},
		{"rovers.min_speed", c.Rovers.MinSpeed},
		{"rovers.max_speed", c.Rovers.MaxSpeed},
		{"rovers.mean_spawn_interval", c.Rovers.MeanSpawnInterval},
		{"governor.cutoff_fps", c.Governor.CutoffFPS},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.field, "must be finite, got %g", f.v)
		}
	}

	switch {
	case c.Screen.Width <= 0:
		return invalid("screen.width", "must be positive, got %d", c.Screen.Width)
	case c.Screen.Height <= 0:
		return invalid("screen.height", "must be positive, got %d", c.Screen.Height)
	case c.Screen.TargetFPS <= 0:
		return invalid("screen.target_fps", "must be positive, got %d", c.Screen.TargetFPS)
	case c.Arena.ClipDistance < 0:
		return invalid("arena.clip_distance", "must not be negative, got %g", c.Arena.ClipDistance)
	case c.Points.Count < 0:
		return invalid("points.count", "must not be negative, got %d", c.Points.Count)
	case c.Rovers.Count < 0:
		return invalid("rovers.count", "must not be negative, got %d", c.Rovers.Count)
	case c.Rovers.MinSpeed < 0:
		return invalid("rovers.min_speed", "must not be negative, got %g", c.Rovers.MinSpeed)
	case c.Rovers.MaxSpeed < c.Rovers.MinSpeed:
		return invalid("rovers.max_speed", "%g is below min_speed %g", c.Rovers.MaxSpeed, c.Rovers.MinSpeed)
	case c.Rovers.MaxPopulation < 0:
		return invalid("rovers.max_population", "must not be negative, got %d", c.Rovers.MaxPopulation)
	case c.Governor.CutoffFPS <= 0:
		return invalid("governor.cutoff_fps", "must be positive, got %g", c.Governor.CutoffFPS)
	case c.Governor.CutoffMinFrames <= 0:
		return invalid("governor.cutoff_min_frames", "must be positive, got %d", c.Governor.CutoffMinFrames)
	case c.Telemetry.StatsWindow < 0:
		return invalid("telemetry.stats_window", "must not be negative, got %g", c.Telemetry.StatsWindow)
	case c.Telemetry.PerfWindow < 0:
		return invalid("telemetry.perf_window", "must not be negative, got %d", c.Telemetry.PerfWindow)
	}

	switch c.Rovers.Lifecycle {
	case LifecycleRespawn:
	case LifecycleDynamic:
		if c.Rovers.MeanSpawnInterval <= 0 {
			return invalid("rovers.mean_spawn_interval", "must be positive in dynamic mode, got %g", c.Rovers.MeanSpawnInterval)
		}
	default:
		return invalid("rovers.lifecycle", "unknown policy %q", c.Rovers.Lifecycle)
	}

	switch c.Render.Backend {
	case BackendPath, BackendGPU, BackendTerminal, BackendHeadless:
	default:
		return invalid("render.backend", "unknown backend %q", c.Render.Backend)
	}

	if err := c.Colors.Bright.validate("colors.bright"); err != nil {
		return err
	}
	return c.Colors.Dark.validate("colors.dark")
}

func (r HSVRange) validate(field string) error {
	if err := r.Palette().Validate(); err != nil {
		return invalid(field, "%v", err)
	}
	return nil
}

// Palette converts the range to the form the color generator samples from.
func (r HSVRange) Palette() palette.Range {
	return palette.Range{
		HueMin: r.HueMin, HueMax: r.HueMax,
		SatMin: r.SatMin, SatMax: r.SatMax,
		ValMin: r.ValMin, ValMax: r.ValMax,
	}
}
