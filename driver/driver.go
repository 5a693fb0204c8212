// Package driver schedules board ticks at a fixed interval outside the board
// itself. All calls into the board happen on the goroutine running Run.
package driver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pthm-cable/rovers/board"
)

// Stepper is the part of a board the driver needs.
type Stepper interface {
	Tick() board.Status
	Ticks() int64
	Resume()
	Resize(width, height float64)
}

// Ticker delivers the pacing signal. *time.Ticker satisfies it through
// TimeTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TimeTicker adapts *time.Ticker to Ticker.
type TimeTicker struct{ *time.Ticker }

// C returns the ticker channel.
func (t TimeTicker) C() <-chan time.Time { return t.Ticker.C }

// Size is a new arena size sent by the host surface.
type Size struct {
	Width, Height float64
}

// Reason says why Run returned.
type Reason int

const (
	Canceled Reason = iota
	GovernorStopped
	MaxTicksReached
)

func (r Reason) String() string {
	switch r {
	case GovernorStopped:
		return "governor_stopped"
	case MaxTicksReached:
		return "max_ticks"
	default:
		return "canceled"
	}
}

// Options configures Run. Interval is required unless NewTicker is set.
type Options struct {
	Interval time.Duration
	// MaxTicks stops the run once the board has completed this many ticks.
	// Zero means unlimited.
	MaxTicks int64

	// Pause toggles the paused state on every receive.
	Pause <-chan struct{}
	// Resize applies new arena sizes between ticks.
	Resize <-chan Size

	NewTicker func(time.Duration) Ticker
	Logger    *slog.Logger
}

// Interval returns the pause between ticks for targetFPS: 1000/targetFPS ms.
func Interval(targetFPS int) time.Duration {
	if targetFPS <= 0 {
		targetFPS = 1
	}
	return time.Duration(float64(time.Millisecond) * 1000 / float64(targetFPS))
}

// Run calls s.Tick once per ticker period until ctx is done, the board stops,
// or MaxTicks is reached. Ticks that arrive while paused are dropped; on
// unpause the board's governor is re-based. A canceled context returns
// ctx.Err() alongside Canceled.
func Run(ctx context.Context, s Stepper, opts Options) (Reason, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	newTicker := opts.NewTicker
	if newTicker == nil {
		newTicker = func(d time.Duration) Ticker { return TimeTicker{time.NewTicker(d)} }
	}

	if opts.MaxTicks > 0 && s.Ticks() >= opts.MaxTicks {
		return MaxTicksReached, nil
	}

	ticker := newTicker(opts.Interval)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-ctx.Done():
			return Canceled, ctx.Err()

		case <-opts.Pause:
			paused = !paused
			if paused {
				logger.Info("simulation paused", "tick", s.Ticks())
			} else {
				s.Resume()
				logger.Info("simulation resumed", "tick", s.Ticks())
			}

		case sz := <-opts.Resize:
			s.Resize(sz.Width, sz.Height)

		case <-ticker.C():
			if paused {
				continue
			}
			if s.Tick() == board.Stopped {
				return GovernorStopped, nil
			}
			if opts.MaxTicks > 0 && s.Ticks() >= opts.MaxTicks {
				return MaxTicksReached, nil
			}
		}
	}
}
