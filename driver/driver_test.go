package driver

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/pthm-cable/rovers/board"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/renderer"
)

type manualTicker struct {
	ch      chan time.Time
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { m.stopped = true }

func withTicker(m *manualTicker) func(time.Duration) Ticker {
	return func(time.Duration) Ticker { return m }
}

// fakeStepper counts calls and stops after stopAt ticks when stopAt > 0.
type fakeStepper struct {
	ticks   int64
	resumes int
	stopAt  int64
	sizes   []Size
}

func (f *fakeStepper) Tick() board.Status {
	f.ticks++
	if f.stopAt > 0 && f.ticks >= f.stopAt {
		return board.Stopped
	}
	return board.Running
}

func (f *fakeStepper) Ticks() int64 { return f.ticks }
func (f *fakeStepper) Resume()      { f.resumes++ }
func (f *fakeStepper) Resize(w, h float64) {
	f.sizes = append(f.sizes, Size{Width: w, Height: h})
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		want time.Duration
	}{
		{"60 fps", 60, 16666666 * time.Nanosecond},
		{"10 fps", 10, 100 * time.Millisecond},
		{"1 fps", 1, time.Second},
		{"non-positive", 0, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interval(tt.fps); got != tt.want {
				t.Errorf("Interval(%d) = %v, want %v", tt.fps, got, tt.want)
			}
		})
	}
}

func TestRunMaxTicks(t *testing.T) {
	tick := &manualTicker{ch: make(chan time.Time, 10)}
	for i := 0; i < 10; i++ {
		tick.ch <- time.Time{}
	}
	s := &fakeStepper{}

	reason, err := Run(context.Background(), s, Options{MaxTicks: 4, NewTicker: withTicker(tick)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != MaxTicksReached {
		t.Errorf("reason %v, want max_ticks", reason)
	}
	if s.ticks != 4 {
		t.Errorf("ran %d ticks, want 4", s.ticks)
	}
	if !tick.stopped {
		t.Error("ticker should be stopped on return")
	}
}

func TestRunGovernorStop(t *testing.T) {
	tick := &manualTicker{ch: make(chan time.Time, 10)}
	for i := 0; i < 10; i++ {
		tick.ch <- time.Time{}
	}
	s := &fakeStepper{stopAt: 3}

	reason, err := Run(context.Background(), s, Options{NewTicker: withTicker(tick)})
	if err != nil || reason != GovernorStopped {
		t.Fatalf("got (%v, %v), want governor_stopped", reason, err)
	}
	if s.ticks != 3 {
		t.Errorf("driver kept ticking after stop: %d ticks", s.ticks)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeStepper{}

	reason, err := Run(ctx, s, Options{NewTicker: withTicker(&manualTicker{ch: make(chan time.Time)})})
	if reason != Canceled || !errors.Is(err, context.Canceled) {
		t.Errorf("got (%v, %v), want canceled", reason, err)
	}
	if s.ticks != 0 {
		t.Errorf("canceled run ticked %d times", s.ticks)
	}
}

func TestRunPauseAndResize(t *testing.T) {
	tick := &manualTicker{ch: make(chan time.Time)}
	pause := make(chan struct{})
	resize := make(chan Size)
	ctx, cancel := context.WithCancel(context.Background())
	s := &fakeStepper{}

	done := make(chan Reason)
	go func() {
		reason, _ := Run(ctx, s, Options{
			Pause:     pause,
			Resize:    resize,
			NewTicker: withTicker(tick),
		})
		done <- reason
	}()

	tick.ch <- time.Time{}
	tick.ch <- time.Time{}
	pause <- struct{}{}
	tick.ch <- time.Time{} // dropped while paused
	resize <- Size{Width: 640, Height: 480}
	pause <- struct{}{}
	tick.ch <- time.Time{}
	cancel()

	if reason := <-done; reason != Canceled {
		t.Errorf("reason %v, want canceled", reason)
	}
	if s.ticks != 3 {
		t.Errorf("ticked %d times, want 3", s.ticks)
	}
	if s.resumes != 1 {
		t.Errorf("resumed %d times, want 1", s.resumes)
	}
	if len(s.sizes) != 1 || s.sizes[0] != (Size{Width: 640, Height: 480}) {
		t.Errorf("resizes %v", s.sizes)
	}
}

func TestRunDrivesBoard(t *testing.T) {
	cfg := config.Default()
	cfg.Screen.Width, cfg.Screen.Height = 200, 100
	cfg.Points.Count = 0
	cfg.Rovers.Count = 5

	clock := time.Unix(0, 0)
	rec := &renderer.Recorder{}
	b, err := board.New(cfg, board.Options{
		Rand: rand.New(rand.NewPCG(1, 2)),
		Clock: func() time.Time {
			clock = clock.Add(time.Millisecond)
			return clock
		},
		Sink:   rec,
		Points: []geom.Vec{{X: 50, Y: 50}, {X: 150, Y: 50}},
	})
	if err != nil {
		t.Fatalf("creating board: %v", err)
	}

	tick := &manualTicker{ch: make(chan time.Time, 20)}
	for i := 0; i < 20; i++ {
		tick.ch <- time.Time{}
	}
	reason, err := Run(context.Background(), b, Options{MaxTicks: 20, NewTicker: withTicker(tick)})
	if err != nil || reason != MaxTicksReached {
		t.Fatalf("got (%v, %v), want max_ticks", reason, err)
	}
	if b.Ticks() != 20 || rec.Flushes != 20 {
		t.Errorf("ticks %d flushes %d, want 20", b.Ticks(), rec.Flushes)
	}
	if len(rec.Frame) == 0 {
		t.Error("expected cells in the last frame")
	}
}

func BenchmarkRunBoard(b *testing.B) {
	cfg := config.Default()
	brd, err := board.New(cfg, board.Options{Rand: rand.New(rand.NewPCG(3, 3))})
	if err != nil {
		b.Fatal(err)
	}
	tick := &manualTicker{ch: make(chan time.Time, 1)}
	opts := Options{NewTicker: withTicker(tick)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tick.ch <- time.Time{}
		opts.MaxTicks = brd.Ticks() + 1
		Run(context.Background(), brd, opts)
	}
}
