package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	values := []float64{100, 20, 30, 40, 50, 60, 70, 80, 90, 10}
	mean, p10, p50, p90 := ComputeStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if math.Abs(p10-19) > 0.01 {
		t.Errorf("p10 = %v, want ~19", p10)
	}
	if math.Abs(p50-55) > 0.01 {
		t.Errorf("p50 = %v, want ~55", p50)
	}
	if math.Abs(p90-91) > 0.01 {
		t.Errorf("p90 = %v, want ~91", p90)
	}
	if values[0] != 100 {
		t.Error("input should not be reordered")
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10, 0.1)

	if c.ShouldFlush(9) {
		t.Error("window not complete at tick 9")
	}
	if !c.ShouldFlush(10) {
		t.Error("window complete at tick 10")
	}

	c.RecordLifecycle(2, 1, 0)
	c.RecordLifecycle(1, 0, 3)
	c.RecordSkippedCells(4)
	c.RecordFrame(true, 1)
	c.RecordFrame(true, 2)
	c.RecordFrame(false, 0)
	c.RecordTrip(20)
	c.RecordTrip(40)

	s := c.Flush(10, 5, 7, []float64{10, 20, 30}, 59.5)
	if s.Spawned != 3 || s.Respawned != 1 || s.Removed != 3 {
		t.Errorf("unexpected lifecycle counts %+v", s)
	}
	if s.SkippedCells != 4 || s.LowFrames != 2 || s.MaxLowRun != 2 {
		t.Errorf("unexpected frame counts %+v", s)
	}
	if s.Points != 5 || s.Rovers != 7 || s.FPS != 59.5 {
		t.Errorf("unexpected population %+v", s)
	}
	if math.Abs(s.SimTimeSec-1) > 1e-9 {
		t.Errorf("sim time = %v, want 1", s.SimTimeSec)
	}
	if s.Trips != 2 || math.Abs(s.TripMean-3) > 1e-9 {
		t.Errorf("trips = %d mean %v, want 2 and 3s", s.Trips, s.TripMean)
	}
	if math.Abs(s.SpeedP50-20) > 1e-9 {
		t.Errorf("speed p50 = %v, want 20", s.SpeedP50)
	}

	// Counters reset and the window restarts at the flush tick.
	next := c.Flush(20, 5, 7, nil, 60)
	if next.Spawned != 0 || next.Trips != 0 || next.MaxLowRun != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("window start = %d, want 10", next.WindowStartTick)
	}
}

func TestCollectorNil(t *testing.T) {
	var c *Collector
	c.RecordLifecycle(1, 1, 1)
	c.RecordTrip(3)
	c.RecordSkippedCells(1)
	c.RecordFrame(true, 1)
	if c.ShouldFlush(1000) {
		t.Error("nil collector never flushes")
	}
}
