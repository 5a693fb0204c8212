package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseMove)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseTessellate)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[PhaseMove]; !ok {
		t.Error("expected move phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseTessellate]; !ok {
		t.Error("expected tessellate phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseRender]; ok {
		t.Error("render phase never ran")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseBuffer)
		pc.EndTick()
	}

	if pc.sampleCount != 5 {
		t.Errorf("expected window capped at 5 samples, got %d", pc.sampleCount)
	}
	if pc.writeIndex != 0 {
		t.Errorf("expected write index to wrap to 0, got %d", pc.writeIndex)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseLifecycle)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseTessellate)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	fast := stats.PhasePct[PhaseLifecycle]
	slow := stats.PhasePct[PhaseTessellate]
	if slow <= fast {
		t.Errorf("expected tessellate (%v%%) > lifecycle (%v%%)", slow, fast)
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.TessellatePct != slow {
		t.Errorf("unexpected csv row %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_Nil(t *testing.T) {
	var pc *PerfCollector
	pc.StartTick()
	pc.StartPhase(PhaseMove)
	pc.EndTick()
	pc.RecordFrame()
	if stats := pc.Stats(); stats.PhaseAvg == nil {
		t.Error("nil collector should return usable stats")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0,70] with 16ms frame time, got %v", stats.FPS)
	}
}
