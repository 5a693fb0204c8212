package systems

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rovers/components"
	"github.com/pthm-cable/rovers/geom"
)

const tol = 1e-9

func TestAdvanceOneTick(t *testing.T) {
	m := &components.Motion{
		Spawn:   geom.Vec{X: -10, Y: 50},
		Despawn: geom.Vec{X: 110, Y: 50},
		Speed:   100,
	}
	got := Advance(m.Spawn, m, 10)
	if !scalar.EqualWithinAbs(got.X, 0, tol) || !scalar.EqualWithinAbs(got.Y, 50, tol) {
		t.Errorf("expected (0, 50), got %v", got)
	}
}

func TestAdvanceRightToLeft(t *testing.T) {
	// atan would flip this rover around; atan2 keeps it heading left.
	m := &components.Motion{
		Spawn:   geom.Vec{X: 110, Y: 20},
		Despawn: geom.Vec{X: -10, Y: 80},
		Speed:   60,
	}
	got := Advance(m.Spawn, m, 60)
	if got.X >= m.Spawn.X {
		t.Errorf("expected leftward motion, got %v from %v", got, m.Spawn)
	}
	if got.Y <= m.Spawn.Y {
		t.Errorf("expected downward motion, got %v from %v", got, m.Spawn)
	}
	if d := r2.Norm(r2.Sub(got, m.Spawn)); !scalar.EqualWithinAbs(d, 1, tol) {
		t.Errorf("expected step length 1, got %f", d)
	}
}

func TestAdvancePreservesDirection(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	s := NewSpawner(rng)
	a := geom.Arena{Width: 640, Height: 480, Clip: 20}

	for trial := 0; trial < 200; trial++ {
		spawn, despawn := s.Chord(a)
		m := &components.Motion{Spawn: spawn, Despawn: despawn, Speed: 40 + rng.Float64()*200}
		want := r2.Unit(r2.Sub(despawn, spawn))

		loc := spawn
		for tick := 0; tick < 50; tick++ {
			next := Advance(loc, m, 60)
			dir := r2.Unit(r2.Sub(next, loc))
			if !scalar.EqualWithinAbs(dir.X, want.X, 1e-6) || !scalar.EqualWithinAbs(dir.Y, want.Y, 1e-6) {
				t.Fatalf("trial %d tick %d: direction %v, want %v", trial, tick, dir, want)
			}
			loc = next
		}
	}
}

func TestHeadingQuadrants(t *testing.T) {
	tests := []struct {
		name    string
		despawn geom.Vec
		want    float64
	}{
		{"east", geom.Vec{X: 1, Y: 0}, 0},
		{"south", geom.Vec{X: 0, Y: 1}, math.Pi / 2},
		{"west", geom.Vec{X: -1, Y: 0}, math.Pi},
		{"north", geom.Vec{X: 0, Y: -1}, -math.Pi / 2},
		{"south-west", geom.Vec{X: -1, Y: 1}, 3 * math.Pi / 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &components.Motion{Despawn: tc.despawn}
			if got := Heading(m); !scalar.EqualWithinAbs(got, tc.want, tol) {
				t.Errorf("Heading = %f, want %f", got, tc.want)
			}
		})
	}
}
