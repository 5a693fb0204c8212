package systems

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/rovers/components"
	"github.com/pthm-cable/rovers/geom"
)

// Lifecycle policy names as used in configuration.
const (
	LifecycleRespawn = "respawn"
	LifecycleDynamic = "dynamic"
)

// Population is the live rover set a lifecycle policy manages. Indices are
// live order; Remove shifts later rovers down by one.
type Population interface {
	Len() int
	Rover(i int) (*components.Location, *components.Motion)
	// Respawn assigns rover i a fresh color, speed and chord and moves it to
	// the chord's spawn point.
	Respawn(i int)
	// Spawn appends a new rover on a fresh chord.
	Spawn()
	Remove(i int)
}

// LifecycleEvents counts what a policy did during one tick.
type LifecycleEvents struct {
	Respawned int
	Spawned   int
	Removed   int
}

// Lifecycle decides when rovers appear, reappear and disappear.
type Lifecycle interface {
	Name() string
	Update(pop Population, arena geom.Arena) LifecycleEvents
}

// RespawnInPlace keeps a fixed set of rovers. A rover that was never placed
// or has left the clipped arena is respawned in its own slot.
type RespawnInPlace struct{}

// Name implements Lifecycle.
func (RespawnInPlace) Name() string { return LifecycleRespawn }

// Update implements Lifecycle.
func (RespawnInPlace) Update(pop Population, arena geom.Arena) LifecycleEvents {
	var ev LifecycleEvents
	for i := 0; i < pop.Len(); i++ {
		loc, m := pop.Rover(i)
		if !m.Placed || !arena.InClip(loc.Vec) {
			pop.Respawn(i)
			ev.Respawned++
		}
	}
	return ev
}

// DynamicSpawn creates rovers on a per-tick Bernoulli trial and removes each
// one after it has entered the visible arena and then left the clipped arena.
// When MaxPopulation is positive the oldest rovers are pruned beyond it.
type DynamicSpawn struct {
	MaxPopulation int

	trial distuv.Bernoulli
}

// NewDynamicSpawn creates the policy. A rover is spawned with probability
// 1/(targetFPS*meanInterval) per tick, i.e. on average every meanInterval
// seconds at the target frame rate.
func NewDynamicSpawn(targetFPS, meanInterval float64, maxPopulation int, rng *rand.Rand) (*DynamicSpawn, error) {
	if targetFPS <= 0 || meanInterval <= 0 {
		return nil, fmt.Errorf("dynamic spawn needs positive fps and interval, got %g and %g", targetFPS, meanInterval)
	}
	p := 1 / (targetFPS * meanInterval)
	if p > 1 {
		p = 1
	}
	return &DynamicSpawn{
		MaxPopulation: maxPopulation,
		trial:         distuv.Bernoulli{P: p, Src: rng},
	}, nil
}

// Name implements Lifecycle.
func (*DynamicSpawn) Name() string { return LifecycleDynamic }

// Probability returns the per-tick spawn probability.
func (d *DynamicSpawn) Probability() float64 { return d.trial.P }

// Update implements Lifecycle.
func (d *DynamicSpawn) Update(pop Population, arena geom.Arena) LifecycleEvents {
	var ev LifecycleEvents

	// Walk backwards so removals don't shift rovers not yet visited.
	for i := pop.Len() - 1; i >= 0; i-- {
		loc, m := pop.Rover(i)
		switch {
		case !m.Placed:
			pop.Respawn(i)
			ev.Spawned++
		case arena.Interior(loc.Vec):
			m.Entered = true
		case m.Entered && !arena.InClip(loc.Vec):
			pop.Remove(i)
			ev.Removed++
		}
	}

	if d.trial.Rand() == 1 {
		pop.Spawn()
		ev.Spawned++
	}

	if d.MaxPopulation > 0 {
		for pop.Len() > d.MaxPopulation {
			pop.Remove(0)
			ev.Removed++
		}
	}
	return ev
}
