package world

import (
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
)

// DefaultGravity matches the reference SI-flavored default; the integrators
// themselves are otherwise unit-agnostic.
var DefaultGravity = vec3.New(0, -9.81, 0)

// World is the shared state advanced one tick at a time. By convention the
// rigid-body solver touches only RigidBodies and the MD subsystem touches
// only MDParticles; both read Gravity. Neither touches Time — the world
// advances it after the scheduler returns.
type World struct {
	Time        float64
	Gravity     vec3.Vec3
	RigidBodies []state.RigidBody
	MDParticles *state.ParticleSet
	Scheduler   Scheduler
}

// New returns an empty world with default gravity and an empty particle
// set.
func New() *World {
	return &World{
		Gravity:     DefaultGravity,
		MDParticles: state.NewParticleSet(0),
	}
}

// Step runs the scheduler once over local_dt = dt and then advances Time by
// exactly dt.
func (w *World) Step(dt float64) {
	w.Scheduler.Tick(w, dt)
	w.Time += dt
}
