package scenario

import (
	"math"
	"math/rand"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/mdsystem"
	"github.com/dkastner/minerva/internal/rigidbody"
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
	"github.com/dkastner/minerva/internal/world"
)

// buildDrop is Scenario A: a single sphere released above the ground plane.
func buildDrop(cfg *config.Config) (*world.World, error) {
	w := world.New()
	w.RigidBodies = []state.RigidBody{
		{Position: vec3.New(0, 1, 0), Radius: 0.25, Mass: 1},
	}
	w.Scheduler.Add(rigidbody.New(cfg.RigidBody), 1)
	return w, nil
}

// buildLJDimer is Scenario B: two Lennard-Jones particles at rest, offset
// exactly to the potential's minimum separation.
func buildLJDimer(cfg *config.Config) (*world.World, error) {
	w := world.New()
	r0 := cfg.MD.Sigma * math.Pow(2, 1.0/6.0)
	w.MDParticles = state.NewParticleSet(2)
	w.MDParticles.Push(state.Particle{Position: vec3.New(0, 0, 0), Mass: 1})
	w.MDParticles.Push(state.Particle{Position: vec3.New(r0, 0, 0), Mass: 1})
	w.Scheduler.Add(mdsystem.New(cfg.MD, cfg.Neighbor), 1)
	return w, nil
}

// buildLatticeNVT is Scenario C: an 8x8x8 cubic lattice of MD particles at
// Maxwell-Boltzmann velocities for T = 2.0. Thermostat settings come from
// cfg.MD as given; the builder does not turn NVT on itself.
func buildLatticeNVT(cfg *config.Config) (*world.World, error) {
	const side = 8
	const spacing = 1.3
	const initTemp = 2.0

	rng := rand.New(rand.NewSource(cfg.Seed))
	w := world.New()
	w.MDParticles = state.NewParticleSet(side * side * side)

	sigma := math.Sqrt(initTemp)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			for k := 0; k < side; k++ {
				w.MDParticles.Push(state.Particle{
					Position: vec3.New(float64(i)*spacing, float64(j)*spacing, float64(k)*spacing),
					Velocity: vec3.New(rng.NormFloat64()*sigma, rng.NormFloat64()*sigma, rng.NormFloat64()*sigma),
					Mass:     1,
				})
			}
		}
	}

	w.Scheduler.Add(mdsystem.New(cfg.MD, cfg.Neighbor), 1)
	return w, nil
}

// buildCradle is Scenario D: seven touching spheres, the leftmost struck to
// start a Newton's-cradle collision cascade.
func buildCradle(cfg *config.Config) (*world.World, error) {
	const n = 7
	const radius = 0.3
	spacing := radius * 2.0

	w := world.New()
	bodies := make([]state.RigidBody, n)
	for i := 0; i < n; i++ {
		bodies[i] = state.RigidBody{
			Position: vec3.New(float64(i)*spacing, 2.0, 0),
			Radius:   radius,
			Mass:     1,
		}
	}
	bodies[0].Velocity = vec3.New(5, 0, 0)
	w.RigidBodies = bodies

	w.Scheduler.Add(rigidbody.New(cfg.RigidBody), 1)
	return w, nil
}

// buildGasExpansion is Scenario E: a dense compressed cube of particles
// with thermal random velocities, expanding freely under NVE dynamics.
func buildGasExpansion(cfg *config.Config) (*world.World, error) {
	const side = 10
	const spacing = 0.9
	origin := -0.5 * spacing * (side - 1)

	rng := rand.New(rand.NewSource(cfg.Seed))
	w := world.New()
	w.Gravity = vec3.Zero
	w.MDParticles = state.NewParticleSet(side * side * side)

	sigma := math.Sqrt(2.0)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			for k := 0; k < side; k++ {
				w.MDParticles.Push(state.Particle{
					Position: vec3.New(origin+float64(i)*spacing, origin+float64(j)*spacing, origin+float64(k)*spacing),
					Velocity: vec3.New(rng.NormFloat64()*sigma, rng.NormFloat64()*sigma, rng.NormFloat64()*sigma),
					Mass:     1,
				})
			}
		}
	}

	w.Scheduler.Add(mdsystem.New(cfg.MD, cfg.Neighbor), 1)
	return w, nil
}

// buildDemo combines a small stack of rigid spheres with a loose
// Lennard-Jones cloud, both advanced in the same world, mirroring the
// original sanity-check demo this engine was built to reproduce.
func buildDemo(cfg *config.Config) (*world.World, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	w := world.New()

	const layers = 5
	bodies := make([]state.RigidBody, 0, layers*layers*layers)
	for y := 0; y < layers; y++ {
		for x := 0; x < layers; x++ {
			for z := 0; z < layers; z++ {
				jx := 0.05 * (2*rng.Float64() - 1)
				jz := 0.05 * (2*rng.Float64() - 1)
				bodies = append(bodies, state.RigidBody{
					Position: vec3.New(-0.5+float64(x)*0.55+jx, 2.0+float64(y)*0.55, -0.5+float64(z)*0.55+jz),
					Radius:   0.25,
					Mass:     1,
				})
			}
		}
	}
	w.RigidBodies = bodies

	const side = 6
	const spacing = 1.2
	w.MDParticles = state.NewParticleSet(side * side * side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			for k := 0; k < side; k++ {
				w.MDParticles.Push(state.Particle{
					Position: vec3.New(3.0+float64(i)*spacing, 1.0+float64(j)*spacing, -2.0+float64(k)*spacing),
					Mass:     1,
				})
			}
		}
	}

	w.Scheduler.Add(rigidbody.New(cfg.RigidBody), 1)
	w.Scheduler.Add(mdsystem.New(cfg.MD, cfg.Neighbor), 1)
	return w, nil
}
