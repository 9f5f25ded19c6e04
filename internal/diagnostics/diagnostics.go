// Package diagnostics computes instantaneous scalar observables over world
// state: energy, temperature, and momentum. These are read-only snapshots,
// not accumulators wired into the scheduler.
package diagnostics

import (
	"math"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
	"github.com/dkastner/minerva/internal/world"
)

// KineticEnergyMD returns the total kinetic energy of the MD particle set.
func KineticEnergyMD(ps *state.ParticleSet) float64 {
	ke := 0.0
	for _, p := range ps.Data {
		ke += 0.5 * p.Mass * p.Velocity.Norm2()
	}
	return ke
}

// KineticEnergyRB returns the total kinetic energy of the rigid bodies.
func KineticEnergyRB(bodies []state.RigidBody) float64 {
	ke := 0.0
	for _, rb := range bodies {
		ke += 0.5 * rb.Mass * rb.Velocity.Norm2()
	}
	return ke
}

// PotentialEnergyLJ returns the total truncated Lennard-Jones potential
// energy across all particle pairs within rc = cfg.RcutSigma*cfg.Sigma.
// It always enumerates the full pair set: unlike the force kernel, this is
// a diagnostic path, not a hot loop coupled to the neighbor list.
func PotentialEnergyLJ(ps *state.ParticleSet, cfg config.MDConfig) float64 {
	rc := cfg.RcutSigma * cfg.Sigma
	rc2 := rc * rc
	sig6 := math.Pow(cfg.Sigma, 6)

	pe := 0.0
	for i := 0; i < len(ps.Data); i++ {
		for j := i + 1; j < len(ps.Data); j++ {
			r2 := ps.Data[j].Position.Sub(ps.Data[i].Position).Norm2()
			if r2 > rc2 || r2 == 0 {
				continue
			}
			sr6 := sig6 / (r2 * r2 * r2)
			pe += 4 * cfg.Epsilon * (sr6*sr6 - sr6)
		}
	}
	return pe
}

// Temperature returns the instantaneous kinetic temperature of an MD
// particle set, T = (2/3)*KE/N with k_B = 1. Returns 0 for an empty set.
func Temperature(ps *state.ParticleSet) float64 {
	n := ps.Len()
	if n == 0 {
		return 0
	}
	return (2.0 / 3.0) * KineticEnergyMD(ps) / float64(n)
}

// MomentumMD returns the total linear momentum of the MD particle set.
func MomentumMD(ps *state.ParticleSet) vec3.Vec3 {
	p := vec3.Zero
	for _, particle := range ps.Data {
		p = p.AddScaled(particle.Velocity, particle.Mass)
	}
	return p
}

// MomentumRB returns the total linear momentum of the rigid bodies.
func MomentumRB(bodies []state.RigidBody) vec3.Vec3 {
	p := vec3.Zero
	for _, rb := range bodies {
		p = p.AddScaled(rb.Velocity, rb.Mass)
	}
	return p
}

// TotalEnergyMD returns kinetic plus Lennard-Jones potential energy for the
// world's MD particles, the quantity NVE runs are expected to conserve.
func TotalEnergyMD(w *world.World, cfg config.MDConfig) float64 {
	return KineticEnergyMD(w.MDParticles) + PotentialEnergyLJ(w.MDParticles, cfg)
}
