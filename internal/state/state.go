// Package state holds the two body kinds the Minerva world advances:
// rigid spheres and Lennard-Jones MD particles.
package state

import "github.com/dkastner/minerva/internal/vec3"

// RigidBody is a sphere subject to gravity, ground contact, and pairwise
// collisions. A body with Mass <= 0 or Kinematic set is treated as having
// infinite mass: the rigid-body solver leaves it untouched.
type RigidBody struct {
	Position   vec3.Vec3
	Velocity   vec3.Vec3
	Mass       float64
	Radius     float64
	Kinematic  bool
}

// Immovable reports whether the solver should treat rb as having infinite
// mass and therefore never integrate it.
func (rb *RigidBody) Immovable() bool {
	return rb.Kinematic || rb.Mass <= 0
}

// Particle is a point mass in the MD subsystem, interacting through the
// Lennard-Jones potential.
type Particle struct {
	Position vec3.Vec3
	Velocity vec3.Vec3
	Mass     float64
}

// ParticleSet is a dense, index-addressed sequence of particles. Indices
// are stable for the lifetime of a NeighborList built against a snapshot of
// this set.
type ParticleSet struct {
	Data []Particle
}

// NewParticleSet returns an empty set with capacity reserved for n
// particles.
func NewParticleSet(n int) *ParticleSet {
	return &ParticleSet{Data: make([]Particle, 0, n)}
}

// Len returns the number of particles.
func (ps *ParticleSet) Len() int { return len(ps.Data) }

// Push appends a particle, returning its stable index.
func (ps *ParticleSet) Push(p Particle) int {
	ps.Data = append(ps.Data, p)
	return len(ps.Data) - 1
}

// Positions extracts a fresh slice of current positions, indexed the same
// way as Data. Used to feed the neighbor list and the force kernels.
func (ps *ParticleSet) Positions() []vec3.Vec3 {
	out := make([]vec3.Vec3, len(ps.Data))
	for i := range ps.Data {
		out[i] = ps.Data[i].Position
	}
	return out
}
