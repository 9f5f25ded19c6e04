// Package rigidbody implements the substep integrator and pairwise contact
// solver for Minerva's rigid spheres: semi-implicit Euler integration,
// ground-plane collision, and a grid-accelerated, Baumgarte-stabilized
// impulse solver with a ground-contact pinning heuristic.
package rigidbody

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
	"github.com/dkastner/minerva/internal/world"
)

// cellCoord is a body's integer grid cell at the start of a pair-solver
// iteration.
type cellCoord struct {
	x, y, z int32
}

// System advances world.RigidBodies. It owns a persistent spatial hash
// (grid) and the per-body cell coordinates computed against it, both
// cleared and reused across pair-solver iterations rather than
// reallocated.
type System struct {
	cfg config.RigidBodySystemConfig

	grid    map[int64][]int
	touched []int64
	cells   []cellCoord

	hasher hash.Hash64
	keyBuf [12]byte
}

// New constructs a rigid-body system with the given solver configuration.
func New(cfg config.RigidBodySystemConfig) *System {
	return &System{
		cfg:    cfg,
		grid:   make(map[int64][]int),
		hasher: fnv.New64a(),
	}
}

// Name returns the subsystem's stable identifier.
func (s *System) Name() string { return "RigidBodySystem" }

// Step advances every rigid body by dt across cfg.Substeps internal
// substeps, each running integrate+ground, grid-accelerated pair
// resolution, and a final ground clamp.
func (s *System) Step(w *world.World, dt float64) {
	bodies := w.RigidBodies
	if len(bodies) == 0 {
		return
	}

	substeps := s.cfg.Substeps
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float64(substeps)

	for i := 0; i < substeps; i++ {
		s.integrateAndGround(w, bodies, h)
		s.resolvePairs(bodies)
		s.clampGround(bodies)
	}
}

// integrateAndGround runs phase 1: semi-implicit Euler under gravity for
// every non-kinematic, positive-mass body, followed by the ground-plane
// snap-and-reflect rule.
func (s *System) integrateAndGround(w *world.World, bodies []state.RigidBody, h float64) {
	for i := range bodies {
		rb := &bodies[i]
		if rb.Immovable() {
			continue
		}
		rb.Velocity = rb.Velocity.AddScaled(w.Gravity, h)
		rb.Position = rb.Position.AddScaled(rb.Velocity, h)
		s.groundClamp(rb)
	}
}

// clampGround runs phase 4: the ground-plane safety net applied after pair
// resolution, in case a correction pushed a body back through the floor.
func (s *System) clampGround(bodies []state.RigidBody) {
	for i := range bodies {
		s.groundClamp(&bodies[i])
	}
}

// groundClamp snaps rb above the ground target and, on a downward normal
// velocity, reflects it with restitution and damps the tangential
// components as a crude friction surrogate.
func (s *System) groundClamp(rb *state.RigidBody) {
	if rb.Immovable() {
		return
	}
	target := s.cfg.GroundY + rb.Radius + s.cfg.ContactOffset
	if rb.Position.Y < target {
		rb.Position.Y = target
		if rb.Velocity.Y < 0 {
			rb.Velocity.Y = -s.cfg.Restitution * rb.Velocity.Y
			rb.Velocity.X *= 0.98
			rb.Velocity.Z *= 0.98
		}
	}
}

// isGrounded reports whether rb's underside sits at or below the ground
// plane within tolerance, the trigger for the pinning heuristic.
func (s *System) isGrounded(rb *state.RigidBody) bool {
	return rb.Position.Y-rb.Radius <= s.cfg.GroundY+s.cfg.ContactOffset+1e-6
}

// resolvePairs runs phase 2-3: up to cfg.PairIterations rounds of
// rebuild-grid-then-resolve, stopping early once the largest penetration
// found in a round drops below cfg.PenetrationSlop.
func (s *System) resolvePairs(bodies []state.RigidBody) {
	n := len(bodies)
	maxRadius := 0.0
	for i := range bodies {
		if bodies[i].Radius > maxRadius {
			maxRadius = bodies[i].Radius
		}
	}
	if maxRadius <= 0 {
		return
	}
	cellSize := math.Max(2*maxRadius, 1e-6)

	iterations := s.cfg.PairIterations
	if iterations < 1 {
		iterations = 1
	}

	for iter := 0; iter < iterations; iter++ {
		s.buildGrid(bodies, cellSize)

		maxPen := 0.0
		for i := 0; i < n; i++ {
			c := s.cells[i]
			for dz := int32(-1); dz <= 1; dz++ {
				for dy := int32(-1); dy <= 1; dy++ {
					for dx := int32(-1); dx <= 1; dx++ {
						key := s.cellKey(c.x+dx, c.y+dy, c.z+dz)
						for _, j := range s.grid[key] {
							if j <= i {
								continue
							}
							pen := s.resolvePair(&bodies[i], &bodies[j])
							if pen > maxPen {
								maxPen = pen
							}
						}
					}
				}
			}
		}

		if maxPen < s.cfg.PenetrationSlop {
			break
		}
	}
}

// resolvePair applies Baumgarte position correction and a restitution
// impulse to a colliding pair, honoring the ground-contact pinning
// heuristic, and returns the pair's penetration depth (0 if the pair does
// not overlap).
func (s *System) resolvePair(a, b *state.RigidBody) float64 {
	d := b.Position.Sub(a.Position)
	dist2 := d.Norm2()
	target := a.Radius + b.Radius + s.cfg.ContactOffset
	if dist2 >= target*target {
		return 0
	}

	dist := math.Sqrt(math.Max(dist2, 1e-16))
	n := vec3.UnitX
	if dist > 1e-12 {
		n = d.Scale(1 / dist)
	}
	penetration := math.Max(target-dist, 0)

	aStatic := a.Immovable()
	bStatic := b.Immovable()
	if n.Y > 0.2 && s.isGrounded(a) {
		aStatic = true
	}
	if n.Y < -0.2 && s.isGrounded(b) {
		bStatic = true
	}

	wa, wb := 0.0, 0.0
	if !aStatic {
		wa = 1 / a.Mass
	}
	if !bStatic {
		wb = 1 / b.Mass
	}
	W := wa + wb
	if W <= 0 {
		return penetration
	}

	delta := n.Scale(s.cfg.Baumgarte * penetration / W)
	a.Position = a.Position.Sub(delta.Scale(wa))
	b.Position = b.Position.Add(delta.Scale(wb))

	vrel := b.Velocity.Sub(a.Velocity)
	vn := vrel.Dot(n)
	if vn < 0 {
		j := -(1 + s.cfg.Restitution) * vn / W
		a.Velocity = a.Velocity.Sub(n.Scale(j * wa))
		b.Velocity = b.Velocity.Add(n.Scale(j * wb))
		if !s.cfg.DisableJitterDamp {
			a.Velocity = a.Velocity.Scale(0.999)
			b.Velocity = b.Velocity.Scale(0.999)
		}
	}

	return penetration
}

// buildGrid rebuilds the spatial hash for the current body positions,
// reusing the map's existing bucket slices and the cell-coordinate scratch
// buffer rather than reallocating them.
func (s *System) buildGrid(bodies []state.RigidBody, cellSize float64) {
	for _, k := range s.touched {
		s.grid[k] = s.grid[k][:0]
	}
	s.touched = s.touched[:0]

	if cap(s.cells) < len(bodies) {
		s.cells = make([]cellCoord, len(bodies))
	} else {
		s.cells = s.cells[:len(bodies)]
	}

	for i := range bodies {
		p := bodies[i].Position
		c := cellCoord{
			x: int32(math.Floor(p.X / cellSize)),
			y: int32(math.Floor(p.Y / cellSize)),
			z: int32(math.Floor(p.Z / cellSize)),
		}
		s.cells[i] = c

		key := s.cellKey(c.x, c.y, c.z)
		if len(s.grid[key]) == 0 {
			s.touched = append(s.touched, key)
		}
		s.grid[key] = append(s.grid[key], i)
	}
}

// cellKey hashes a cell coordinate into a map key via FNV-1a. Hash
// collisions between distinct cells are tolerated: they only widen the
// candidate set a pair check has to reject, never narrow it.
func (s *System) cellKey(x, y, z int32) int64 {
	binary.LittleEndian.PutUint32(s.keyBuf[0:4], uint32(x))
	binary.LittleEndian.PutUint32(s.keyBuf[4:8], uint32(y))
	binary.LittleEndian.PutUint32(s.keyBuf[8:12], uint32(z))
	s.hasher.Reset()
	s.hasher.Write(s.keyBuf[:])
	return int64(s.hasher.Sum64())
}
