// Package mdsystem implements the velocity-Verlet integrator for Minerva's
// microscopic MD particles: pairwise Lennard-Jones forces, an optional
// Berendsen thermostat, and lazy coupling to the Verlet neighbor list.
package mdsystem

import (
	"math"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/neighbor"
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
	"github.com/dkastner/minerva/internal/world"
)

// System advances world.MDParticles under a truncated Lennard-Jones
// potential. It owns a persistent force buffer and, when enabled, a
// neighbor list, both reused in place across steps to stay off the
// allocator hot path.
type System struct {
	cfg      config.MDConfig
	nlistCfg config.NeighborListConfig

	nlist           *neighbor.List
	stepsSinceCheck int

	forces []vec3.Vec3
}

// New constructs an MD system. nlistCfg supplies the cell-size factor and
// stats toggle; cutoff and skin are always taken from cfg (RcutSigma*Sigma
// and NlistSkin) so the two configs cannot disagree about interaction
// range.
func New(cfg config.MDConfig, nlistCfg config.NeighborListConfig) *System {
	return &System{cfg: cfg, nlistCfg: nlistCfg}
}

// Name returns the subsystem's stable identifier.
func (s *System) Name() string { return "MDSystem" }

// Step advances every MD particle by dt via one velocity-Verlet step:
// half-kick, drift, force recompute, half-kick, optional thermostat.
func (s *System) Step(w *world.World, dt float64) {
	ps := w.MDParticles
	n := ps.Len()
	if n == 0 {
		return
	}

	if s.cfg.UseNeighborList {
		s.stepsSinceCheck++
		switch {
		case s.nlist == nil:
			s.rebuildList(ps)
			s.stepsSinceCheck = 0
		case s.stepsSinceCheck >= s.cfg.NlistCheckInterval:
			if s.nlist.NeedsRebuild(ps.Positions()) {
				s.rebuildList(ps)
			}
			s.stepsSinceCheck = 0
		}
	}

	s.computeForces(ps)
	for i := range ps.Data {
		p := &ps.Data[i]
		a := s.forces[i].Scale(1 / p.Mass)
		p.Velocity = p.Velocity.AddScaled(a, dt/2)
		p.Position = p.Position.AddScaled(p.Velocity, dt)
	}

	s.computeForces(ps)
	for i := range ps.Data {
		p := &ps.Data[i]
		a := s.forces[i].Scale(1 / p.Mass)
		p.Velocity = p.Velocity.AddScaled(a, dt/2)
	}

	if s.cfg.NVT {
		s.applyThermostat(ps, dt)
	}
}

// rebuildList recomputes the domain as the bounding box of current
// positions expanded by 2*(rc+skin) on each side, then rebuilds the grid
// and pair list against it.
func (s *System) rebuildList(ps *state.ParticleSet) {
	positions := ps.Positions()
	rc := s.cfg.RcutSigma * s.cfg.Sigma
	margin := 2 * (rc + s.cfg.NlistSkin)

	lo, hi := boundingBox(positions)
	pad := vec3.New(margin, margin, margin)
	lo = lo.Sub(pad)
	hi = hi.Add(pad)

	cfg := neighbor.Config{
		Cutoff:         rc,
		Skin:           s.cfg.NlistSkin,
		CellSizeFactor: s.nlistCfg.CellSizeFactor,
		DomainMin:      lo,
		DomainMax:      hi,
		EnableStats:    s.nlistCfg.EnableStats,
	}

	if s.nlist == nil {
		s.nlist = neighbor.New(cfg)
	} else {
		s.nlist.SetDomain(lo, hi)
	}
	s.nlist.Build(positions)
}

func boundingBox(positions []vec3.Vec3) (lo, hi vec3.Vec3) {
	if len(positions) == 0 {
		return vec3.Zero, vec3.Zero
	}
	lo, hi = positions[0], positions[0]
	for _, p := range positions[1:] {
		lo = vec3.New(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = vec3.New(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	return
}

// computeForces fills s.forces with the pairwise Lennard-Jones force on
// every particle, either from the neighbor list's pair set or, when the
// list is disabled, the full upper-triangular enumeration.
func (s *System) computeForces(ps *state.ParticleSet) {
	n := ps.Len()
	if cap(s.forces) < n {
		s.forces = make([]vec3.Vec3, n)
	} else {
		s.forces = s.forces[:n]
		for i := range s.forces {
			s.forces[i] = vec3.Zero
		}
	}

	rc := s.cfg.RcutSigma * s.cfg.Sigma
	rc2 := rc * rc
	sig2 := s.cfg.Sigma * s.cfg.Sigma
	sig6 := sig2 * sig2 * sig2
	sig12 := sig6 * sig6

	apply := func(i, j int) {
		rij := ps.Data[j].Position.Sub(ps.Data[i].Position)
		r2 := rij.Norm2()
		if r2 > rc2 || r2 == 0 {
			return
		}

		u := 1 / r2
		u3 := u * u * u
		u6 := u3 * u3
		mag := 24 * s.cfg.Epsilon * u * (2*sig12*u6 - sig6*u3)

		f := rij.Scale(mag)
		s.forces[i] = s.forces[i].Sub(f)
		s.forces[j] = s.forces[j].Add(f)
	}

	if s.cfg.UseNeighborList && s.nlist != nil {
		for _, pair := range s.nlist.Pairs() {
			apply(pair.I, pair.J)
		}
		return
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			apply(i, j)
		}
	}
}

// applyThermostat rescales every velocity by the Berendsen factor that
// nudges the instantaneous temperature toward cfg.Temp over cfg.TauThermo.
func (s *System) applyThermostat(ps *state.ParticleSet, dt float64) {
	n := ps.Len()
	ke := 0.0
	for i := range ps.Data {
		ke += 0.5 * ps.Data[i].Mass * ps.Data[i].Velocity.Norm2()
	}
	tInst := (2.0 / 3.0) * ke / float64(n)
	if tInst == 0 {
		return
	}

	lambda := math.Sqrt(1 + (dt/s.cfg.TauThermo)*(s.cfg.Temp/tInst-1))
	for i := range ps.Data {
		ps.Data[i].Velocity = ps.Data[i].Velocity.Scale(lambda)
	}
}
