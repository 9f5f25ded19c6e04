package diagnostics

import (
	"math"
	"testing"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
)

func TestKineticEnergyMD(t *testing.T) {
	ps := state.NewParticleSet(2)
	ps.Push(state.Particle{Velocity: vec3.New(2, 0, 0), Mass: 1})
	ps.Push(state.Particle{Velocity: vec3.New(0, 3, 0), Mass: 2})

	got := KineticEnergyMD(ps)
	want := 0.5*1*4 + 0.5*2*9
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected KE %f, got %f", want, got)
	}
}

func TestPotentialEnergyLJZeroAtInfiniteSeparation(t *testing.T) {
	ps := state.NewParticleSet(2)
	ps.Push(state.Particle{Position: vec3.New(0, 0, 0), Mass: 1})
	ps.Push(state.Particle{Position: vec3.New(100, 0, 0), Mass: 1})

	cfg := config.DefaultMDConfig()
	pe := PotentialEnergyLJ(ps, cfg)
	if pe != 0 {
		t.Errorf("expected zero potential energy beyond cutoff, got %f", pe)
	}
}

func TestPotentialEnergyLJMinimumIsNegativeEpsilon(t *testing.T) {
	r0 := math.Pow(2, 1.0/6.0)
	ps := state.NewParticleSet(2)
	ps.Push(state.Particle{Position: vec3.New(0, 0, 0), Mass: 1})
	ps.Push(state.Particle{Position: vec3.New(r0, 0, 0), Mass: 1})

	cfg := config.DefaultMDConfig()
	pe := PotentialEnergyLJ(ps, cfg)
	if math.Abs(pe-(-cfg.Epsilon)) > 1e-9 {
		t.Errorf("expected potential energy -epsilon at LJ minimum, got %f", pe)
	}
}

func TestTemperatureEmptySet(t *testing.T) {
	ps := state.NewParticleSet(0)
	if Temperature(ps) != 0 {
		t.Error("expected zero temperature for empty particle set")
	}
}

func TestMomentumMD(t *testing.T) {
	ps := state.NewParticleSet(2)
	ps.Push(state.Particle{Velocity: vec3.New(1, 0, 0), Mass: 1})
	ps.Push(state.Particle{Velocity: vec3.New(-1, 0, 0), Mass: 1})

	p := MomentumMD(ps)
	if p != vec3.Zero {
		t.Errorf("expected zero net momentum, got %+v", p)
	}
}

func TestMomentumRB(t *testing.T) {
	bodies := []state.RigidBody{
		{Velocity: vec3.New(2, 0, 0), Mass: 3},
		{Velocity: vec3.New(0, 0, 0), Mass: 1},
	}
	p := MomentumRB(bodies)
	if p != vec3.New(6, 0, 0) {
		t.Errorf("expected momentum (6,0,0), got %+v", p)
	}
}
