package scenario

import (
	"math"
	"testing"

	"github.com/dkastner/minerva/internal/config"
)

func TestRegistryListsBuiltins(t *testing.T) {
	r := NewRegistry()
	names := r.List()
	want := []string{"demo", "drop", "lj-dimer", "lattice-nvt", "cradle", "gas-expansion"}
	for _, n := range want {
		found := false
		for _, got := range names {
			if got == n {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected registry to contain %q, got %v", n, names)
		}
	}
}

func TestBuildUnknownScenario(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Build("nonexistent", config.DefaultConfig()); err == nil {
		t.Error("expected error building an unknown scenario")
	}
}

func TestBuildDropHasOneBody(t *testing.T) {
	r := NewRegistry()
	w, err := r.Build("drop", config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(w.RigidBodies) != 1 {
		t.Fatalf("expected 1 rigid body, got %d", len(w.RigidBodies))
	}
	if len(w.Scheduler.Entries()) != 1 {
		t.Errorf("expected 1 scheduled subsystem, got %d", len(w.Scheduler.Entries()))
	}
}

func TestBuildLJDimerAtEquilibrium(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	w, err := r.Build("lj-dimer", cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.MDParticles.Len() != 2 {
		t.Fatalf("expected 2 particles, got %d", w.MDParticles.Len())
	}
	sep := w.MDParticles.Data[1].Position.Sub(w.MDParticles.Data[0].Position).Norm()
	want := cfg.MD.Sigma * math.Pow(2, 1.0/6.0)
	if math.Abs(sep-want) > 1e-9 {
		t.Errorf("expected separation %f, got %f", want, sep)
	}
}

func TestBuildLatticeNVTParticleCount(t *testing.T) {
	r := NewRegistry()
	w, err := r.Build("lattice-nvt", config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.MDParticles.Len() != 512 {
		t.Errorf("expected 512 particles, got %d", w.MDParticles.Len())
	}
}

func TestBuildCradleGivesLeftmostVelocity(t *testing.T) {
	r := NewRegistry()
	w, err := r.Build("cradle", config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(w.RigidBodies) != 7 {
		t.Fatalf("expected 7 spheres, got %d", len(w.RigidBodies))
	}
	if w.RigidBodies[0].Velocity.X != 5 {
		t.Errorf("expected leftmost sphere velocity.x=5, got %f", w.RigidBodies[0].Velocity.X)
	}
	for i := 1; i < len(w.RigidBodies); i++ {
		if w.RigidBodies[i].Velocity.Norm() != 0 {
			t.Errorf("expected sphere %d to start at rest, got %+v", i, w.RigidBodies[i].Velocity)
		}
	}
}

func TestBuildGasExpansionParticleCount(t *testing.T) {
	r := NewRegistry()
	w, err := r.Build("gas-expansion", config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if w.MDParticles.Len() != 1000 {
		t.Errorf("expected 1000 particles, got %d", w.MDParticles.Len())
	}
	if w.Gravity.Norm() != 0 {
		t.Errorf("expected zero gravity for gas expansion, got %+v", w.Gravity)
	}
}

func TestBuildDemoCombinesBothSubsystems(t *testing.T) {
	r := NewRegistry()
	w, err := r.Build("demo", config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(w.RigidBodies) != 125 {
		t.Errorf("expected 125 rigid bodies, got %d", len(w.RigidBodies))
	}
	if w.MDParticles.Len() != 216 {
		t.Errorf("expected 216 MD particles, got %d", w.MDParticles.Len())
	}
	if len(w.Scheduler.Entries()) != 2 {
		t.Errorf("expected 2 scheduled subsystems, got %d", len(w.Scheduler.Entries()))
	}
}

func TestSeedDeterminism(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Seed = 7

	w1, _ := r.Build("lattice-nvt", cfg)
	w2, _ := r.Build("lattice-nvt", cfg)

	for i := range w1.MDParticles.Data {
		if w1.MDParticles.Data[i].Velocity != w2.MDParticles.Data[i].Velocity {
			t.Fatalf("expected identical velocities for identical seed at index %d", i)
		}
	}
}
