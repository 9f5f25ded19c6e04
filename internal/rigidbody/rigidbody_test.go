package rigidbody

import (
	"math"
	"testing"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
	"github.com/dkastner/minerva/internal/world"
)

func newWorldWithBodies(bodies ...state.RigidBody) *world.World {
	w := world.New()
	w.RigidBodies = bodies
	return w
}

func TestSingleSphereDrop(t *testing.T) {
	w := newWorldWithBodies(state.RigidBody{
		Position: vec3.New(0, 1, 0),
		Mass:     1,
		Radius:   0.25,
	})

	cfg := config.DefaultRigidBodySystemConfig()
	cfg.Restitution = 0.7
	sys := New(cfg)

	dt := 1.0 / 120.0
	for i := 0; i < 240; i++ {
		sys.Step(w, dt)
	}

	rb := w.RigidBodies[0]
	if rb.Position.Y < cfg.GroundY+rb.Radius {
		t.Errorf("body sank below ground: y=%f", rb.Position.Y)
	}
	if rb.Velocity.Norm() >= 10 {
		t.Errorf("expected bounded speed, got %f", rb.Velocity.Norm())
	}
}

func TestGroundFloorInvariant(t *testing.T) {
	w := newWorldWithBodies(state.RigidBody{
		Position: vec3.New(0, 5, 0),
		Velocity: vec3.New(0, -20, 0),
		Mass:     1,
		Radius:   0.5,
	})

	cfg := config.DefaultRigidBodySystemConfig()
	sys := New(cfg)

	dt := 1.0 / 60.0
	for i := 0; i < 500; i++ {
		sys.Step(w, dt)
		rb := w.RigidBodies[0]
		if rb.Position.Y < cfg.GroundY+rb.Radius-1e-9 {
			t.Fatalf("step %d: body penetrated ground: y=%f", i, rb.Position.Y)
		}
	}
}

func TestZeroDtIsNoOp(t *testing.T) {
	w := newWorldWithBodies(state.RigidBody{
		Position: vec3.New(0, 3, 0),
		Velocity: vec3.New(1, -1, 0),
		Mass:     1,
		Radius:   0.5,
	})

	cfg := config.DefaultRigidBodySystemConfig()
	sys := New(cfg)

	before := w.RigidBodies[0]
	sys.Step(w, 0)
	after := w.RigidBodies[0]

	if before.Position != after.Position || before.Velocity != after.Velocity {
		t.Errorf("expected no-op on dt=0, got position %+v -> %+v, velocity %+v -> %+v",
			before.Position, after.Position, before.Velocity, after.Velocity)
	}
}

func TestKinematicBodyIsUntouched(t *testing.T) {
	w := newWorldWithBodies(
		state.RigidBody{Position: vec3.New(0, -5, 0), Kinematic: true, Radius: 1},
		state.RigidBody{Position: vec3.New(0, 3, 0), Velocity: vec3.New(0, -1, 0), Mass: 1, Radius: 0.5},
	)

	cfg := config.DefaultRigidBodySystemConfig()
	sys := New(cfg)

	dt := 1.0 / 60.0
	for i := 0; i < 60; i++ {
		sys.Step(w, dt)
	}

	kin := w.RigidBodies[0]
	if kin.Position != vec3.New(0, -5, 0) {
		t.Errorf("expected kinematic body to stay fixed, got %+v", kin.Position)
	}
}

func TestHeadOnElasticCollisionSwapsVelocities(t *testing.T) {
	w := newWorldWithBodies(
		state.RigidBody{Position: vec3.New(-1, 100, 0), Velocity: vec3.New(1, 0, 0), Mass: 1, Radius: 0.5},
		state.RigidBody{Position: vec3.New(1, 100, 0), Velocity: vec3.New(-1, 0, 0), Mass: 1, Radius: 0.5},
	)

	cfg := config.DefaultRigidBodySystemConfig()
	cfg.Restitution = 1.0
	cfg.GroundY = -1e9
	sys := New(cfg)

	dt := 1.0 / 480.0
	for i := 0; i < 60; i++ {
		sys.Step(w, dt)
	}

	a, b := w.RigidBodies[0], w.RigidBodies[1]
	keBefore := 1.0
	keAfter := 0.5*a.Velocity.Norm2() + 0.5*b.Velocity.Norm2()
	if math.Abs(keAfter-keBefore) > 0.05*keBefore {
		t.Errorf("expected kinetic energy roughly conserved, before=%f after=%f", keBefore, keAfter)
	}
	if a.Velocity.X >= 0 || b.Velocity.X <= 0 {
		t.Errorf("expected velocities to have swapped sign after head-on collision: a=%+v b=%+v", a.Velocity, b.Velocity)
	}
}

func TestNonPenetrationAfterManyIterations(t *testing.T) {
	w := newWorldWithBodies(
		state.RigidBody{Position: vec3.New(0, 5, 0), Mass: 1, Radius: 0.5},
		state.RigidBody{Position: vec3.New(0.4, 5, 0), Mass: 1, Radius: 0.5},
	)

	cfg := config.DefaultRigidBodySystemConfig()
	cfg.GroundY = -1e9
	sys := New(cfg)

	for i := 0; i < 100; i++ {
		sys.Step(w, 1.0/120.0)
	}

	a, b := w.RigidBodies[0], w.RigidBodies[1]
	dist := b.Position.Sub(a.Position).Norm()
	if dist < a.Radius+b.Radius-cfg.PenetrationSlop-1e-6 {
		t.Errorf("expected non-penetration, got separation %f for radii sum %f", dist, a.Radius+b.Radius)
	}
}

func TestNewtonsCradleMomentumConserved(t *testing.T) {
	const n = 7
	radius := 0.3
	bodies := make([]state.RigidBody, n)
	for i := 0; i < n; i++ {
		bodies[i] = state.RigidBody{
			Position: vec3.New(float64(i)*2*radius, 5, 0),
			Mass:     1,
			Radius:   radius,
		}
	}
	bodies[0].Position.X -= 1.0
	bodies[0].Velocity = vec3.New(5, 0, 0)

	w := newWorldWithBodies(bodies...)

	cfg := config.DefaultRigidBodySystemConfig()
	cfg.Restitution = 0.95
	cfg.Substeps = 6
	cfg.PairIterations = 32
	cfg.GroundY = -1e9
	sys := New(cfg)

	momentumBefore := 5.0
	dt := 1.0 / 480.0
	for i := 0; i < 200; i++ {
		sys.Step(w, dt)
	}

	momentumAfter := 0.0
	for _, rb := range w.RigidBodies {
		momentumAfter += rb.Mass * rb.Velocity.X
	}

	if math.Abs(momentumAfter-momentumBefore) > 0.01*math.Abs(momentumBefore) {
		t.Errorf("expected x-momentum conserved to within 1%%, before=%f after=%f", momentumBefore, momentumAfter)
	}
}
