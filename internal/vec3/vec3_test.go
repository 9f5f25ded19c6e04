package vec3

import (
	"math"
	"testing"
)

func TestAddSub(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, -1, 2)

	if got := a.Add(b); got != (Vec3{5, 1, 5}) {
		t.Errorf("Add: got %+v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 3, 1}) {
		t.Errorf("Sub: got %+v", got)
	}
}

func TestScaleDiv(t *testing.T) {
	a := New(2, -4, 6)
	if got := a.Scale(0.5); got != (Vec3{1, -2, 3}) {
		t.Errorf("Scale: got %+v", got)
	}
	if got := a.Div(2); got != (Vec3{1, -2, 3}) {
		t.Errorf("Div: got %+v", got)
	}
}

func TestDotCross(t *testing.T) {
	x := UnitX
	y := New(0, 1, 0)

	if got := x.Dot(y); got != 0 {
		t.Errorf("Dot: expected 0, got %f", got)
	}
	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross: expected unit z, got %+v", got)
	}
}

func TestNorm(t *testing.T) {
	v := New(3, 4, 0)
	if got := v.Norm2(); got != 25 {
		t.Errorf("Norm2: expected 25, got %f", got)
	}
	if got := v.Norm(); got != 5 {
		t.Errorf("Norm: expected 5, got %f", got)
	}
}

func TestNormalizedZeroSafe(t *testing.T) {
	zero := Vec3{}
	if got := zero.Normalized(); got != zero {
		t.Errorf("Normalized(zero): expected zero unchanged, got %+v", got)
	}

	v := New(0, 5, 0)
	got := v.Normalized()
	if math.Abs(got.Norm()-1) > 1e-12 {
		t.Errorf("Normalized: expected unit length, got norm %f", got.Norm())
	}
}

func TestAddScaled(t *testing.T) {
	v := New(1, 1, 1)
	o := New(2, 2, 2)
	if got := v.AddScaled(o, 0.5); got != (Vec3{2, 2, 2}) {
		t.Errorf("AddScaled: got %+v", got)
	}
}
