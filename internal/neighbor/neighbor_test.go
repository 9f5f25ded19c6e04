package neighbor

import (
	"math"
	"testing"

	"github.com/dkastner/minerva/internal/vec3"
)

func bruteForcePairs(positions []vec3.Vec3, cutoff float64) map[Pair]bool {
	out := make(map[Pair]bool)
	rc2 := cutoff * cutoff
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if positions[j].Sub(positions[i]).Norm2() < rc2 {
				out[Pair{I: i, J: j}] = true
			}
		}
	}
	return out
}

func TestCompleteness(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cutoff = 1.5
	cfg.Skin = 0.3
	cfg.DomainMin = vec3.New(-5, -5, -5)
	cfg.DomainMax = vec3.New(5, 5, 5)

	positions := []vec3.Vec3{
		vec3.New(0, 0, 0),
		vec3.New(0.5, 0, 0),
		vec3.New(1.0, 0, 0),
		vec3.New(-4, -4, -4),
		vec3.New(3, 2, -1),
		vec3.New(3.2, 2.1, -0.9),
	}

	l := New(cfg)
	l.Build(positions)

	want := bruteForcePairs(positions, cfg.Cutoff+cfg.Skin)
	got := make(map[Pair]bool)
	for _, p := range l.Pairs() {
		if p.I >= p.J {
			t.Fatalf("pair not normalized: %+v", p)
		}
		if got[p] {
			t.Fatalf("duplicate pair %+v", p)
		}
		got[p] = true
	}

	for p := range want {
		if !got[p] {
			t.Errorf("missing expected pair %+v", p)
		}
	}
	for p := range got {
		if !want[p] {
			t.Errorf("unexpected pair %+v beyond cutoff+skin", p)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	positions := []vec3.Vec3{
		vec3.New(0, 0, 0),
		vec3.New(1, 1, 1),
		vec3.New(-2, 3, 0.5),
	}

	l := New(cfg)
	l.Build(positions)
	first := append([]Pair(nil), l.Pairs()...)

	l.Build(positions)
	second := l.Pairs()

	if len(first) != len(second) {
		t.Fatalf("pair count changed across rebuilds: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("pair %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNeedsRebuildBeforeFirstBuild(t *testing.T) {
	l := New(DefaultConfig())
	if !l.NeedsRebuild(nil) {
		t.Error("expected rebuild required before any Build call")
	}
}

func TestNeedsRebuildOnCountChange(t *testing.T) {
	l := New(DefaultConfig())
	l.Build([]vec3.Vec3{vec3.New(0, 0, 0)})
	if !l.NeedsRebuild([]vec3.Vec3{vec3.New(0, 0, 0), vec3.New(1, 0, 0)}) {
		t.Error("expected rebuild required after particle count changed")
	}
}

func TestRebuildSafetyUnderHalfSkinDisplacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cutoff = 1.0
	// skin/2 = 0.25 is exact in binary floating point, so the displacement
	// below lands exactly on the half-skin boundary.
	cfg.Skin = 0.5

	positions := []vec3.Vec3{
		vec3.New(0, 0, 0),
		vec3.New(0.9, 0, 0),
	}
	l := New(cfg)
	l.Build(positions)

	// Displace each particle by exactly skin/2 toward the other so they
	// remain within cutoff, verifying the list stays usable and complete.
	moved := []vec3.Vec3{
		positions[0].AddScaled(vec3.New(1, 0, 0), cfg.Skin/2),
		positions[1].AddScaled(vec3.New(-1, 0, 0), cfg.Skin/2),
	}

	if l.NeedsRebuild(moved) {
		t.Fatalf("displacement of exactly skin/2 should not force a rebuild")
	}

	want := bruteForcePairs(moved, cfg.Cutoff)
	for p := range want {
		found := false
		for _, got := range l.Pairs() {
			if got == p {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("pair %+v within cutoff after safe displacement missing from stale list", p)
		}
	}
}

func TestNeedsRebuildBeyondHalfSkin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Skin = 0.4
	positions := []vec3.Vec3{vec3.New(0, 0, 0), vec3.New(1, 0, 0)}
	l := New(cfg)
	l.Build(positions)

	moved := []vec3.Vec3{positions[0].AddScaled(vec3.New(1, 0, 0), 0.21), positions[1]}
	if !l.NeedsRebuild(moved) {
		t.Error("displacement beyond skin/2 should force a rebuild")
	}
}

func TestEmptyInput(t *testing.T) {
	l := New(DefaultConfig())
	l.Build(nil)
	if len(l.Pairs()) != 0 {
		t.Errorf("expected no pairs for empty input, got %d", len(l.Pairs()))
	}
}

func TestOutOfDomainClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DomainMin = vec3.New(-1, -1, -1)
	cfg.DomainMax = vec3.New(1, 1, 1)
	cfg.Cutoff = 0.5
	cfg.Skin = 0.1

	l := New(cfg)
	// One particle wildly outside the domain; must not panic and must
	// clamp into the boundary cell rather than crash.
	positions := []vec3.Vec3{vec3.New(500, -500, 0), vec3.New(0.9, 0.9, 0.9)}
	l.Build(positions)
	_ = l.Pairs()
}

func TestStatsTrackBuildsAndPairs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableStats = true
	l := New(cfg)
	positions := []vec3.Vec3{vec3.New(0, 0, 0), vec3.New(0.1, 0, 0)}
	l.Build(positions)

	stats := l.Stats()
	if stats.Builds != 1 {
		t.Errorf("expected 1 build, got %d", stats.Builds)
	}
	if stats.NumPairs != 1 {
		t.Errorf("expected 1 pair, got %d", stats.NumPairs)
	}

	l.NeedsRebuild(positions)
	if l.Stats().Checks != 1 {
		t.Errorf("expected 1 check, got %d", l.Stats().Checks)
	}
}

func TestSetDomainReshapesGrid(t *testing.T) {
	l := New(DefaultConfig())
	l.Build([]vec3.Vec3{vec3.New(0, 0, 0)})

	l.SetDomain(vec3.New(-20, -20, -20), vec3.New(20, 20, 20))
	if l.valid {
		t.Error("expected SetDomain to invalidate the list until the next Build")
	}

	positions := []vec3.Vec3{vec3.New(15, -15, 3), vec3.New(15.2, -15.1, 3.1)}
	l.Build(positions)
	if math.Abs(float64(len(l.Pairs()))-1) > 0 {
		t.Errorf("expected exactly 1 pair after expanding domain, got %d", len(l.Pairs()))
	}
}
