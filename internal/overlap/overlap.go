// Package overlap resolves and reports initial rigid-body overlaps before a
// run starts. It is a pre-simulation helper, unrelated to the runtime pair
// solver in internal/rigidbody.
package overlap

import (
	"math"

	"github.com/dkastner/minerva/internal/runlog"
	"github.com/dkastner/minerva/internal/state"
	"github.com/dkastner/minerva/internal/vec3"
	"github.com/dkastner/minerva/internal/world"
)

// Report summarizes the overlaps found by Check.
type Report struct {
	Count      int
	MaxOverlap float64
}

// Check counts rigid-body pairs whose centers are closer than the sum of
// their radii, beyond tolerance.
func Check(w *world.World, tolerance float64) Report {
	var report Report
	bodies := w.RigidBodies
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			ov := pairOverlap(bodies[i], bodies[j], 0)
			if ov > tolerance {
				report.Count++
				if ov > report.MaxOverlap {
					report.MaxOverlap = ov
				}
			}
		}
	}
	return report
}

// pairOverlap returns how far a and b's spheres interpenetrate, given an
// extra separation buffer, or a non-positive value if they don't overlap.
func pairOverlap(a, b state.RigidBody, buffer float64) float64 {
	d := b.Position.Sub(a.Position)
	dist := math.Sqrt(math.Max(d.Norm2(), 1e-16))
	minDist := a.Radius + b.Radius + buffer
	return minDist - dist
}

// Resolve iteratively pushes overlapping rigid bodies apart, moving each
// body by half the overlap in opposite directions (unless one side is
// immovable, in which case the full correction lands on the other),
// converging or stopping after maxIterations. It logs progress through logger when
// non-nil.
func Resolve(w *world.World, maxIterations int, logger *runlog.Logger) Report {
	if logger != nil {
		logger.Infof("resolving initial overlaps")
	}

	bodies := w.RigidBodies
	const buffer = 1e-3
	const convergeTol = 1e-6

	var last Report
	for iter := 0; iter < maxIterations; iter++ {
		maxOverlap := 0.0
		corrections := 0

		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := &bodies[i], &bodies[j]
				ov := pairOverlap(*a, *b, buffer)
				if ov <= convergeTol {
					continue
				}
				corrections++
				if ov > maxOverlap {
					maxOverlap = ov
				}

				d := b.Position.Sub(a.Position)
				dist := math.Sqrt(math.Max(d.Norm2(), 1e-16))
				n := vec3.UnitX
				if dist > 1e-12 {
					n = d.Scale(1 / dist)
				}

				aImmovable := a.Immovable()
				bImmovable := b.Immovable()
				switch {
				case !aImmovable && !bImmovable:
					correction := n.Scale(ov * 0.5)
					a.Position = a.Position.Sub(correction)
					b.Position = b.Position.Add(correction)
				case !aImmovable:
					a.Position = a.Position.Sub(n.Scale(ov))
				case !bImmovable:
					b.Position = b.Position.Add(n.Scale(ov))
				}
			}
		}

		last = Report{Count: corrections, MaxOverlap: maxOverlap}
		if maxOverlap < convergeTol {
			if logger != nil {
				logger.Debugf("resolved in %d iterations", iter+1)
			}
			return last
		}
	}

	if logger != nil {
		logger.Infof("overlap resolution did not fully converge after %d iterations (max overlap %.6f)", maxIterations, last.MaxOverlap)
	}
	return last
}
