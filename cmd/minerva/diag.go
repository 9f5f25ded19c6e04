package main

import (
	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/diagnostics"
	"github.com/dkastner/minerva/internal/world"
)

// primaryDiagnostic returns the single scalar this run's history/plot
// tracks: MD temperature when the world carries MD particles, otherwise
// rigid-body kinetic energy. Mirrors internal/tui's choice of readout.
func primaryDiagnostic(w *world.World) (label string, value float64) {
	if w.MDParticles != nil && w.MDParticles.Len() > 0 {
		return "temperature", diagnostics.Temperature(w.MDParticles)
	}
	return "kinetic_energy", diagnostics.KineticEnergyRB(w.RigidBodies)
}

// finalDiagnostics summarizes a completed run for runlog.RunMetadata.Final.
func finalDiagnostics(w *world.World, cfg *config.Config) map[string]float64 {
	final := map[string]float64{}
	if w.MDParticles != nil && w.MDParticles.Len() > 0 {
		final["temperature"] = diagnostics.Temperature(w.MDParticles)
		final["total_energy"] = diagnostics.TotalEnergyMD(w, cfg.MD)
		mom := diagnostics.MomentumMD(w.MDParticles)
		final["momentum_x"], final["momentum_y"], final["momentum_z"] = mom.X, mom.Y, mom.Z
	}
	if len(w.RigidBodies) > 0 {
		final["kinetic_energy_rb"] = diagnostics.KineticEnergyRB(w.RigidBodies)
		mom := diagnostics.MomentumRB(w.RigidBodies)
		final["momentum_rb_x"], final["momentum_rb_y"], final["momentum_rb_z"] = mom.X, mom.Y, mom.Z
	}
	return final
}
