// Package frameio writes per-frame simulation snapshots to disk: CSV for
// spreadsheet-friendly inspection, VTK/VTU for ParaView. Writers are driven
// by client code between world steps, never by the physics core itself.
package frameio

import (
	"github.com/dkastner/minerva/internal/world"
)

// Writer consumes read-only world state at a given frame number and
// produces files in a configured output directory.
type Writer interface {
	Write(w *world.World, frame int) error
	Finalize() error
}

// Config is shared by every writer implementation in this package.
type Config struct {
	OutputDir        string
	Prefix           string
	WriteRigidBodies bool
	WriteMDParticles bool
}

// DefaultConfig returns a config that writes both body kinds to
// "output/sim_*" files.
func DefaultConfig() Config {
	return Config{
		OutputDir:        "output",
		Prefix:           "sim",
		WriteRigidBodies: true,
		WriteMDParticles: true,
	}
}
