// Package scenario builds a ready-to-run world.World from a named starting
// configuration: body/particle layouts, seeded initial velocities, and the
// subsystems each scenario needs wired into the scheduler.
package scenario

import (
	"fmt"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/world"
)

// ErrUnknown is returned by Registry.Build for an unregistered scenario name.
// It is config.ErrUnknownScenario, so callers can match either name.
var ErrUnknown = config.ErrUnknownScenario

// Builder constructs a world for one named scenario from the run
// configuration.
type Builder func(cfg *config.Config) (*world.World, error)

// Registry is a name-to-builder lookup, mirroring the model/integrator
// registries assembled at CLI startup.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a Registry pre-populated with every built-in scenario.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.builders["demo"] = buildDemo
	r.builders["drop"] = buildDrop
	r.builders["lj-dimer"] = buildLJDimer
	r.builders["lattice-nvt"] = buildLatticeNVT
	r.builders["cradle"] = buildCradle
	r.builders["gas-expansion"] = buildGasExpansion
	return r
}

// Build constructs the named scenario's world.
func (r *Registry) Build(name string, cfg *config.Config) (*world.World, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return b(cfg)
}

// List returns every registered scenario name.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	return names
}
