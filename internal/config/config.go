// Package config loads and defaults the YAML-driven run configuration:
// top-level run parameters plus the three subsystem config surfaces named
// in the engine's external interface (MDConfig, RigidBodySystemConfig,
// NeighborListConfig).
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dkastner/minerva/internal/vec3"
)

// ErrUnknownScenario is returned when a run/preset names a scenario the
// registry does not recognize.
var ErrUnknownScenario = errors.New("config: unknown scenario")

// ErrInvalidSubsteps is returned when a subsystem substep count is < 1.
var ErrInvalidSubsteps = errors.New("config: substeps must be >= 1")

// MDConfig configures the Lennard-Jones MD integrator, matching the
// recognized options of the MD subsystem's external interface.
type MDConfig struct {
	Epsilon            float64 `yaml:"epsilon"`
	Sigma              float64 `yaml:"sigma"`
	RcutSigma          float64 `yaml:"rcut_sigma"`
	NVT                bool    `yaml:"nvt"`
	Temp               float64 `yaml:"temp"`
	TauThermo          float64 `yaml:"tau_thermo"`
	UseNeighborList    bool    `yaml:"use_neighbor_list"`
	NlistSkin          float64 `yaml:"nlist_skin"`
	NlistCheckInterval int     `yaml:"nlist_check_interval"`
}

// DefaultMDConfig returns the reference defaults from the MD subsystem's
// external interface.
func DefaultMDConfig() MDConfig {
	return MDConfig{
		Epsilon:            1.0,
		Sigma:              1.0,
		RcutSigma:          2.5,
		NVT:                false,
		Temp:               1.0,
		TauThermo:          1.0,
		UseNeighborList:    true,
		NlistSkin:          0.3,
		NlistCheckInterval: 10,
	}
}

// RigidBodySystemConfig configures the rigid-body contact solver.
type RigidBodySystemConfig struct {
	Restitution     float64 `yaml:"restitution"`
	GroundY         float64 `yaml:"ground_y"`
	Substeps        int     `yaml:"substeps"`
	PairIterations  int     `yaml:"pair_iterations"`
	PenetrationSlop float64 `yaml:"penetration_slop"`
	ContactOffset   float64 `yaml:"contact_offset"`
	Baumgarte       float64 `yaml:"baumgarte"`
	// Friction is reserved but currently unused by the solver, per the
	// external interface.
	Friction float64 `yaml:"friction"`
	// DisableJitterDamp turns off the 0.999 post-impulse velocity damp
	// documented as a known, deliberately-reproduced quirk.
	DisableJitterDamp bool `yaml:"disable_jitter_damp"`
}

// DefaultRigidBodySystemConfig returns the reference defaults.
func DefaultRigidBodySystemConfig() RigidBodySystemConfig {
	return RigidBodySystemConfig{
		Restitution:     0.5,
		GroundY:         0.0,
		Substeps:        4,
		PairIterations:  32,
		PenetrationSlop: 1e-5,
		ContactOffset:   1e-3,
		Baumgarte:       0.8,
	}
}

// NeighborListConfig configures the cell-list broad phase and Verlet skin.
type NeighborListConfig struct {
	Cutoff         float64   `yaml:"cutoff"`
	Skin           float64   `yaml:"skin"`
	CellSizeFactor float64   `yaml:"cell_size_factor"`
	DomainMin      vec3.Vec3 `yaml:"domain_min"`
	DomainMax      vec3.Vec3 `yaml:"domain_max"`
	EnableStats    bool      `yaml:"enable_stats"`
}

// DefaultNeighborListConfig returns the reference defaults.
func DefaultNeighborListConfig() NeighborListConfig {
	return NeighborListConfig{
		Cutoff:         2.5,
		Skin:           0.3,
		CellSizeFactor: 1.0,
		DomainMin:      vec3.New(-10, -10, -10),
		DomainMax:      vec3.New(10, 10, 10),
	}
}

// Config is the top-level run configuration loaded from a YAML file and
// overlaid with CLI flags.
type Config struct {
	Scenario   string  `yaml:"scenario"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Seed       int64   `yaml:"seed"`
	OutputDir  string  `yaml:"output_dir"`
	FrameEvery int     `yaml:"frame_every"`
	Verbose    bool    `yaml:"verbose"`

	MD        MDConfig              `yaml:"md"`
	RigidBody RigidBodySystemConfig `yaml:"rigid_body"`
	Neighbor  NeighborListConfig    `yaml:"neighbor"`
}

// DefaultConfig returns the baseline configuration presets are layered on
// top of.
func DefaultConfig() *Config {
	return &Config{
		Scenario:   "demo",
		Dt:         1.0 / 120.0,
		Duration:   10.0,
		OutputDir:  ".minerva",
		FrameEvery: 0,
		MD:         DefaultMDConfig(),
		RigidBody:  DefaultRigidBodySystemConfig(),
		Neighbor:   DefaultNeighborListConfig(),
	}
}

// Load reads a YAML config file, starting from DefaultConfig and letting
// the file override individual fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports a descriptive error for a config that cannot be run.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.RigidBody.Substeps < 1 {
		return ErrInvalidSubsteps
	}
	return nil
}
