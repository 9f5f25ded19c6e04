package config

// Presets bundles named starting configurations per scenario, the way a
// deployment operator would reach for a known-good starting point instead
// of hand-tuning every field.
var Presets = map[string]map[string]*Config{
	"drop": {
		"soft": {
			Scenario: "drop", Dt: 1.0 / 120.0, Duration: 4.0,
			RigidBody: RigidBodySystemConfig{Restitution: 0.3, GroundY: 0, Substeps: 4, PairIterations: 32, PenetrationSlop: 1e-5, ContactOffset: 1e-3, Baumgarte: 0.8},
		},
		"bouncy": {
			Scenario: "drop", Dt: 1.0 / 120.0, Duration: 8.0,
			RigidBody: RigidBodySystemConfig{Restitution: 0.9, GroundY: 0, Substeps: 4, PairIterations: 32, PenetrationSlop: 1e-5, ContactOffset: 1e-3, Baumgarte: 0.8},
		},
	},
	"lj-dimer": {
		"equilibrium": {
			Scenario: "lj-dimer", Dt: 0.005, Duration: 5.0,
			MD:        MDConfig{Epsilon: 1, Sigma: 1, RcutSigma: 2.5, UseNeighborList: false},
			RigidBody: DefaultRigidBodySystemConfig(),
		},
	},
	"lattice-nvt": {
		"cool": {
			Scenario: "lattice-nvt", Dt: 0.005, Duration: 5.0,
			MD:        MDConfig{Epsilon: 1, Sigma: 1, RcutSigma: 2.5, NVT: true, Temp: 1.5, TauThermo: 1.0, UseNeighborList: true, NlistSkin: 0.3, NlistCheckInterval: 10},
			RigidBody: DefaultRigidBodySystemConfig(),
		},
		"hot": {
			Scenario: "lattice-nvt", Dt: 0.005, Duration: 5.0,
			MD:        MDConfig{Epsilon: 1, Sigma: 1, RcutSigma: 2.5, NVT: true, Temp: 3.0, TauThermo: 0.5, UseNeighborList: true, NlistSkin: 0.3, NlistCheckInterval: 10},
			RigidBody: DefaultRigidBodySystemConfig(),
		},
	},
	"cradle": {
		"classic": {
			Scenario: "cradle", Dt: 1.0 / 240.0, Duration: 3.0,
			RigidBody: RigidBodySystemConfig{Restitution: 0.95, GroundY: -10, Substeps: 6, PairIterations: 32, PenetrationSlop: 1e-5, ContactOffset: 1e-3, Baumgarte: 0.8},
		},
	},
	"gas-expansion": {
		"dense": {
			Scenario: "gas-expansion", Dt: 0.005, Duration: 10.0,
			MD:        MDConfig{Epsilon: 1, Sigma: 1, RcutSigma: 2.5, UseNeighborList: true, NlistSkin: 0.3, NlistCheckInterval: 10},
			RigidBody: DefaultRigidBodySystemConfig(),
		},
	},
}

// GetPreset returns a named preset for scenario, or nil if either is
// unknown.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	return scenarioPresets[preset]
}

// ListPresets returns preset names available for scenario.
func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
