package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkastner/minerva/internal/config"
)

// resolveConfig layers a scenario's base configuration: preset (if named),
// then an explicit YAML file (if named), then any CLI flags the caller
// actually set, in that order — mirroring the teacher's
// preset-then-file-then-flags precedence in runSimulation. A YAML file
// replaces the preset as a whole: fields the file leaves unset take their
// DefaultConfig values, not the preset's.
func resolveConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for scenario %q (available: %v)", preset, scenario, config.ListPresets(scenario))
		}
		cfg = p
		cfg.Scenario = scenario
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		fileCfg.Scenario = scenario
		cfg = fileCfg
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("frame-every") {
		cfg.FrameEvery = frameEvery
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides preset/config)")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds (overrides preset/config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&outputDir, "output", "", "frame output directory")
	cmd.Flags().IntVar(&frameEvery, "frame-every", 0, "write a frame every N steps (0 disables)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file path")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset for this scenario")
}
