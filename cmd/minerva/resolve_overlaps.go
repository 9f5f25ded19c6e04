package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkastner/minerva/internal/overlap"
	"github.com/dkastner/minerva/internal/runlog"
	"github.com/dkastner/minerva/internal/scenario"
)

func newResolveOverlapsCmd() *cobra.Command {
	var maxIterations int
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "resolve-overlaps <scenario>",
		Short: "check and correct initial rigid-body overlaps in a scenario's starting layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := resolveConfig(cmd, name)
			if err != nil {
				return err
			}

			w, err := scenario.NewRegistry().Build(name, cfg)
			if err != nil {
				return err
			}

			before := overlap.Check(w, tolerance)
			fmt.Printf("before: %d overlapping pairs, max overlap %.6f\n", before.Count, before.MaxOverlap)
			if before.Count == 0 {
				fmt.Println("no correction needed")
				return nil
			}

			logger := runlog.Default(cfg.Verbose)
			after := overlap.Resolve(w, maxIterations, logger)
			fmt.Printf("after: %d overlapping pairs, max overlap %.6f\n", after.Count, after.MaxOverlap)
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 64, "maximum correction passes")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "overlap tolerance below which a pair is considered resolved")
	return cmd
}
