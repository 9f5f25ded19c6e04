package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkastner/minerva/internal/config"
	"github.com/dkastner/minerva/internal/frameio"
	"github.com/dkastner/minerva/internal/runlog"
	"github.com/dkastner/minerva/internal/scenario"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "run a scenario headlessly and record its outcome",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	addScenarioFlags(cmd)
	cmd.Flags().StringVar(&frameFmt, "frame-format", "csv", "frame format when frame-every > 0: csv or vtk")
	cmd.Flags().IntVar(&repeats, "repeats", 1, "run this many independent seeds concurrently and summarize")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}

	if repeats > 1 {
		return runEnsemble(name, cfg)
	}

	logger := runlog.Default(cfg.Verbose)
	registry := scenario.NewRegistry()
	w, err := registry.Build(name, cfg)
	if err != nil {
		return err
	}

	var writer frameio.Writer
	if cfg.FrameEvery > 0 {
		frameCfg := frameio.DefaultConfig()
		frameCfg.OutputDir = cfg.OutputDir
		frameCfg.Prefix = name
		if frameFmt == "vtk" {
			writer = frameio.NewVTKWriter(frameCfg)
		} else {
			writer = frameio.NewCSVWriter(frameCfg)
		}
	}

	steps := int(cfg.Duration / cfg.Dt)
	label, _ := primaryDiagnostic(w)
	history := make([]float64, 0, steps+1)

	fmt.Printf("running %s (%d steps, dt=%g)...\n", name, steps, cfg.Dt)
	start := time.Now()

	for i := 0; i < steps; i++ {
		w.Step(cfg.Dt)
		_, v := primaryDiagnostic(w)
		history = append(history, v)
		if writer != nil && cfg.FrameEvery > 0 && i%cfg.FrameEvery == 0 {
			if err := writer.Write(w, i); err != nil {
				return err
			}
		}
		logger.Debugf("step %d t=%.4f %s=%.6f", i, w.Time, label, v)
	}
	if writer != nil {
		if err := writer.Finalize(); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	final := finalDiagnostics(w, cfg)

	store := runlog.NewStore(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(name, preset, cfg.Seed, cfg.Dt, cfg.Duration, steps, final)
	if err != nil {
		return err
	}
	if err := writeDiagnosticHistory(store.RunDir(runID), label, history, cfg.Dt); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("final diagnostics:")
	for k, v := range final {
		fmt.Printf("  %s: %.6f\n", k, v)
	}
	return nil
}

// writeDiagnosticHistory records the per-step scalar trace a later `plot`
// invocation reads back, under the run's own metadata directory.
func writeDiagnosticHistory(runDir, label string, history []float64, dt float64) error {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("runlog: create %s: %w", runDir, err)
	}
	path := runDir + "/diagnostics.csv"
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("runlog: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"step", "time", label}); err != nil {
		return err
	}
	for i, v := range history {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(i+1)*dt, 'f', 6, 64),
			strconv.FormatFloat(v, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// ensembleResult is one seed's outcome from a --repeats sweep.
type ensembleResult struct {
	seed  int64
	final map[string]float64
	err   error
}

// runEnsemble runs `repeats` independent worlds concurrently, one goroutine
// per seed, and prints a summary table. It never parallelizes force
// computation within a single world step — only whole independent runs.
func runEnsemble(name string, cfg *config.Config) error {
	registry := scenario.NewRegistry()
	steps := int(cfg.Duration / cfg.Dt)
	results := make([]ensembleResult, repeats)

	var wg sync.WaitGroup
	for i := 0; i < repeats; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			runCfg := *cfg
			runCfg.Seed = cfg.Seed + int64(i)

			w, err := registry.Build(name, &runCfg)
			if err != nil {
				results[i] = ensembleResult{seed: runCfg.Seed, err: err}
				return
			}
			for s := 0; s < steps; s++ {
				w.Step(runCfg.Dt)
			}
			results[i] = ensembleResult{seed: runCfg.Seed, final: finalDiagnostics(w, &runCfg)}
		}(i)
	}
	wg.Wait()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tSTATUS\tDIAGNOSTICS")
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(tw, "%d\terror\t%v\n", r.seed, r.err)
			continue
		}
		fmt.Fprintf(tw, "%d\tok\t%v\n", r.seed, r.final)
	}
	return tw.Flush()
}
