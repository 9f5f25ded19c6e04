// Command minerva is the CLI entrypoint for the physics engine: it builds a
// named scenario, runs it headless or under a live TUI, and can inspect
// past runs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir string

	// run/watch/resolve-overlaps flags
	configFile string
	preset     string
	dt         float64
	duration   float64
	seed       int64
	outputDir  string
	frameEvery int
	frameFmt   string
	verbose    bool
	repeats    int

	// plot flags
	plotHeight int
	plotWidth  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minerva",
		Short: "rigid-body and molecular-dynamics simulation engine",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".minerva-runs", "run metadata directory")

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newPlotCmd(),
		newWatchCmd(),
		newResolveOverlapsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
