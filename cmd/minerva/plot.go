package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/dkastner/minerva/internal/runlog"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <run_id>",
		Short: "render the recorded diagnostic history for a run as an ASCII line plot",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	cmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")
	cmd.Flags().IntVar(&plotWidth, "width", 80, "plot width in columns")
	return cmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	runID := args[0]
	store := runlog.NewStore(dataDir)

	meta, err := store.Load(runID)
	if err != nil {
		return err
	}

	path := store.RunDir(runID) + "/diagnostics.csv"
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("plot: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("plot: read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("plot: no diagnostic samples recorded for run %s", runID)
	}

	header := rows[0]
	label := "value"
	if len(header) >= 3 {
		label = header[2]
	}

	data := make([]float64, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		v, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		data = append(data, v)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(label),
	)
	fmt.Println(graph)
	return nil
}
