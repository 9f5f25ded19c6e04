package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dkastner/minerva/internal/runlog"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list previously recorded runs",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	store := runlog.NewStore(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tPRESET\tTIME\tDURATION\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID, run.Scenario, run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration, run.Dt, run.Steps)
	}
	return w.Flush()
}
