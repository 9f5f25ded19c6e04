package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dkastner/minerva/internal/scenario"
	"github.com/dkastner/minerva/internal/tui"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <scenario>",
		Short: "run a scenario under a live terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	addScenarioFlags(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}

	w, err := scenario.NewRegistry().Build(name, cfg)
	if err != nil {
		return err
	}

	m := tui.NewModel(w, cfg, name)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
