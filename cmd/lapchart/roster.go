package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/lap-analysis/internal/roster"
)

func newRosterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Print the active roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			r, err := roster.Resolve(cfg.Season, cfg.RosterFile)
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("#", "Rider")
			for _, id := range r.IDs() {
				name, _ := r.Name(id)
				t.Row(id, name)
			}
			fmt.Fprintf(a.stdout, "%s (%d riders)\n", r.Title(), r.Len())
			fmt.Fprintln(a.stdout, t.String())
			return nil
		},
	}
}
