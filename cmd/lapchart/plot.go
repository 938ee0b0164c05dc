package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/lap-analysis/internal/core"
)

func newPlotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plot [document.pdf]",
		Short: "Extract lap times and chart the selected riders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			req, err := request(cfg)
			if err != nil {
				return err
			}
			renderer, err := a.renderer(cfg, logger)
			if err != nil {
				return err
			}

			rep, err := core.NewProcessor(logger, a.pages(cfg, logger), renderer).Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "%s: %d riders, %d laps plotted\n", rep.Extraction.Title, len(rep.Chart.Series), rep.Chart.Points())
			if p, ok := renderer.(interface{ Path() string }); ok && p.Path() != "" {
				fmt.Fprintln(a.stdout, p.Path())
			}
			return nil
		},
	}
}
