package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/lap-analysis/internal/core"
	"github.com/joseph-ayodele/lap-analysis/internal/laps"
	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
	"github.com/joseph-ayodele/lap-analysis/internal/roster"
)

func newLapsCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "laps [document.pdf]",
		Short: "Print the extracted lap times as a table",
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

			rep, err := core.NewProcessor(logger, a.pages(cfg, logger), nil).Extract(cmd.Context(), req)
			if err != nil {
				return err
			}

			riders := cfg.Riders
			if all {
				riders = rep.Extraction.Riders()
			}
			fmt.Fprintln(a.stdout, rep.Extraction.Title)
			fmt.Fprintln(a.stdout, lapTable(rep.Extraction, req.Roster, riders))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every roster rider instead of the selection")
	return cmd
}

// lapTable has one row per lap and one column per rider, followed by each
// rider's best lap and total time. Riders unknown to the extraction get an empty column.
func lapTable(x *laps.Extraction, r *roster.Roster, riders []string) string {
	columns := make([][]laptime.Duration, len(riders))
	headers := []string{"Lap"}
	rows := 0
	for i, id := range riders {
		columns[i], _ = x.Laps(id)
		rows = max(rows, len(columns[i]))
		headers = append(headers, r.Label(id))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for lap := 0; lap < rows; lap++ {
		row := []string{strconv.Itoa(lap + 1)}
		for _, col := range columns {
			cell := ""
			if lap < len(col) {
				cell = col[lap].Padded()
			}
			row = append(row, cell)
		}
		t.Row(row...)
	}

	best := []string{"Best"}
	for _, col := range columns {
		cell := "-"
		if b, ok := laptime.Best(col); ok {
			cell = b.Padded()
		}
		best = append(best, cell)
	}
	t.Row(best...)

	total := []string{"Total"}
	for _, col := range columns {
		cell := "-"
		if len(col) > 0 {
			cell = laptime.Sum(col).Padded()
		}
		total = append(total, cell)
	}
	t.Row(total...)
	return t.String()
}
