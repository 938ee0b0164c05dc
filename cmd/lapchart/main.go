// Command lapchart extracts per-lap rider times from an analysis-by-lap
// results PDF and charts them.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/lap-analysis/constants"
	"github.com/joseph-ayodele/lap-analysis/internal/chart"
	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/core"
	"github.com/joseph-ayodele/lap-analysis/internal/extract"
	"github.com/joseph-ayodele/lap-analysis/internal/laps"
	"github.com/joseph-ayodele/lap-analysis/internal/pdftext"
	"github.com/joseph-ayodele/lap-analysis/internal/roster"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp(os.Stdout, os.Stderr)).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "lapchart:", err)
		os.Exit(1)
	}
}

// app carries the output streams and the factories commands build their
// dependencies from. Tests swap the factories.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	flags      flagValues

	pages    func(cfg *common.Config, logger *slog.Logger) extract.PageExtractor
	renderer func(cfg *common.Config, logger *slog.Logger) (chart.SeriesRenderer, error)
}

type flagValues struct {
	season       string
	rosterFile   string
	riders       string
	laps         int
	skipFirstLap bool
	format       string
	out          string
	noOpen       bool
	backend      string
	boundary     string
	logLevel     string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		pages:    pdfPages,
		renderer: newRenderer,
	}
}

func newRootCmd(a *app) *cobra.Command {
	plot := newPlotCmd(a)
	root := &cobra.Command{
		Use:   "lapchart [document.pdf]",
		Short: "Chart rider lap times from an analysis-by-lap results PDF",
		Long: `lapchart reads the analysis-by-lap PDF published after a race, collects
every rider's lap times and plots the selected riders against each other.

Examples:
  # Plot the default riders from the configured document
  lapchart

  # Plot two riders from another race in the terminal
  lapchart plot --riders 89,93 --format tui analysisbylap_mugello_2024.pdf

  # Print the lap table for every rider
  lapchart laps --all analysisbylap_france_2024.pdf`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		RunE:          plot.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.flags.season, "season", "", "built-in roster season (2020, 2024)")
	pf.StringVar(&a.flags.rosterFile, "roster-file", "", "roster YAML/JSON file, overrides --season")
	pf.StringVar(&a.flags.riders, "riders", "", "comma separated rider numbers, in display order")
	pf.IntVar(&a.flags.laps, "laps", 0, "expected race laps")
	pf.BoolVar(&a.flags.skipFirstLap, "skip-first-lap", true, "leave the first lap out of the chart")
	pf.StringVar(&a.flags.format, "format", "", "chart output: png, svg, tui, xlsx")
	pf.StringVar(&a.flags.out, "out", "", "output file for png, svg and xlsx")
	pf.BoolVar(&a.flags.noOpen, "no-open", false, "write the chart without opening a viewer")
	pf.StringVar(&a.flags.backend, "backend", "", "page text backend: native, pdftotext")
	pf.StringVar(&a.flags.boundary, "boundary", "", "lap boundary policy: leader-row, rider-repeat")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn, error")

	root.AddCommand(plot, newLapsCmd(a), newRosterCmd(a))
	return root
}

// loadConfig layers changed flags and the optional document argument over
// the file and environment configuration.
func (a *app) loadConfig(cmd *cobra.Command, args []string) (*common.Config, *slog.Logger, error) {
	cfg, err := common.LoadConfig(a.configPath)
	if err != nil {
		return nil, nil, err
	}

	changed := cmd.Flags().Changed
	if changed("season") {
		cfg.Season = a.flags.season
	}
	if changed("roster-file") {
		cfg.RosterFile = a.flags.rosterFile
	}
	if changed("riders") {
		cfg.SetRiders(a.flags.riders)
	}
	if changed("laps") {
		cfg.ExpectedLaps = a.flags.laps
	}
	if changed("skip-first-lap") {
		cfg.SkipFirstLap = a.flags.skipFirstLap
	}
	if changed("format") {
		cfg.Render.Format = a.flags.format
	}
	if changed("out") {
		cfg.Render.Output = a.flags.out
	}
	if changed("no-open") {
		cfg.Render.Open = !a.flags.noOpen
	}
	if changed("backend") {
		cfg.Extract.Backend = a.flags.backend
	}
	if changed("boundary") {
		cfg.Extract.Boundary = a.flags.boundary
	}
	if changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if len(args) == 1 {
		cfg.Document = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := common.NewLogger(cfg.Log, a.stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// request resolves the roster and boundary policy named by cfg.
func request(cfg *common.Config) (core.Request, error) {
	r, err := roster.Resolve(cfg.Season, cfg.RosterFile)
	if err != nil {
		return core.Request{}, err
	}
	b, err := laps.BoundaryByName(cfg.Extract.Boundary)
	if err != nil {
		return core.Request{}, common.NewAppError(common.CodeConfig, "extract.boundary", err)
	}
	return core.Request{
		Document: cfg.Document,
		Roster:   r,
		Boundary: b,
		Options: chart.Options{
			ExpectedLaps: cfg.ExpectedLaps,
			Riders:       cfg.Riders,
			SkipFirstLap: cfg.SkipFirstLap,
		},
	}, nil
}

func pdfPages(cfg *common.Config, logger *slog.Logger) extract.PageExtractor {
	x := pdftext.NewExtractor(pdftext.Config{
		Backend:   cfg.Extract.Backend,
		Pdftotext: cfg.Extract.Pdftotext,
		MaxPages:  cfg.Extract.MaxPages,
	}, logger)
	return extract.NewPDFAdapter(x, logger)
}

func newRenderer(cfg *common.Config, logger *slog.Logger) (chart.SeriesRenderer, error) {
	opener := chart.ViewerOpener{Viewer: cfg.Render.Viewer, Runner: pdftext.ExecRunner{}, Logger: logger}
	switch f := constants.RenderFormat(cfg.Render.Format); f {
	case constants.RenderPNG, constants.RenderSVG:
		return chart.NewImageRenderer(chart.ImageConfig{
			Format: f,
			Output: cfg.Render.Output,
			Width:  cfg.Render.Width,
			Height: cfg.Render.Height,
			Open:   cfg.Render.Open,
		}, opener, logger), nil
	case constants.RenderTUI:
		return chart.NewTerminalRenderer(nil, nil, logger), nil
	case constants.RenderXLSX:
		return chart.NewWorkbookRenderer(chart.WorkbookConfig{
			Output: cfg.Render.Output,
			Open:   cfg.Render.Open,
		}, opener, logger), nil
	default:
		return nil, common.NewAppError(common.CodeConfig, fmt.Sprintf("unknown render format %q", cfg.Render.Format), common.ErrInvalidInput)
	}
}
