// Package chart turns lap sequences into a lap time comparison chart and
// hands it to a renderer.
package chart

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
)

// DefaultMinorStep is the spacing of the horizontal minor grid, in seconds.
const DefaultMinorStep = 0.1

// Options selects what gets plotted.
type Options struct {
	ExpectedLaps int      // x never goes past this lap; 0 = no cap
	Riders       []string // display order
	SkipFirstLap bool
}

// Series is one rider's line. Laps and Times have the same length.
// FirstLap is the rider's lap 1 time whether or not it is plotted.
type Series struct {
	ID          string
	Label       string
	Laps        []int
	Times       []laptime.Duration
	FirstLap    laptime.Duration
	HasFirstLap bool
}

func (s Series) XValues() []float64 {
	out := make([]float64, len(s.Laps))
	for i, l := range s.Laps {
		out[i] = float64(l)
	}
	return out
}

func (s Series) YValues() []float64 {
	out := make([]float64, len(s.Times))
	for i, t := range s.Times {
		out[i] = t.Seconds()
	}
	return out
}

// Best returns the fastest plotted lap.
func (s Series) Best() (laptime.Duration, bool) {
	return laptime.Best(s.Times)
}

// Chart is everything a renderer needs.
type Chart struct {
	Title        string
	Series       []Series
	MinorStep    float64
	SkipFirstLap bool
}

// Points counts plotted points across all series.
func (c Chart) Points() int {
	n := 0
	for _, s := range c.Series {
		n += len(s.Laps)
	}
	return n
}

// Labeler names a rider on the legend. *roster.Roster implements it.
type Labeler interface {
	Label(id string) string
}

// SeriesRenderer draws a finished Chart.
type SeriesRenderer interface {
	Render(ctx context.Context, c Chart) error
}

// RendererFunc adapts a function to SeriesRenderer.
type RendererFunc func(ctx context.Context, c Chart) error

func (f RendererFunc) Render(ctx context.Context, c Chart) error { return f(ctx, c) }

// Build assembles the chart. Every selected rider must have an entry in laps;
// the check runs before any series is built.
func Build(title string, laps map[string][]laptime.Duration, labels Labeler, opts Options) (Chart, error) {
	for _, id := range opts.Riders {
		if _, ok := laps[id]; !ok {
			return Chart{}, common.SelectionMismatchf("rider %q has no lap data", id)
		}
	}

	c := Chart{Title: title, MinorStep: DefaultMinorStep, SkipFirstLap: opts.SkipFirstLap}
	for _, id := range opts.Riders {
		c.Series = append(c.Series, buildSeries(id, laps[id], labels, opts))
	}
	return c, nil
}

func buildSeries(id string, laps []laptime.Duration, labels Labeler, opts Options) Series {
	start := 0
	if opts.SkipFirstLap {
		start = 1
	}
	end := len(laps)
	if opts.ExpectedLaps > 0 && end > opts.ExpectedLaps {
		end = opts.ExpectedLaps
	}

	s := Series{ID: id, Label: "[" + id + "]"}
	if labels != nil {
		s.Label = labels.Label(id)
	}
	if end > 0 {
		s.FirstLap, s.HasFirstLap = laps[0], true
	}
	for i := start; i < end; i++ {
		s.Laps = append(s.Laps, i+1)
		s.Times = append(s.Times, laps[i])
	}
	return s
}

// Presenter builds a chart and renders it once.
type Presenter struct {
	renderer SeriesRenderer
	logger   *slog.Logger
}

func NewPresenter(renderer SeriesRenderer, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{renderer: renderer, logger: logger}
}

// Present returns the chart it rendered so callers can report on it.
func (p *Presenter) Present(ctx context.Context, title string, laps map[string][]laptime.Duration, labels Labeler, opts Options) (Chart, error) {
	start := time.Now()
	c, err := Build(title, laps, labels, opts)
	if err != nil {
		p.logger.Error("present.selection.failed", "error", err)
		return Chart{}, err
	}
	for _, s := range c.Series {
		if len(s.Laps) == 0 {
			p.logger.Warn("rider has no laps to plot", "rider", s.ID)
		}
	}

	if err := p.renderer.Render(ctx, c); err != nil {
		p.logger.Error("present.render.failed", "error", err)
		return c, err
	}
	p.logger.Info("present.ok",
		"series", len(c.Series),
		"points", c.Points(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return c, nil
}
