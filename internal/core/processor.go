// Package core runs a lap analysis end to end: page text, lap extraction,
// then the chart.
package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/lap-analysis/internal/chart"
	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/extract"
	"github.com/joseph-ayodele/lap-analysis/internal/laps"
	"github.com/joseph-ayodele/lap-analysis/internal/roster"
)

// Request describes one analysis run.
type Request struct {
	Document string
	Roster   *roster.Roster
	Boundary laps.BoundaryPolicy // nil -> laps.LeaderRow
	Options  chart.Options
}

// Report summarizes a finished run.
type Report struct {
	RunID      string
	Document   string
	Method     string
	Warnings   []string
	Extraction *laps.Extraction
	Chart      chart.Chart // zero when only extraction ran
	Elapsed    time.Duration

	started time.Time
}

// Processor coordinates page extraction, lap extraction and presentation.
type Processor struct {
	logger   *slog.Logger
	pages    extract.PageExtractor
	renderer chart.SeriesRenderer
}

// NewProcessor accepts a nil renderer for extract-only use.
func NewProcessor(logger *slog.Logger, pages extract.PageExtractor, renderer chart.SeriesRenderer) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, pages: pages, renderer: renderer}
}

// Run extracts the whole document, then renders the chart once.
func (p *Processor) Run(ctx context.Context, req Request) (*Report, error) {
	if p.renderer == nil {
		return nil, common.NewAppError(common.CodeRender, "no renderer configured", common.ErrInvalidInput)
	}
	ctx, logger, rep := p.begin(ctx, req)

	if err := p.extract(ctx, logger, req, rep); err != nil {
		return rep, err
	}

	c, err := chart.NewPresenter(p.renderer, logger).Present(ctx, rep.Extraction.Title, rep.Extraction.LapsByRider(), req.Roster, req.Options)
	if err != nil {
		logger.Error("processor.present.failed", "err", err)
		return rep, err
	}
	rep.Chart = c
	rep.Elapsed = time.Since(rep.started)
	logger.Info("processor.ok", "series", len(c.Series), "elapsed_ms", rep.Elapsed.Milliseconds())
	return rep, nil
}

// Extract runs only the extraction half.
func (p *Processor) Extract(ctx context.Context, req Request) (*Report, error) {
	ctx, logger, rep := p.begin(ctx, req)
	if err := p.extract(ctx, logger, req, rep); err != nil {
		return rep, err
	}
	rep.Elapsed = time.Since(rep.started)
	return rep, nil
}

func (p *Processor) begin(ctx context.Context, req Request) (context.Context, *slog.Logger, *Report) {
	runID := uuid.NewString()
	logger := common.LoggerFromContext(ctx, p.logger).With("run_id", runID)
	ctx = common.WithLogger(common.WithRunID(ctx, runID), logger)
	return ctx, logger, &Report{RunID: runID, Document: req.Document, started: time.Now()}
}

func (p *Processor) extract(ctx context.Context, logger *slog.Logger, req Request, rep *Report) error {
	if req.Roster == nil {
		return common.NewAppError(common.CodeConfig, "no roster", common.ErrInvalidInput)
	}

	doc, err := p.pages.Extract(ctx, req.Document)
	if err != nil {
		logger.Error("processor.pages.failed", "document", req.Document, "err", err)
		return err
	}
	rep.Method, rep.Warnings = doc.Method, doc.Warnings
	logger.Debug("processor pages ready",
		"document", req.Document,
		"method", doc.Method,
		"pages", len(doc.Pages),
		"duration_ms", doc.Duration.Milliseconds(),
	)

	x, err := laps.NewExtractor(req.Roster, laps.WithBoundary(req.Boundary), laps.WithLogger(logger)).Extract(ctx, doc.Pages)
	if err != nil {
		logger.Error("processor.extract.failed", "document", req.Document, "err", err)
		return err
	}
	rep.Extraction = x
	return nil
}
