// Package pdftext turns a results PDF into one plain-text string per page.
package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/lap-analysis/constants"
	"github.com/joseph-ayodele/lap-analysis/internal/common"
)

type Config struct {
	Backend   string // constants.BackendNative | constants.BackendPdftotext; default native
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

type Result struct {
	Pages    []string
	Method   string // "pdf-native" | "pdftotext"
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	return NewExtractorWithRunner(cfg, ExecRunner{}, logger)
}

// NewExtractorWithRunner is NewExtractor with an injected command runner.
func NewExtractorWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Backend == "" {
		cfg.Backend = constants.BackendNative
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Extractor{cfg: cfg, runner: runner, logger: logger}
}

// Extract returns the normalized text of every page, in page order.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	if constants.MapExtToFormat(ext) != constants.PDF {
		e.logger.Error("unsupported document extension", "path", path, "extension", ext)
		return Result{}, common.NewAppError(common.CodeExtract, fmt.Sprintf("unsupported extension %q", ext), common.ErrInvalidInput)
	}
	e.logger.Debug("starting page extraction", "path", path, "backend", e.cfg.Backend)

	var (
		res Result
		err error
	)
	switch e.cfg.Backend {
	case constants.BackendNative:
		res, err = e.extractNative(ctx, path)
	case constants.BackendPdftotext:
		res, err = e.extractPdftotext(ctx, path)
	default:
		return Result{}, common.NewAppError(common.CodeExtract, fmt.Sprintf("unknown backend %q", e.cfg.Backend), common.ErrInvalidInput)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, common.NewAppError(common.CodeExtract, path, fmt.Errorf("%w: %w", common.ErrExtract, err))
	}

	for i := range res.Pages {
		res.Pages[i] = Normalize(res.Pages[i])
	}

	e.logger.Debug("page extraction done",
		"path", path,
		"method", res.Method,
		"pages", len(res.Pages),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
