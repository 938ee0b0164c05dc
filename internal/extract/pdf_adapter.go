package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/lap-analysis/internal/pdftext"
)

// PDFAdapter exposes a pdftext.Extractor as a PageExtractor.
type PDFAdapter struct {
	extractor *pdftext.Extractor
	logger    *slog.Logger
}

func NewPDFAdapter(e *pdftext.Extractor, l *slog.Logger) *PDFAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &PDFAdapter{
		extractor: e,
		logger:    l,
	}
}

func (a *PDFAdapter) Extract(ctx context.Context, path string) (Document, error) {
	r, err := a.extractor.Extract(ctx, path)
	if err != nil {
		return Document{}, err
	}
	for _, w := range r.Warnings {
		a.logger.Warn("page extraction warning", "path", path, "warning", w)
	}
	return Document{
		Path:     path,
		Pages:    r.Pages,
		Method:   r.Method,
		Duration: r.Duration,
		Warnings: r.Warnings,
	}, nil
}
