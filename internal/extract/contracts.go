package extract

import (
	"context"
	"time"
)

// PageExtractor is Stage 1: document -> page texts.
type PageExtractor interface {
	Extract(ctx context.Context, path string) (Document, error)
}

// Document is the plain text of a results report, one string per page in page order.
type Document struct {
	Path     string
	Pages    []string
	Method   string // "pdf-native" | "pdftotext" | "static"
	Duration time.Duration
	Warnings []string
}

// Static serves pages that are already in memory. Used by tests and by
// callers that obtained the text elsewhere.
type Static []string

func (s Static) Extract(_ context.Context, path string) (Document, error) {
	pages := make([]string, len(s))
	copy(pages, s)
	return Document{Path: path, Pages: pages, Method: "static"}, nil
}
