package pdftext

import (
	"context"
	"fmt"
	"strings"
)

func (e *Extractor) extractPdftotext(ctx context.Context, path string) (Result, error) {
	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", e.cfg.MaxPages))
	}
	// pdftotext -layout -enc UTF-8 -eol unix [-l N] <path> -
	args = append(args, path, "-")
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, args...)
	if err != nil {
		return Result{Method: "pdftotext", Warnings: []string{string(errb)}}, fmt.Errorf("pdftotext: %w", err)
	}
	return Result{Method: "pdftotext", Pages: SplitPages(string(out))}, nil
}

// SplitPages splits pdftotext output on form feeds. pdftotext terminates
// every page with \f, so the empty remainder after the last one is dropped.
func SplitPages(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimLeft(p, "\n")
	}
	return pages
}
