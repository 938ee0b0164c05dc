package pdftext

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// lineTolerance is how far (in points) glyphs may drift vertically and
	// still belong to one timing row.
	lineTolerance = 2.0
	// wordGap is the horizontal gap, as a fraction of the font size, that
	// separates two cells. Glyphs inside one Tj are closer than this.
	wordGap = 0.2
)

func (e *Extractor) extractNative(ctx context.Context, path string) (Result, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Result{Method: "pdf-native"}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("failed to close pdf", "path", path, "error", cerr)
		}
	}()

	total := r.NumPage()
	n := total
	res := Result{Method: "pdf-native"}
	if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
		n = e.cfg.MaxPages
		res.Warnings = append(res.Warnings, fmt.Sprintf("read %d of %d pages (max_pages)", n, total))
	}

	res.Pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			res.Pages = append(res.Pages, "")
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d has no content", i))
			continue
		}
		text, err := pageText(p)
		if err != nil {
			// keep page numbering aligned with the document
			res.Pages = append(res.Pages, "")
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		res.Pages = append(res.Pages, text)
	}
	return res, nil
}

// pageText lays the page's glyphs out as lines. The content stream positions
// every cell with Td/Tm and carries no separators of its own, so breaks and
// spaces are recovered from glyph coordinates.
func pageText(p pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read content: %v", r)
		}
	}()
	return layout(p.Content().Text), nil
}

// layout joins glyphs in content order. A vertical move starts a new line;
// a horizontal jump wider than wordGap starts a new cell.
func layout(glyphs []pdf.Text) string {
	var (
		b     strings.Builder
		prev  pdf.Text
		first = true
	)
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		switch {
		case first:
			first = false
		case math.Abs(g.Y-prev.Y) > lineTolerance:
			b.WriteByte('\n')
		case math.Abs(g.X-(prev.X+prev.W)) > gapFor(prev):
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prev = g
	}
	if !first {
		b.WriteByte('\n')
	}
	return b.String()
}

func gapFor(t pdf.Text) float64 {
	if t.FontSize > 0 {
		return t.FontSize * wordGap
	}
	return 1
}
