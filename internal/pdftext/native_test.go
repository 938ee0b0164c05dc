package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cell is one Tj placed with Td, the way timing sheets position table cells.
type cell struct {
	x, y float64
	s    string
}

// writeTimingPDF writes a minimal PDF with one content stream per page. Each
// cell is drawn in its own BT block, so the stream holds no spaces or line
// breaks between cells.
func writeTimingPDF(t *testing.T, pages ...[]cell) string {
	t.Helper()

	var objects []string
	kids := make([]string, len(pages))
	fontObj := 3 + 2*len(pages)
	for i, cells := range pages {
		pageObj, contentObj := 3+2*i, 4+2*i
		kids[i] = fmt.Sprintf("%d 0 R", pageObj)

		var stream strings.Builder
		for _, c := range cells {
			fmt.Fprintf(&stream, "BT /F1 10 Tf %g %g Td (%s) Tj ET\n", c.x, c.y, c.s)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, contentObj),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", stream.Len(), stream.String()),
		)
	}
	objects = append([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	}, objects...)
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "analysisbylap.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// timingRows lays out rows as lap time, rider number and optional gap cells.
func timingRows(top float64, rows ...[]string) []cell {
	var cells []cell
	for i, row := range rows {
		y := top - float64(i)*15
		for j, s := range row {
			cells = append(cells, cell{x: 50 + float64(j)*60, y: y, s: s})
		}
	}
	return cells
}

func TestExtract_NativePositionedCells(t *testing.T) {
	page := append([]cell{{x: 50, y: 780, s: "Grand Prix de France"}},
		timingRows(750,
			[]string{"1'32.127", "89"},
			[]string{"1'32.472", "93", "0.345"},
		)...)
	path := writeTimingPDF(t, page)

	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "pdf-native", res.Method)
	require.Len(t, res.Pages, 1)
	assert.Equal(t, "Grand Prix de France\n1'32.127 89\n1'32.472 93 0.345\n", res.Pages[0])
	assert.Empty(t, res.Warnings)
}

func TestExtract_NativeMaxPages(t *testing.T) {
	path := writeTimingPDF(t,
		timingRows(750, []string{"1'32.127", "89"}),
		timingRows(750, []string{"1'31.998", "89"}),
		timingRows(750, []string{"1'32.004", "89"}),
	)

	res, err := NewExtractor(Config{MaxPages: 2}, nil).Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"1'32.127 89\n", "1'31.998 89\n"}, res.Pages)
	assert.Equal(t, []string{"read 2 of 3 pages (max_pages)"}, res.Warnings)
}

func TestLayout(t *testing.T) {
	glyphs := func(x, y, w float64, s string) []pdf.Text {
		out := make([]pdf.Text, 0, len(s))
		for i, r := range s {
			out = append(out, pdf.Text{X: x + float64(i)*w, Y: y, W: w, FontSize: 10, S: string(r)})
		}
		return out
	}

	var row []pdf.Text
	row = append(row, glyphs(50, 700, 5, "1'32.400")...)
	row = append(row, glyphs(110, 700, 5, "93")...)
	row = append(row, glyphs(140, 700.5, 5, "0.273")...)
	row = append(row, glyphs(50, 685, 5, "1'32.127")...)

	assert.Equal(t, "1'32.400 93 0.273\n1'32.127\n", layout(row))
	assert.Equal(t, "", layout(nil))
}
