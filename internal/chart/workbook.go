package chart

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/lap-analysis/internal/common"
)

const (
	lapSheet          = "Laps"
	secondsPerDay     = 86400
	lapTimeNumFmt     = `[m]"'"ss.000`
	defaultWorkbookAt = "lapchart.xlsx"
)

type WorkbookConfig struct {
	Output string // empty -> lapchart.xlsx
	Open   bool
}

// WorkbookRenderer writes the laps and a native line chart to an XLSX file.
type WorkbookRenderer struct {
	cfg    WorkbookConfig
	opener Opener
	logger *slog.Logger
}

func NewWorkbookRenderer(cfg WorkbookConfig, opener Opener, logger *slog.Logger) *WorkbookRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Output == "" {
		cfg.Output = defaultWorkbookAt
	}
	return &WorkbookRenderer{cfg: cfg, opener: opener, logger: logger}
}

func (r *WorkbookRenderer) Render(ctx context.Context, c Chart) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := Workbook(c)
	if err != nil {
		return common.NewAppError(common.CodeRender, "build workbook", fmt.Errorf("%w: %w", common.ErrRender, err))
	}
	if err := os.WriteFile(r.cfg.Output, b, 0o644); err != nil {
		return common.NewAppError(common.CodeRender, "write workbook", fmt.Errorf("%w: %w", common.ErrRender, err))
	}
	r.logger.Info("render.xlsx.ok",
		"path", r.cfg.Output,
		"series", len(c.Series),
		"bytes", len(b),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if r.cfg.Open && r.opener != nil {
		if err := r.opener.Open(ctx, r.cfg.Output); err != nil {
			return common.NewAppError(common.CodeRender, "open workbook", fmt.Errorf("%w: %w", common.ErrRender, err))
		}
	}
	return nil
}

// Workbook returns XLSX bytes: one row per lap, one column per rider, and a
// line chart over the filled range. Times are stored as Excel durations
// (fractions of a day) so the sheet can still do arithmetic on them.
func Workbook(c Chart) ([]byte, error) {
	first, last, ok := lapRange(c.Series)
	if !ok {
		return nil, fmt.Errorf("no lap times to plot")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), lapSheet); err != nil {
		return nil, err
	}
	timeStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(lapTimeNumFmt)})
	if err != nil {
		return nil, err
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(lapSheet, cell, v)
	}

	if err := write(1, 1, "Lap"); err != nil {
		return nil, err
	}
	lastRow := 1 + last - first + 1
	for lap := first; lap <= last; lap++ {
		if err := write(1, 2+lap-first, lap); err != nil {
			return nil, err
		}
	}

	var series []excelize.ChartSeries
	for i, s := range c.Series {
		col := 2 + i
		if err := write(col, 1, s.Label); err != nil {
			return nil, err
		}
		for j, lap := range s.Laps {
			if err := write(col, 2+lap-first, s.Times[j].Seconds()/secondsPerDay); err != nil {
				return nil, err
			}
		}
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		topLeft, _ := excelize.CoordinatesToCellName(col, 2)
		bottomRight, _ := excelize.CoordinatesToCellName(col, lastRow)
		if err := f.SetCellStyle(lapSheet, topLeft, bottomRight, timeStyle); err != nil {
			return nil, err
		}
		_ = f.SetColWidth(lapSheet, colName, colName, 24)

		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", lapSheet, colName),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", lapSheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", lapSheet, colName, colName, lastRow),
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: 5},
			Line:       excelize.ChartLine{Type: excelize.ChartLineSolid, Width: 1},
		})
	}
	_ = f.SetColWidth(lapSheet, "A", "A", 6)

	yAxis := excelize.ChartAxis{
		MajorGridLines: true,
		MinorGridLines: true,
		NumFmt:         excelize.ChartNumFmt{CustomNumFmt: lapTimeNumFmt},
	}
	if sc, ok := scaleFor(c.Series, c.MinorStep); ok {
		lo, hi := sc.Min/secondsPerDay, sc.Max/secondsPerDay
		yAxis.Minimum, yAxis.Maximum = &lo, &hi
		yAxis.MajorUnit = sc.MajorStep / secondsPerDay
	}

	anchor, _ := excelize.CoordinatesToCellName(len(c.Series)+3, 2)
	if err := f.AddChart(lapSheet, anchor, &excelize.Chart{
		Type:      excelize.Line,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: c.Title}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Lap"}}},
		YAxis:     yAxis,
		Dimension: excelize.ChartDimension{Width: 960, Height: 540},
	}); err != nil {
		return nil, fmt.Errorf("add chart: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func ptr[T any](v T) *T { return &v }
