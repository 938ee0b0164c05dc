package chart

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/joseph-ayodele/lap-analysis/constants"
	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
)

type ImageConfig struct {
	Format constants.RenderFormat // png | svg; default png
	Output string                 // empty -> temp file
	Width  int
	Height int
	Open   bool
}

// ImageRenderer draws the chart with go-chart and optionally opens the file.
type ImageRenderer struct {
	cfg    ImageConfig
	opener Opener
	logger *slog.Logger

	lastPath string
}

func NewImageRenderer(cfg ImageConfig, opener Opener, logger *slog.Logger) *ImageRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Format == "" {
		cfg.Format = constants.RenderPNG
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	return &ImageRenderer{cfg: cfg, opener: opener, logger: logger}
}

// Path is the file written by the last successful Render.
func (r *ImageRenderer) Path() string { return r.lastPath }

func (r *ImageRenderer) Render(ctx context.Context, c Chart) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}

	var provider gochart.RendererProvider
	switch r.cfg.Format {
	case constants.RenderPNG:
		provider = gochart.PNG
	case constants.RenderSVG:
		provider = gochart.SVG
	default:
		return common.NewAppError(common.CodeRender, fmt.Sprintf("image renderer cannot write %q", r.cfg.Format), common.ErrInvalidInput)
	}

	graph, err := newGraph(c, r.cfg.Width, r.cfg.Height)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := graph.Render(provider, &buf); err != nil {
		return common.NewAppError(common.CodeRender, "draw chart", fmt.Errorf("%w: %w", common.ErrRender, err))
	}

	path, err := r.write(common.RunIDFromContext(ctx), buf.Bytes())
	if err != nil {
		return common.NewAppError(common.CodeRender, "write chart", fmt.Errorf("%w: %w", common.ErrRender, err))
	}
	r.lastPath = path
	r.logger.Info("render.image.ok",
		"path", path,
		"format", string(r.cfg.Format),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if !r.cfg.Open || r.opener == nil {
		return nil
	}
	if err := r.opener.Open(ctx, path); err != nil {
		return common.NewAppError(common.CodeRender, "open chart", fmt.Errorf("%w: %w", common.ErrRender, err))
	}
	return nil
}

// write stores the image at the configured path, or in a temp file named
// after the run so it can be matched to the run's log lines.
func (r *ImageRenderer) write(runID string, b []byte) (string, error) {
	if r.cfg.Output != "" {
		return r.cfg.Output, os.WriteFile(r.cfg.Output, b, 0o644)
	}
	prefix := "lapchart-"
	if runID != "" {
		prefix += runID + "-"
	}
	f, err := os.CreateTemp("", prefix+"*."+string(r.cfg.Format))
	if err != nil {
		return "", err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return "", err
	}
	return f.Name(), f.Close()
}

var (
	minorGridStyle = gochart.Style{StrokeColor: drawing.ColorFromHex("e0e0e0"), StrokeWidth: 0.5}
	majorGridStyle = gochart.Style{StrokeColor: drawing.ColorFromHex("b0b0b0"), StrokeWidth: 1}
)

// seriesStyle draws dots joined by a dotted line.
func seriesStyle(i int) gochart.Style {
	col := gochart.GetDefaultColor(i)
	return gochart.Style{
		StrokeColor:     col,
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{2, 3},
		DotColor:        col,
		DotWidth:        3,
	}
}

func formatLapSeconds(v interface{}) string {
	if f, ok := v.(float64); ok {
		return laptime.FormatSeconds(f)
	}
	return ""
}

// newGraph lays out the go-chart graph. Series with no points are left out
// since go-chart refuses empty series.
func newGraph(c Chart, width, height int) (gochart.Chart, error) {
	sc, ok := scaleFor(c.Series, c.MinorStep)
	if !ok {
		return gochart.Chart{}, common.NewAppError(common.CodeRender, "no lap times to plot", common.ErrRender)
	}
	first, last, _ := lapRange(c.Series)

	var series []gochart.Series
	for i, s := range c.Series {
		if len(s.Laps) == 0 {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Label,
			XValues: s.XValues(),
			YValues: s.YValues(),
			Style:   seriesStyle(i),
		})
	}

	xMin, xMax := float64(first), float64(last)
	if first == last {
		xMin, xMax = xMin-1, xMax+1
	}
	var xTicks []gochart.Tick
	for l := int(xMin); l <= int(xMax); l++ {
		xTicks = append(xTicks, gochart.Tick{Value: float64(l), Label: strconv.Itoa(l)})
	}

	yTicks := make([]gochart.Tick, 0, len(sc.MajorTicks))
	for _, v := range sc.MajorTicks {
		yTicks = append(yTicks, gochart.Tick{Value: v, Label: laptime.FormatSeconds(v)})
	}
	grid := make([]gochart.GridLine, 0, len(sc.MinorLines))
	for _, v := range sc.MinorLines {
		grid = append(grid, gochart.GridLine{IsMinor: true, Value: v})
	}

	graph := gochart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Lap",
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Name:           "Lap time",
			Range:          &gochart.ContinuousRange{Min: sc.Min, Max: sc.Max},
			Ticks:          yTicks,
			ValueFormatter: formatLapSeconds,
			GridLines:      grid,
			GridMinorStyle: minorGridStyle,
			GridMajorStyle: majorGridStyle,
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	return graph, nil
}
