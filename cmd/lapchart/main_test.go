package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lap-analysis/constants"
	"github.com/joseph-ayodele/lap-analysis/internal/chart"
	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/extract"
)

var racePages = extract.Static{
	"Grand Prix de France\n1'38.100 89\n1'38.445 93 0.345\n1'39.000 1 0.900\n",
	"1'32.127 89\n1'32.472 93 0.345\n1'32.900 1 0.773\n",
}

type harness struct {
	app     *app
	stdout  *bytes.Buffer
	charts  []chart.Chart
	configs []*common.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{"LAPCHART_RIDERS", "LAPCHART_RENDER_FORMAT", "LAPCHART_SEASON", "LAPCHART_SKIP_FIRST_LAP"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	h := &harness{stdout: &bytes.Buffer{}}
	h.app = newApp(h.stdout, &bytes.Buffer{})
	h.app.pages = func(*common.Config, *slog.Logger) extract.PageExtractor { return racePages }
	h.app.renderer = func(cfg *common.Config, _ *slog.Logger) (chart.SeriesRenderer, error) {
		h.configs = append(h.configs, cfg)
		return chart.RendererFunc(func(_ context.Context, c chart.Chart) error {
			h.charts = append(h.charts, c)
			return nil
		}), nil
	}
	return h
}

func (h *harness) run(args ...string) error {
	cmd := newRootCmd(h.app)
	cmd.SetArgs(args)
	cmd.SetOut(h.stdout)
	return cmd.ExecuteContext(context.Background())
}

func TestPlot_DefaultCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("--riders", "93,89", "race.pdf"))

	require.Len(t, h.charts, 1)
	c := h.charts[0]
	assert.Equal(t, "Grand Prix de France", c.Title)
	require.Len(t, c.Series, 2)
	assert.Equal(t, "[93] Marc Marquez", c.Series[0].Label)
	assert.Equal(t, []int{2}, c.Series[0].Laps, "first lap skipped by default")
	assert.Contains(t, h.stdout.String(), "Grand Prix de France: 2 riders, 2 laps plotted")
}

func TestPlot_FlagsOverrideConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("plot", "--riders", "1", "--skip-first-lap=false", "--format", "terminal", "--laps", "1", "--no-open", "race.pdf"))

	cfg := h.configs[0]
	assert.Equal(t, "race.pdf", cfg.Document)
	assert.Equal(t, string(constants.RenderTUI), cfg.Render.Format)
	assert.False(t, cfg.Render.Open)
	assert.Equal(t, []int{1}, h.charts[0].Series[0].Laps)
}

func TestPlot_SelectionMismatch(t *testing.T) {
	h := newHarness(t)
	err := h.run("--riders", "89,46", "race.pdf")
	assert.ErrorIs(t, err, common.ErrSelectionMismatch)
	assert.Empty(t, h.charts)
}

func TestPlot_InvalidConfig(t *testing.T) {
	h := newHarness(t)
	err := h.run("--riders", "89,abc", "race.pdf")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	err = h.run("--boundary", "sometimes", "race.pdf")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLaps_Table(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("laps", "--riders", "89,93", "race.pdf"))

	out := h.stdout.String()
	assert.Contains(t, out, "Grand Prix de France")
	assert.Contains(t, out, "[89] Jorge Martin")
	assert.Contains(t, out, "1'38.100")
	assert.Contains(t, out, "1'32.472")
	assert.Contains(t, out, "Best")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "3'10.227", "89 total: 1'38.100 + 1'32.127")
	assert.NotContains(t, out, "Francesco Bagnaia")
	assert.Empty(t, h.charts, "laps does not render")
}

func TestLaps_All(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("laps", "--all", "race.pdf"))
	out := h.stdout.String()
	assert.Contains(t, out, "[1] Francesco Bagnaia")
	assert.Contains(t, out, "[5] Johan Zarco")
}

func TestRoster(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("roster", "--season", "2020"))
	out := h.stdout.String()
	assert.Contains(t, out, "MotoGP 2020")
	assert.Contains(t, out, "Valentino Rossi")
}

func TestNewRenderer(t *testing.T) {
	cfg := &common.Config{Render: common.RenderConfig{Format: "png", Width: 640, Height: 480}}
	r, err := newRenderer(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &chart.ImageRenderer{}, r)

	cfg.Render.Format = "tui"
	r, err = newRenderer(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &chart.TerminalRenderer{}, r)

	cfg.Render.Format = "xlsx"
	r, err = newRenderer(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &chart.WorkbookRenderer{}, r)

	cfg.Render.Format = "gif"
	_, err = newRenderer(cfg, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
