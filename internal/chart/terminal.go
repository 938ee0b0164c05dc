package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
)

const (
	sparklineHeight   = 3
	sparklineMinWidth = 10
	sparklineMaxWidth = 60
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	sparklineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
)

// TerminalRenderer shows the chart as an interactive terminal view and
// returns when the user quits.
type TerminalRenderer struct {
	input  io.Reader
	output io.Writer
	logger *slog.Logger
}

// NewTerminalRenderer uses stdin/stdout when input or output is nil.
func NewTerminalRenderer(input io.Reader, output io.Writer, logger *slog.Logger) *TerminalRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TerminalRenderer{input: input, output: output, logger: logger}
}

func (r *TerminalRenderer) Render(ctx context.Context, c Chart) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if r.input != nil {
		opts = append(opts, tea.WithInput(r.input))
	}
	if r.output != nil {
		opts = append(opts, tea.WithOutput(r.output))
	}

	_, err := tea.NewProgram(newLapModel(c), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return common.NewAppError(common.CodeRender, "terminal view", fmt.Errorf("%w: %w", common.ErrRender, err))
	}
	r.logger.Debug("render.terminal.ok", "series", len(c.Series))
	return nil
}

// lapModel is the bubbletea model behind TerminalRenderer.
type lapModel struct {
	chart     Chart
	showFirst bool
	quitting  bool
}

func newLapModel(c Chart) lapModel {
	return lapModel{chart: c, showFirst: !c.SkipFirstLap}
}

func (m lapModel) Init() tea.Cmd { return nil }

func (m lapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "f":
			m.showFirst = !m.showFirst
		}
	}
	return m, nil
}

// visible returns the series as currently shown: lap 1 is added or removed
// according to the toggle, every other lap is kept as built.
func (m lapModel) visible() []Series {
	out := make([]Series, len(m.chart.Series))
	for i, s := range m.chart.Series {
		if len(s.Laps) > 0 && s.Laps[0] == 1 {
			s.Laps, s.Times = s.Laps[1:], s.Times[1:]
		}
		if m.showFirst && s.HasFirstLap {
			s.Laps = append([]int{1}, s.Laps...)
			s.Times = append([]laptime.Duration{s.FirstLap}, s.Times...)
		}
		out[i] = s
	}
	return out
}

func (m lapModel) View() string {
	if m.quitting {
		return ""
	}

	series := m.visible()
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.chart.Title))
	b.WriteString("\n\n")

	// a shared baseline keeps bar heights comparable between riders
	sc, ok := scaleFor(series, m.chart.MinorStep)
	for _, s := range series {
		b.WriteString(m.renderRow(s, sc.Min, ok))
		b.WriteString("\n")
	}

	if best, who, found := m.bestOverall(); found {
		b.WriteString("\n" + dimStyle.Render("fastest ") + valueStyle.Render(best.String()) + dimStyle.Render(" "+who) + "\n")
	}

	first := "hidden"
	if m.showFirst {
		first = "shown"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("[f] first lap (%s)  [q] quit", first)))
	return containerStyle.Render(b.String())
}

func (m lapModel) renderRow(s Series, base float64, ok bool) string {
	label := labelStyle.Render(s.Label)
	best, has := s.Best()
	if !ok || !has {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, dimStyle.Render("no laps"))
	}

	spark := sparkline.New(sparkWidth(len(s.Times)), sparklineHeight)
	for _, v := range s.YValues() {
		spark.Push(v - base)
	}
	spark.Draw()

	stats := fmt.Sprintf(" best %s  %s",
		valueStyle.Render(best.String()),
		dimStyle.Render(fmt.Sprintf("laps %d-%d", s.Laps[0], s.Laps[len(s.Laps)-1])),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, label, sparklineStyle.Render(spark.View()), stats)
}

func sparkWidth(points int) int {
	return max(sparklineMinWidth, min(points, sparklineMaxWidth))
}

// bestOverall is the fastest lap shown in the view.
func (m lapModel) bestOverall() (laptime.Duration, string, bool) {
	var (
		best  laptime.Duration
		label string
		found bool
	)
	for _, s := range m.visible() {
		if b, ok := s.Best(); ok && (!found || b < best) {
			best, label, found = b, s.Label, true
		}
	}
	return best, label, found
}
