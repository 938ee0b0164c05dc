// Package laps builds per-rider lap time sequences from the page texts of an
// analysis-by-lap results report.
package laps

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
	"github.com/joseph-ayodele/lap-analysis/internal/roster"
)

// Extraction is the result of one pass over a document. It is not modified
// after Extract returns.
type Extraction struct {
	Title    string
	LapCount int // final value of the running lap counter
	Rows     int
	Pages    int

	laps  map[string][]laptime.Duration
	order []string
}

// Riders returns every roster rider id, in roster order.
func (x *Extraction) Riders() []string {
	return slices.Clone(x.order)
}

// Laps returns the lap sequence of a rider. ok is false only for ids that
// are not in the roster; roster riders without laps get an empty slice.
func (x *Extraction) Laps(id string) (laps []laptime.Duration, ok bool) {
	l, ok := x.laps[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(l), true
}

// LapsByRider returns a copy of the whole mapping.
func (x *Extraction) LapsByRider() map[string][]laptime.Duration {
	out := make(map[string][]laptime.Duration, len(x.laps))
	for id, l := range x.laps {
		out[id] = slices.Clone(l)
	}
	return out
}

type Extractor struct {
	roster   *roster.Roster
	boundary BoundaryPolicy
	logger   *slog.Logger
}

type Option func(*Extractor)

// WithBoundary replaces the default LeaderRow policy.
func WithBoundary(p BoundaryPolicy) Option {
	return func(e *Extractor) {
		if p != nil {
			e.boundary = p
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewExtractor(r *roster.Roster, opts ...Option) *Extractor {
	e := &Extractor{
		roster:   r,
		boundary: LeaderRow,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract scans pages in order. The lap counter runs across page breaks.
//
// Errors: MALFORMED_DOCUMENT when there are no pages, the first line of the
// first page is blank, a lap time is out of range, or nothing matches at all;
// ROSTER_MISMATCH when a row names a rider the roster does not know.
func (e *Extractor) Extract(ctx context.Context, pages []string) (*Extraction, error) {
	if len(pages) == 0 {
		return nil, common.MalformedDocumentf("document has no pages")
	}
	title := FirstLine(pages[0])
	if strings.TrimSpace(title) == "" {
		return nil, common.MalformedDocumentf("first page has no title line")
	}

	x := &Extraction{
		Title: title,
		Pages: len(pages),
		laps:  make(map[string][]laptime.Duration, e.roster.Len()),
		order: e.roster.IDs(),
	}
	for _, id := range x.order {
		x.laps[id] = []laptime.Duration{}
	}

	lap := LapState{riders: map[string]struct{}{}}
	for i, text := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows := Scan(i+1, text)
		e.logger.Debug("page scanned", "page", i+1, "rows", len(rows), "lap", lap.Number)

		for _, row := range rows {
			if e.boundary.Opens(row, lap) {
				lap = LapState{Number: lap.Number + 1, riders: map[string]struct{}{}}
			}

			d, err := laptime.Parse(row.LapTime)
			if err != nil {
				return nil, common.MalformedDocumentf("page %d: %v", row.Page, err)
			}
			if !e.roster.Has(row.RiderID) {
				return nil, common.RosterMismatchf("page %d: rider %q is not in roster %s", row.Page, row.RiderID, e.roster.Title())
			}

			x.laps[row.RiderID] = append(x.laps[row.RiderID], d)
			lap.riders[row.RiderID] = struct{}{}
			lap.Rows++
			x.Rows++
		}
	}
	if x.Rows == 0 {
		return nil, common.MalformedDocumentf("no lap times found in %d pages", len(pages))
	}
	x.LapCount = lap.Number

	e.logger.Info("extract.ok",
		"title", x.Title,
		"pages", x.Pages,
		"rows", x.Rows,
		"laps", x.LapCount,
		"roster", e.roster.Season(),
	)
	return x, nil
}

// FirstLine returns the first line of text with trailing blanks removed.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimRight(line, " \t\r")
}
