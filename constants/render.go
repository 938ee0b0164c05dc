package constants

import "strings"

// RenderFormat selects the chart backend.
type RenderFormat string

const (
	RenderPNG  RenderFormat = "png"
	RenderSVG  RenderFormat = "svg"
	RenderTUI  RenderFormat = "tui"
	RenderXLSX RenderFormat = "xlsx"
)

var allRenderFormats = []RenderFormat{RenderPNG, RenderSVG, RenderTUI, RenderXLSX}

// RenderFormats returns the supported formats as strings, in display order.
func RenderFormats() []string {
	out := make([]string, len(allRenderFormats))
	for i, f := range allRenderFormats {
		out[i] = string(f)
	}
	return out
}

// ParseRenderFormat canonicalizes a user supplied format name.
func ParseRenderFormat(s string) (RenderFormat, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	synonyms := map[string]RenderFormat{
		"image":    RenderPNG,
		"terminal": RenderTUI,
		"excel":    RenderXLSX,
	}
	if f, ok := synonyms[normalized]; ok {
		return f, true
	}
	for _, f := range allRenderFormats {
		if normalized == string(f) {
			return f, true
		}
	}
	return "", false
}

// Boundary policy names accepted in configuration.
const (
	BoundaryLeaderRow   = "leader-row"
	BoundaryRiderRepeat = "rider-repeat"
)

// Page text backends accepted in configuration.
const (
	BackendNative    = "native"
	BackendPdftotext = "pdftotext"
)
