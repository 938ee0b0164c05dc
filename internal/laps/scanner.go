package laps

import "regexp"

// rowPattern matches one timing row of an analysis-by-lap sheet:
// lap time, rider number, then an optional gap to the lap leader.
//
//	1'32.127 89      leader of the lap, no gap
//	1'32.400 93 0.273
var rowPattern = regexp.MustCompile(`(\d'\d{2}\.\d{3})\s?(\d{1,2})\s(\d+\.\d{3})?`)

// Row is a single pattern match.
type Row struct {
	Page    int    // 1-based
	LapTime string // raw token, e.g. "2'03.958"
	RiderID string
	Gap     string // empty for the row that leads its lap
}

// Scan returns the rows found in one page of text, in the order they appear.
func Scan(page int, text string) []Row {
	matches := rowPattern.FindAllStringSubmatch(text, -1)
	rows := make([]Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, Row{
			Page:    page,
			LapTime: m[1],
			RiderID: m[2],
			Gap:     m[3],
		})
	}
	return rows
}
