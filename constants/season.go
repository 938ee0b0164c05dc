package constants

import "strings"

// Season identifies one of the built-in rosters.
type Season string

const (
	Season2020 Season = "2020"
	Season2024 Season = "2024"
)

var allSeasons = []Season{Season2020, Season2024}

// Seasons returns the built-in seasons as strings.
func Seasons() []string {
	result := make([]string, len(allSeasons))
	for i, s := range allSeasons {
		result[i] = string(s)
	}
	return result
}

// CanonicalizeSeason maps loose spellings ("24", "motogp-2024", "MotoGP 2020") to a built-in season.
func CanonicalizeSeason(input string) (Season, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	normalized = strings.TrimPrefix(normalized, "motogp")
	normalized = strings.TrimLeft(normalized, " -_")

	synonyms := map[string]Season{
		"20": Season2020,
		"24": Season2024,
	}
	if s, ok := synonyms[normalized]; ok {
		return s, true
	}
	for _, s := range allSeasons {
		if normalized == string(s) {
			return s, true
		}
	}
	return "", false
}
