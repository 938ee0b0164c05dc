package pdftext

import (
	"regexp"
	"strings"
)

var (
	reCRLF = regexp.MustCompile(`\r\n?`)
	reTabs = regexp.MustCompile(`\t+`)
	// typographic apostrophes some producers emit for the minute mark
	apostrophes = strings.NewReplacer("’", "'", "′", "'", "´", "'")
)

// Normalize unifies line endings, tabs and minute marks and trims trailing
// spaces. Digits, inner spacing and line order are left alone: the lap
// scanner relies on them.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = apostrophes.Replace(s)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}
