// internal/series/detector.go

// Package series extracts a saga name and installment number from a title
// string by pattern matching. Detection is heuristic: pattern order is
// significant and mismatches on unusual titles are accepted noise.
package series

import (
	"regexp"
	"strings"

	"bookrec/internal/models"
)

// Patterns are tried in order; the first match wins. Some expose the
// installment number in the second capture group, others in the first.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(Book|Vol\.?|Volume|Part|Libro|Tomo)\s*(\d+)`),
	regexp.MustCompile(`(?i)\(#(\d+)\)`),
	regexp.MustCompile(`(?i):\s*Book\s*(\d+)`),
	regexp.MustCompile(`(?i),\s*Book\s*(\d+)`),
	regexp.MustCompile(`(?i)\b(\d+)\s*of\s*\d+`),
}

// Detect returns the series info derived from a title, or ok=false when no
// pattern matches. Pure function, no side effects.
func Detect(title string) (models.SeriesInfo, bool) {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(title)
		if match == nil {
			continue
		}

		name := pattern.ReplaceAllString(title, "")
		name = strings.TrimSpace(name)
		name = strings.TrimRight(name, ":,-")
		name = strings.TrimSpace(name)

		// Prefer the second capture group when the pattern defines one and
		// it matched; fall back to the first.
		index := match[1]
		if len(match) > 2 && match[2] != "" {
			index = match[2]
		}

		return models.SeriesInfo{Name: name, Index: index}, true
	}

	return models.SeriesInfo{}, false
}
