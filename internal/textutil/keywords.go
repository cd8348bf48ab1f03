// internal/textutil/keywords.go
package textutil

import "strings"

// stopWords are excluded from keyword extraction (English + Spanish).
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true, "by": true, "from": true, "as": true,
	"is": true, "was": true, "are": true, "were": true, "been": true,
	"be": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true,
	"el": true, "la": true, "de": true, "en": true, "y": true, "que": true,
	"los": true, "las": true, "un": true, "una": true, "su": true,
	"del": true, "al": true,
}

const minKeywordLength = 5

// ExtractKeywords derives up to max keywords from category names and
// description words, folded and stripped of stop words. Insertion order is
// preserved so repeated runs over the same seed are deterministic.
func ExtractKeywords(categories []string, description string, max int) []string {
	seen := make(map[string]bool)
	var keywords []string

	add := func(word string) {
		k := Fold(word)
		if k == "" || stopWords[k] || seen[k] {
			return
		}
		seen[k] = true
		keywords = append(keywords, k)
	}

	for _, cat := range categories {
		for _, word := range strings.Fields(strings.ToLower(cat)) {
			add(word)
		}
	}

	for _, word := range strings.Fields(strings.ToLower(description)) {
		if len([]rune(word)) >= minKeywordLength && !stopWords[word] {
			add(word)
		}
	}

	if len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}
