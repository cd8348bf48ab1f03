// internal/textutil/normalize.go

// Package textutil folds Unicode text into a comparable ASCII form and
// extracts seed keywords. Folded output feeds deduplication, series-name
// comparison and the keyword similarity fallback.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Fold decomposes s, strips combining marks and any remaining non-ASCII
// runes, lowercases, and collapses whitespace. "Señor Á" -> "senor a".
func Fold(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(strings.ToLower(b.String())), " ")
}
