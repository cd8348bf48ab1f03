// internal/recommend/filter.go
package recommend

import (
	"strings"

	"bookrec/internal/common/config"
	"bookrec/internal/models"
	"bookrec/internal/textutil"
)

// Filter applies the pre-scoring gate: language match, required fields,
// identifier deduplication, self-match exclusion and the near-duplicate
// title guard for title-seeded runs.
type Filter struct {
	cfg config.PipelineConfig
}

func NewFilter(cfg config.PipelineConfig) *Filter {
	return &Filter{cfg: cfg}
}

// Apply returns the candidates that survive every check, preserving input
// order. foldedQuery is the folded seed query string; titleSeeded is false
// for topic-mode runs, which skip the echo guard.
func (f *Filter) Apply(pool []models.Candidate, seed *models.SeedBook,
	foldedQuery string, titleSeeded bool) []models.Candidate {

	foldedSeedTitle := textutil.Fold(seed.Title)
	seen := make(map[string]bool, len(pool))
	var out []models.Candidate

	for _, c := range pool {
		if c.Language != f.cfg.TargetLanguage {
			continue
		}
		if c.Title == "" || c.ID == "" || seen[c.ID] {
			continue
		}

		foldedTitle := textutil.Fold(c.Title)

		// The seed book itself never appears in its own recommendations.
		if foldedTitle == foldedSeedTitle {
			continue
		}

		// Title-seeded runs drop near-duplicate sequels/editions whose title
		// contains the query verbatim ("The Road" vs "The Road to ...").
		if titleSeeded && len(foldedQuery) > f.cfg.MinQueryEcho &&
			strings.Contains(foldedTitle, foldedQuery) {
			continue
		}

		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
