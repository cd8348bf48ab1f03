// internal/recommend/diversity.go
package recommend

import (
	"bookrec/internal/common/config"
	"bookrec/internal/models"
	"bookrec/internal/scoring"
	"bookrec/internal/series"
	"bookrec/internal/textutil"
)

// Selector greedily picks the final ordered result set under per-author,
// per-decade and per-series caps. Single deterministic pass, no backtracking:
// local greedy acceptance is the intended policy.
type Selector struct {
	cfg config.DiversityConfig
}

func NewSelector(cfg config.DiversityConfig) *Selector {
	return &Selector{cfg: cfg}
}

// Select scans candidates already sorted descending by score (stable ties)
// and accepts each one whose author, decade and series counters are all below
// their caps. Decade and series checks are skipped when the attribute cannot
// be derived. Scanning stops at the configured final limit.
func (s *Selector) Select(sorted []models.ScoredCandidate) []models.ScoredCandidate {
	authorCount := make(map[string]int)
	decadeCount := make(map[int]int)
	seriesCount := make(map[string]int)

	var results []models.ScoredCandidate
	for i := range sorted {
		c := &sorted[i]

		author := c.PrimaryAuthor("")

		decade, hasDecade := 0, false
		if year, ok := scoring.ParseYear(c.PublishedYear); ok {
			decade, hasDecade = (year/10)*10, true
		}

		seriesKey, hasSeries := "", false
		if info, ok := series.Detect(c.Title); ok {
			seriesKey, hasSeries = textutil.Fold(info.Name), true
		}

		if authorCount[author] >= s.cfg.MaxPerAuthor {
			continue
		}
		if hasDecade && decadeCount[decade] >= s.cfg.MaxPerDecade {
			continue
		}
		if hasSeries && seriesCount[seriesKey] >= s.cfg.MaxPerSeries {
			continue
		}

		results = append(results, *c)
		authorCount[author]++
		if hasDecade {
			decadeCount[decade]++
		}
		if hasSeries {
			seriesCount[seriesKey]++
		}

		if len(results) >= s.cfg.FinalLimit {
			break
		}
	}
	return results
}
