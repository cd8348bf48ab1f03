// internal/scoring/engine.go

// Package scoring computes the multi-factor relevance score of a candidate
// against the seed book. The engine is deterministic and side-effect free;
// every weight and threshold comes from configuration.
package scoring

import (
	"strconv"
	"strings"

	"bookrec/internal/common/config"
	"bookrec/internal/common/metrics"
	"bookrec/internal/models"
	"bookrec/internal/series"
	"bookrec/internal/textutil"
)

type Engine struct {
	cfg      config.ScoringConfig
	embedder Embedder // nil when the capability is absent
}

func NewEngine(cfg config.ScoringConfig, embedder Embedder) *Engine {
	return &Engine{cfg: cfg, embedder: embedder}
}

// Score sums the component scores for one candidate. Identical inputs always
// yield identical scores; the result is non-negative and bounded by the sum
// of the component maxima plus the sparse-metadata compensation.
func (e *Engine) Score(c *models.Candidate, seed *models.SeedBook) float64 {
	metrics.CandidatesScored.Inc()

	authorScore := e.authorMatch(c, seed.PrimaryAuthor())
	ratingScore := e.adjustForPopularity(
		e.ratingBase(c)+e.ratingVolume(c), c.RatingsCount)
	categoryScore := e.categoryOverlap(c.Categories, seed.Categories)
	semanticScore := e.semanticSimilarity(seed.Description, c.Description)
	seriesScore := e.seriesBonus(c.Title, seed.Title)
	recencyScore := e.recency(c.PublishedYear, seed.PublishedYear)

	score := authorScore + ratingScore + categoryScore + semanticScore +
		seriesScore + recencyScore

	// Rating/description-less sources can still compete when their content
	// signals (author, category, series) are strong.
	if !c.HasRichMetadata {
		contentMatch := authorScore + categoryScore + seriesScore
		if contentMatch > e.cfg.SparseContentThreshold {
			score += e.cfg.SparseCompensation
		}
	}

	return score
}

func (e *Engine) authorMatch(c *models.Candidate, primaryAuthor string) float64 {
	if primaryAuthor == "" {
		return 0
	}
	for _, author := range c.Authors {
		if author == primaryAuthor {
			return e.cfg.AuthorMatch
		}
	}
	return 0
}

func (e *Engine) ratingBase(c *models.Candidate) float64 {
	if c.AverageRating <= 0 {
		return 0
	}
	return (c.AverageRating / 5.0) * e.cfg.RatingBaseMax
}

// ratingVolume is a step function of the ratings count.
func (e *Engine) ratingVolume(c *models.Candidate) float64 {
	switch {
	case c.RatingsCount > e.cfg.RatingCountHigh:
		return e.cfg.RatingCountMax
	case c.RatingsCount > e.cfg.RatingCountMedium:
		return e.cfg.RatingCountMax * (2.0 / 3.0)
	case c.RatingsCount > e.cfg.RatingCountLow:
		return e.cfg.RatingCountMax * (1.0 / 3.0)
	}
	return 0
}

// adjustForPopularity applies the anti-bestseller bands to the combined
// rating component only.
func (e *Engine) adjustForPopularity(ratingScore float64, ratingsCount int) float64 {
	switch {
	case ratingsCount > e.cfg.PopularityMegaThreshold:
		// Mega-bestseller: slight penalty.
		return ratingScore * e.cfg.PopularityMegaFactor
	case ratingsCount > e.cfg.PopularityHighThreshold:
		// Very popular: unchanged.
		return ratingScore
	case ratingsCount < e.cfg.PopularityNicheCeiling && ratingsCount >= e.cfg.PopularityNicheFloor:
		// Niche with some signal: moderate boost.
		return ratingScore * e.cfg.PopularityNicheFactor
	case ratingsCount < e.cfg.PopularityNicheFloor && ratingsCount > 0:
		// Very niche: slight boost, could be a good new book.
		return ratingScore * e.cfg.PopularityMicroFactor
	}
	return ratingScore
}

// categoryOverlap counts substring matches in either direction, capped at the
// category maximum.
func (e *Engine) categoryOverlap(candidate, seed []string) float64 {
	if len(candidate) == 0 || len(seed) == 0 {
		return 0
	}
	matches := 0
	for _, sc := range seed {
		scLower := strings.ToLower(sc)
		for _, cc := range candidate {
			ccLower := strings.ToLower(cc)
			if strings.Contains(ccLower, scLower) || strings.Contains(scLower, ccLower) {
				matches++
			}
		}
	}
	score := float64(matches) * e.cfg.CategoryStep
	if score > e.cfg.CategoryMax {
		return e.cfg.CategoryMax
	}
	return score
}

// semanticSimilarity compares description prefixes. The embedding path runs
// when the capability is present and healthy; otherwise keyword Jaccard.
// Either way the result scales to the same maximum.
func (e *Engine) semanticSimilarity(seedDesc, candidateDesc string) float64 {
	if seedDesc == "" || candidateDesc == "" {
		return 0
	}

	a := truncate(seedDesc, e.cfg.DescriptionCompareLength)
	b := truncate(candidateDesc, e.cfg.DescriptionCompareLength)

	if e.embedder != nil {
		embA, errA := e.embedder.Embed(a)
		embB, errB := e.embedder.Embed(b)
		if errA == nil && errB == nil {
			return cosineSimilarity(embA, embB) * e.cfg.SimilarityMax
		}
	}

	return jaccard(a, b) * e.cfg.SimilarityMax
}

// jaccard computes set similarity over whitespace-tokenized lowercase words.
func jaccard(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)

	union := len(wordsB)
	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// truncate cuts on rune boundaries so accented text never ends mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func (e *Engine) seriesBonus(candidateTitle, seedTitle string) float64 {
	candidateSeries, okC := series.Detect(candidateTitle)
	seedSeries, okS := series.Detect(seedTitle)
	if !okC || !okS {
		return 0
	}
	if textutil.Fold(candidateSeries.Name) == textutil.Fold(seedSeries.Name) {
		return e.cfg.SeriesBonus
	}
	return 0
}

// recency rewards publication proximity to the seed. Unparseable years skip
// the component for that candidate only.
func (e *Engine) recency(candidateYear, seedYear string) float64 {
	cy, okC := ParseYear(candidateYear)
	sy, okS := ParseYear(seedYear)
	if !okC || !okS {
		return 0
	}
	diff := cy - sy
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= e.cfg.RecencyNearYears:
		return e.cfg.RecencyNearBonus
	case diff <= e.cfg.RecencyFarYears:
		return e.cfg.RecencyFarBonus
	}
	return 0
}

// ParseYear reads the leading four digits of a publication date string. The
// diversity selector shares it to derive decades.
func ParseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}
