// internal/models/book.go
package models

// SeedBook is the reference work driving a recommendation run. It is built
// once from the initial search response and never mutated afterwards.
type SeedBook struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Categories    []string `json:"categories"`
	Description   string   `json:"description"`
	PublishedYear string   `json:"publishedYear"`
	Keywords      []string `json:"keywords"`
}

// PrimaryAuthor returns the first listed author, or "" for author-less seeds
// (topic-mode runs).
func (s *SeedBook) PrimaryAuthor() string {
	if len(s.Authors) == 0 {
		return ""
	}
	return s.Authors[0]
}

// Candidate is the canonical book record every source adapter normalizes
// into. ID and Title are required; adapters drop records missing either.
// IDs are provider-issued and used as-is, so uniqueness is source-local.
type Candidate struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Categories    []string `json:"categories"`
	Description   string   `json:"description"`
	Language      string   `json:"language"`
	AverageRating float64  `json:"averageRating"`
	RatingsCount  int      `json:"ratingsCount"`
	PublishedYear string   `json:"publishedYear"`
	ImageURL      *string  `json:"imageUrl"`

	// HasRichMetadata is false when the source provides neither description
	// nor ratings; the scoring engine compensates such candidates.
	HasRichMetadata bool `json:"hasRichMetadata"`
}

// PrimaryAuthor returns the first listed author or the given placeholder.
func (c *Candidate) PrimaryAuthor(unknown string) string {
	if len(c.Authors) == 0 {
		return unknown
	}
	return c.Authors[0]
}

// ScoredCandidate annotates a Candidate with its relevance score. The score
// is internal only and is stripped before the response is built.
type ScoredCandidate struct {
	Candidate
	Score float64 `json:"-"`
}

// SeriesInfo is derived from a title by pattern matching, never persisted.
type SeriesInfo struct {
	Name  string `json:"name"`
	Index string `json:"index"`
}

// Recommendation is the outward-facing record returned to the entry point.
type Recommendation struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	ImageURL      *string  `json:"image"`
	Rating        float64  `json:"rating"`
	RatingsCount  int      `json:"ratingsCount"`
	PublishedYear string   `json:"publishedYear"`
	Categories    []string `json:"categories"`
}
