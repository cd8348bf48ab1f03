// internal/provider/provider.go

// Package provider defines the polymorphic source adapter contract. Each
// upstream search provider implements Source, mapping its native schema into
// the canonical Candidate shape so the scoring engine and diversity selector
// stay source-agnostic.
package provider

import (
	"context"
	"fmt"

	"bookrec/internal/models"
	"bookrec/internal/textutil"
)

// Query is one provider-native search request.
type Query struct {
	// Label tags the query's role in the plan ("author", "category",
	// "keywords", "series", "secondary", "initial", "topic", "fallback").
	Label string

	// Terms is the provider-native query expression.
	Terms string

	MaxResults int

	// OrderBy is passed through when the provider supports result ordering.
	OrderBy string

	// Language restricts results server-side where the provider supports it.
	Language string
}

// CacheKey derives the deterministic cache key for this query against the
// named source. Folding the terms makes keys insensitive to accents and
// casing, so equivalent queries share an entry.
func (q Query) CacheKey(source string) string {
	return fmt.Sprintf("%s_%s_%s_%d", source, q.Label, textutil.Fold(q.Terms), q.MaxResults)
}

// Source is the adapter for one search provider.
type Source interface {
	// Name identifies the provider ("googlebooks", "openlibrary").
	Name() string

	// Search issues the query and returns the raw response payload. Any
	// timeout, non-2xx status or transport error surfaces as an error; the
	// caller converts it into an absent contribution.
	Search(ctx context.Context, q Query) ([]byte, error)

	// Normalize converts a raw payload into canonical candidates, dropping
	// records that lack a title or identifier.
	Normalize(payload []byte) []models.Candidate
}
