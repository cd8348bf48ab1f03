// internal/fetch/orchestrator.go

// Package fetch builds the bounded query batch for a seed book and executes
// it concurrently against the source adapters with per-query cache-aside and
// failure isolation.
package fetch

import (
	"context"
	"fmt"
	"sync"

	"bookrec/internal/cache"
	"bookrec/internal/common/config"
	"bookrec/internal/common/logger"
	"bookrec/internal/common/metrics"
	"bookrec/internal/models"
	"bookrec/internal/provider"
	"bookrec/internal/series"
	"bookrec/internal/textutil"
)

// PlannedQuery pairs a query with the adapter that owns it.
type PlannedQuery struct {
	Source provider.Source
	Query  provider.Query
}

// Orchestrator owns the two source adapters and the shared cache store.
type Orchestrator struct {
	primary   provider.Source
	secondary provider.Source
	store     *cache.Store
	cfg       config.PipelineConfig
	logger    logger.Logger
}

func NewOrchestrator(primary, secondary provider.Source, store *cache.Store,
	cfg config.PipelineConfig, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		primary:   primary,
		secondary: secondary,
		store:     store,
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "fetch"}),
	}
}

// Primary returns the primary source adapter (seed and topic searches).
func (o *Orchestrator) Primary() provider.Source { return o.primary }

// BuildPlan constructs the bounded query batch for a seed:
// one author query, up to three category queries, up to two keyword-pair
// queries, a series query when the seed title resolves to a series, and one
// secondary-source query restricted to the target language.
func (o *Orchestrator) BuildPlan(seed *models.SeedBook) []PlannedQuery {
	author := seed.PrimaryAuthor()
	var plan []PlannedQuery

	// 1. Works by the same author.
	plan = append(plan, PlannedQuery{
		Source: o.primary,
		Query: provider.Query{
			Label:      "author",
			Terms:      fmt.Sprintf("inauthor:%q", author),
			MaxResults: o.cfg.AuthorResults,
		},
	})

	// 2. Leading categories.
	for i, category := range seed.Categories {
		if i >= o.cfg.MaxCategories {
			break
		}
		leaf := textutil.LeafCategory(category)
		if leaf == "" {
			continue
		}
		plan = append(plan, PlannedQuery{
			Source: o.primary,
			Query: provider.Query{
				Label:      fmt.Sprintf("category_%d", i),
				Terms:      fmt.Sprintf("subject:%q", leaf),
				MaxResults: o.cfg.CategoryResults,
				OrderBy:    "relevance",
			},
		})
	}

	// 3. Keyword pairs drawn from the leading keywords.
	limit := 2 * o.cfg.MaxKeywordQueries
	if limit > len(seed.Keywords) {
		limit = len(seed.Keywords)
	}
	for i := 0; i < limit; i += 2 {
		end := i + 2
		if end > limit {
			end = limit
		}
		terms := ""
		for _, kw := range seed.Keywords[i:end] {
			if terms != "" {
				terms += " "
			}
			terms += kw
		}
		plan = append(plan, PlannedQuery{
			Source: o.primary,
			Query: provider.Query{
				Label:      fmt.Sprintf("keywords_%d", i),
				Terms:      terms,
				MaxResults: o.cfg.KeywordResults,
				OrderBy:    "relevance",
			},
		})
	}

	// 4. Same series by the same author, only when the title parses.
	if info, ok := series.Detect(seed.Title); ok {
		plan = append(plan, PlannedQuery{
			Source: o.primary,
			Query: provider.Query{
				Label:      "series",
				Terms:      fmt.Sprintf("intitle:%q inauthor:%q", info.Name, author),
				MaxResults: o.cfg.SeriesResults,
			},
		})
	}

	// 5. Secondary source, from author (preferred) or else keywords.
	secondaryTerms := ""
	if author != "" {
		secondaryTerms = fmt.Sprintf("author:%q", author)
	} else if len(seed.Keywords) > 0 {
		for _, kw := range seed.Keywords {
			if secondaryTerms != "" {
				secondaryTerms += " "
			}
			secondaryTerms += kw
		}
	}
	if secondaryTerms != "" {
		// The secondary provider filters on three-letter language tags; the
		// accepted set lists that form first.
		lang := o.cfg.TargetLanguage
		if len(o.cfg.AcceptedLanguages) > 0 {
			lang = o.cfg.AcceptedLanguages[0]
		}
		plan = append(plan, PlannedQuery{
			Source: o.secondary,
			Query: provider.Query{
				Label:      "secondary",
				Terms:      secondaryTerms,
				MaxResults: o.cfg.SecondaryResults,
				Language:   lang,
			},
		})
	}

	return plan
}

// Execute runs every planned query concurrently. All queries start before any
// is awaited; a failing query contributes no candidates and never cancels its
// siblings. Results concatenate in plan order.
func (o *Orchestrator) Execute(ctx context.Context, plan []PlannedQuery) []models.Candidate {
	type outcome struct {
		candidates []models.Candidate
		err        error
	}

	outcomes := make([]outcome, len(plan))
	var wg sync.WaitGroup
	for i, pq := range plan {
		wg.Add(1)
		go func(i int, pq PlannedQuery) {
			defer wg.Done()
			candidates, err := o.fetchOne(ctx, pq)
			outcomes[i] = outcome{candidates: candidates, err: err}
		}(i, pq)
	}
	wg.Wait()

	var pool []models.Candidate
	for i, out := range outcomes {
		if out.err != nil {
			o.logger.Warn("query contributed no candidates", map[string]interface{}{
				"source": plan[i].Source.Name(),
				"label":  plan[i].Query.Label,
				"error":  out.err.Error(),
			})
			continue
		}
		pool = append(pool, out.candidates...)
	}
	return pool
}

// FetchCandidates runs one query through the cache-aside path and normalizes
// the payload. Used by the fallback generator's sequential enrichment and by
// topic-mode runs; failures yield an empty contribution.
func (o *Orchestrator) FetchCandidates(ctx context.Context, pq PlannedQuery) []models.Candidate {
	candidates, err := o.fetchOne(ctx, pq)
	if err != nil {
		o.logger.Warn("query contributed no candidates", map[string]interface{}{
			"source": pq.Source.Name(),
			"label":  pq.Query.Label,
			"error":  err.Error(),
		})
		return nil
	}
	return candidates
}

// FetchRaw runs one query through the cache-aside path and returns the raw
// payload. The seed search uses this to inspect items before normalization.
func (o *Orchestrator) FetchRaw(ctx context.Context, pq PlannedQuery) ([]byte, bool) {
	payload, err := o.fetchPayload(ctx, pq)
	if err != nil {
		o.logger.Warn("query returned no payload", map[string]interface{}{
			"source": pq.Source.Name(),
			"label":  pq.Query.Label,
			"error":  err.Error(),
		})
		return nil, false
	}
	return payload, true
}

func (o *Orchestrator) fetchOne(ctx context.Context, pq PlannedQuery) ([]models.Candidate, error) {
	payload, err := o.fetchPayload(ctx, pq)
	if err != nil {
		return nil, err
	}
	return pq.Source.Normalize(payload), nil
}

// fetchPayload is the cache-aside protocol for one query: cached payload on a
// hit; on a miss, the provider call runs under its client timeout and a
// success is stored with the search TTL.
func (o *Orchestrator) fetchPayload(ctx context.Context, pq PlannedQuery) ([]byte, error) {
	key := pq.Query.CacheKey(pq.Source.Name())
	if payload, ok := o.store.Get(ctx, cache.KindSearch, key); ok {
		metrics.ProviderQueriesTotal.WithLabelValues(pq.Source.Name(), "cached").Inc()
		return payload, nil
	}

	payload, err := pq.Source.Search(ctx, pq.Query)
	if err != nil {
		metrics.ProviderQueriesTotal.WithLabelValues(pq.Source.Name(), "error").Inc()
		return nil, err
	}
	metrics.ProviderQueriesTotal.WithLabelValues(pq.Source.Name(), "ok").Inc()

	o.store.Set(ctx, cache.KindSearch, key, payload)
	return payload, nil
}
