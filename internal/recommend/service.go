// internal/recommend/service.go

// Package recommend runs the end-to-end recommendation pipeline: seed
// resolution, fan-out, filtering, scoring, diversity selection and response
// assembly.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bookrec/internal/common/config"
	apperrors "bookrec/internal/common/errors"
	"bookrec/internal/common/logger"
	"bookrec/internal/common/metrics"
	"bookrec/internal/common/observability"
	"bookrec/internal/fetch"
	"bookrec/internal/models"
	"bookrec/internal/provider"
	"bookrec/internal/provider/googlebooks"
	"bookrec/internal/scoring"
	"bookrec/internal/textutil"
)

const (
	modeBook  = "book"
	modeTopic = "topic"
)

// Service wires the pipeline stages together. Stages are pure given their
// inputs; all I/O happens inside the orchestrator.
type Service struct {
	orch     *fetch.Orchestrator
	filter   *Filter
	engine   *scoring.Engine
	selector *Selector
	fallback *FallbackGenerator
	cfg      config.PipelineConfig
	obs      *observability.Observability
	logger   logger.Logger
}

func NewService(orch *fetch.Orchestrator, filter *Filter, engine *scoring.Engine,
	selector *Selector, fallback *FallbackGenerator, cfg config.PipelineConfig,
	obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		orch:     orch,
		filter:   filter,
		engine:   engine,
		selector: selector,
		fallback: fallback,
		cfg:      cfg,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "recommend"}),
	}
}

// Recommend runs one full pipeline pass for a free-text query. An empty final
// result set is a success with a message, not an error; errors are reserved
// for an unresolvable seed or an invalid query.
func (s *Service) Recommend(ctx context.Context, query string) (*Envelope, error) {
	if query == "" {
		return nil, apperrors.NewInvalidQueryError()
	}

	start := time.Now()

	seed, titleSeeded, err := s.resolveSeed(ctx, query)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("seed_not_found").Inc()
		s.obs.RecordRun(ctx, "seed_not_found")
		return nil, err
	}

	mode := modeTopic
	if titleSeeded {
		mode = modeBook
	}
	log := s.logger.WithFields(map[string]interface{}{
		"mode": mode,
		"seed": seed.Title,
	})

	var pool []models.Candidate
	if titleSeeded {
		pool = s.orch.Execute(ctx, s.orch.BuildPlan(seed))
		if len(pool) < s.cfg.FallbackThreshold {
			// The generator itself declines pools that already cover the
			// final result limit.
			pool = append(pool, s.fallback.Generate(ctx, seed, len(pool))...)
		}
	} else {
		// Topic mode skips the seed-derived batch: one broad relevance query
		// over the raw terms.
		pool = s.orch.FetchCandidates(ctx, fetch.PlannedQuery{
			Source: s.orch.Primary(),
			Query: provider.Query{
				Label:      "topic",
				Terms:      query,
				MaxResults: s.cfg.TopicResults,
				OrderBy:    "relevance",
			},
		})
	}

	filtered := s.filter.Apply(pool, seed, textutil.Fold(query), titleSeeded)

	scored := make([]models.ScoredCandidate, 0, len(filtered))
	for i := range filtered {
		scored = append(scored, models.ScoredCandidate{
			Candidate: filtered[i],
			Score:     s.engine.Score(&filtered[i], seed),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	selected := s.selector.Select(scored)

	env := s.buildEnvelope(query, seed, titleSeeded, selected)
	if err := ValidateEnvelope(env); err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("envelope_invalid").Inc()
		s.obs.RecordRun(ctx, "envelope_invalid")
		return nil, err
	}

	log.Info("pipeline run complete", map[string]interface{}{
		"pool_size":   len(pool),
		"filtered":    len(filtered),
		"recommended": len(env.Recommendations),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	metrics.PipelineRunsTotal.WithLabelValues("success").Inc()
	metrics.PipelineDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	s.obs.RecordRun(ctx, "success")
	s.obs.RecordRunDuration(ctx, time.Since(start), "success")

	return env, nil
}

// resolveSeed searches the primary source for the query and picks the seed
// item. The first attempt quotes the query as an exact phrase; when that
// yields nothing the raw terms are retried. titleSeeded is false when the
// chosen item carries no authors, which switches the pipeline to topic mode.
func (s *Service) resolveSeed(ctx context.Context, query string) (*models.SeedBook, bool, error) {
	res := s.seedSearch(ctx, "initial", fmt.Sprintf("%q", query))
	if res == nil || len(res.Items) == 0 {
		res = s.seedSearch(ctx, "initial_fallback", query)
	}
	if res == nil || len(res.Items) == 0 {
		return nil, false, apperrors.NewMalformedSeedError(query)
	}

	// Prefer the first item carrying both a title and authors; otherwise the
	// first item stands and the run degrades to topic mode.
	item := res.Items[0]
	for _, candidate := range res.Items {
		if candidate.VolumeInfo.Title != "" && len(candidate.VolumeInfo.Authors) > 0 {
			item = candidate
			break
		}
	}

	info := item.VolumeInfo
	seed := &models.SeedBook{
		Title:         info.Title,
		Authors:       info.Authors,
		Categories:    info.Categories,
		Description:   info.Description,
		PublishedYear: info.PublishedDate,
		Keywords:      textutil.ExtractKeywords(info.Categories, info.Description, s.cfg.MaxKeywords),
	}
	if seed.Title == "" {
		seed.Title = query
	}
	return seed, len(seed.Authors) > 0, nil
}

func (s *Service) seedSearch(ctx context.Context, label, terms string) *googlebooks.SearchResponse {
	payload, ok := s.orch.FetchRaw(ctx, fetch.PlannedQuery{
		Source: s.orch.Primary(),
		Query: provider.Query{
			Label:      label,
			Terms:      terms,
			MaxResults: s.cfg.InitialResults,
		},
	})
	if !ok {
		return nil
	}
	res, err := googlebooks.Decode(payload)
	if err != nil {
		s.logger.Warn("seed payload did not decode", map[string]interface{}{
			"label": label,
			"error": err.Error(),
		})
		return nil
	}
	return res
}

func (s *Service) buildEnvelope(query string, seed *models.SeedBook,
	titleSeeded bool, selected []models.ScoredCandidate) *Envelope {

	recs := make([]models.Recommendation, 0, len(selected))
	for i := range selected {
		recs = append(recs, s.toRecommendation(&selected[i].Candidate))
	}

	// based_on always carries the explanation; message is reserved for the
	// empty-result text.
	basedOn := fmt.Sprintf("Results for: %s", query)
	if titleSeeded {
		basedOn = fmt.Sprintf("Because you read '%s' by %s",
			seed.Title, seed.PrimaryAuthor())
	}

	env := &Envelope{
		BasedOn:         basedOn,
		TotalFound:      len(recs),
		Recommendations: recs,
	}
	if len(recs) == 0 {
		env.Message = fmt.Sprintf("No recommendations found for '%s'", query)
	}
	return env
}

// toRecommendation strips the internal fields and applies the display rules:
// descriptions are truncated with an ellipsis past the display length, and
// missing author/description fall back to their placeholders.
func (s *Service) toRecommendation(c *models.Candidate) models.Recommendation {
	description := c.Description
	if description == "" {
		description = s.cfg.EmptyDescriptionLabel
	} else if runes := []rune(description); len(runes) > s.cfg.DescriptionDisplayLength {
		description = string(runes[:s.cfg.DescriptionDisplayLength-3]) + "..."
	}

	return models.Recommendation{
		ID:            c.ID,
		Title:         c.Title,
		Author:        c.PrimaryAuthor(s.cfg.UnknownAuthorLabel),
		Description:   description,
		ImageURL:      c.ImageURL,
		Rating:        c.AverageRating,
		RatingsCount:  c.RatingsCount,
		PublishedYear: c.PublishedYear,
		Categories:    c.Categories,
	}
}
