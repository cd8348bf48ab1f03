// internal/recommend/fallback.go
package recommend

import (
	"context"
	"fmt"

	"bookrec/internal/common/config"
	"bookrec/internal/common/logger"
	"bookrec/internal/fetch"
	"bookrec/internal/models"
	"bookrec/internal/provider"
	"bookrec/internal/scoring"
	"bookrec/internal/textutil"
)

// FallbackGenerator enriches an undersized candidate pool with bestseller and
// decade queries. This is a low-frequency path, so the queries run
// sequentially under the same cache-aside contract as the main batch.
type FallbackGenerator struct {
	orch   *fetch.Orchestrator
	cfg    config.PipelineConfig
	limit  int
	logger logger.Logger
}

func NewFallbackGenerator(orch *fetch.Orchestrator, cfg config.PipelineConfig,
	diversity config.DiversityConfig, log logger.Logger) *FallbackGenerator {
	return &FallbackGenerator{
		orch:   orch,
		cfg:    cfg,
		limit:  diversity.FinalLimit,
		logger: log.WithFields(map[string]interface{}{"component": "fallback"}),
	}
}

// Generate returns extra candidates: bestsellers from the seed's leading
// category, plus the primary author paired with the seed's decade. A pool
// that already covers the final result limit needs no enrichment and no
// queries run for it. A seed year that does not parse simply skips the
// decade query.
func (g *FallbackGenerator) Generate(ctx context.Context, seed *models.SeedBook,
	poolSize int) []models.Candidate {

	if poolSize >= g.limit {
		return nil
	}
	g.logger.Info("pool below final limit, running fallback enrichment", map[string]interface{}{
		"pool_size": poolSize,
	})

	var extra []models.Candidate

	if len(seed.Categories) > 0 {
		leaf := textutil.LeafCategory(seed.Categories[0])
		if leaf != "" {
			extra = append(extra, g.orch.FetchCandidates(ctx, fetch.PlannedQuery{
				Source: g.orch.Primary(),
				Query: provider.Query{
					Label:      "fallback_bestsellers",
					Terms:      fmt.Sprintf("subject:%q", leaf),
					MaxResults: g.cfg.FallbackResults,
					OrderBy:    "relevance",
				},
			})...)
		}
	}

	if year, ok := scoring.ParseYear(seed.PublishedYear); ok {
		decade := (year / 10) * 10
		extra = append(extra, g.orch.FetchCandidates(ctx, fetch.PlannedQuery{
			Source: g.orch.Primary(),
			Query: provider.Query{
				Label:      fmt.Sprintf("fallback_decade_%d", decade),
				Terms:      fmt.Sprintf("%s %d", seed.PrimaryAuthor(), decade),
				MaxResults: g.cfg.KeywordResults,
			},
		})...)
	}

	if len(extra) > 0 {
		g.logger.Info("fallback enrichment added candidates", map[string]interface{}{
			"count": len(extra),
		})
	}
	return extra
}
