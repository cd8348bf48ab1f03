// internal/recommend/fallback_test.go
package recommend

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"bookrec/internal/cache"
	"bookrec/internal/common/config"
	"bookrec/internal/common/database"
	"bookrec/internal/common/logger"
	"bookrec/internal/fetch"
	"bookrec/internal/models"
)

func setupFallback(t *testing.T, primary *fakeBooksSource) *FallbackGenerator {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := config.Default()
	log := logger.NewTestLogger(t)

	store := cache.NewStore(database.NewRedisFromClient(client), cfg.Cache, log)
	orch := fetch.NewOrchestrator(primary, &fakeBooksSource{name: "openlibrary"},
		store, cfg.Pipeline, log)
	return NewFallbackGenerator(orch, cfg.Pipeline, cfg.Diversity, log)
}

func fallbackSeed() *models.SeedBook {
	return &models.SeedBook{
		Title:         "Mistborn, Book 1",
		Authors:       []string{"Brandon Sanderson"},
		Categories:    []string{"Fiction / Fantasy"},
		PublishedYear: "2006-07-17",
	}
}

func TestFallbackGenerator_DeclinesPoolAtFinalLimit(t *testing.T) {
	primary := &fakeBooksSource{name: "googlebooks"}
	generator := setupFallback(t, primary)

	// Final limit defaults to 4: a pool of that size gets no enrichment and
	// no provider traffic.
	extra := generator.Generate(context.Background(), fallbackSeed(), 4)

	assert.Nil(t, extra)
	assert.Empty(t, primary.seenLabels())
}

func TestFallbackGenerator_EnrichesUndersizedPool(t *testing.T) {
	primary := &fakeBooksSource{
		name: "googlebooks",
		payloads: map[string]string{
			"fallback_bestsellers": poolPayload,
		},
	}
	generator := setupFallback(t, primary)

	extra := generator.Generate(context.Background(), fallbackSeed(), 2)

	assert.NotEmpty(t, extra)
	labels := primary.seenLabels()
	assert.Contains(t, labels, "fallback_bestsellers")
	assert.Contains(t, labels, "fallback_decade_2000")
}

func TestFallbackGenerator_SkipsDecadeQueryOnBadYear(t *testing.T) {
	primary := &fakeBooksSource{name: "googlebooks"}
	generator := setupFallback(t, primary)

	seed := fallbackSeed()
	seed.PublishedYear = "n.d."
	generator.Generate(context.Background(), seed, 0)

	for _, label := range primary.seenLabels() {
		assert.NotContains(t, label, "fallback_decade")
	}
}
