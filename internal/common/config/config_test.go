// internal/common/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PassesValidation(t *testing.T) {
	cfg := Default()
	require.NoError(t, validateConfig(cfg))
}

func TestDefault_PipelineValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "es", cfg.Pipeline.TargetLanguage)
	assert.Equal(t, []string{"spa", "es"}, cfg.Pipeline.AcceptedLanguages)
	assert.Equal(t, 5, cfg.Pipeline.InitialResults)
	assert.Equal(t, 3, cfg.Pipeline.MaxCategories)
	assert.Equal(t, 2, cfg.Pipeline.MaxKeywordQueries)
	assert.Equal(t, 15, cfg.Pipeline.FallbackThreshold)
	assert.Equal(t, 4, cfg.Diversity.FinalLimit)
}

func TestCacheConfig_TTLFor(t *testing.T) {
	cfg := Default()

	assert.Equal(t, time.Hour, cfg.Cache.TTLFor("search"))
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTLFor("ratings"))
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTLFor("trending"))
	// Unlisted kinds fall back to the default entry.
	assert.Equal(t, time.Hour, cfg.Cache.TTLFor("something_else"))
}

func TestValidateConfig_RejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Diversity.FinalLimit = 0
	assert.Error(t, validateConfig(cfg))

	cfg = Default()
	cfg.Pipeline.TargetLanguage = ""
	assert.Error(t, validateConfig(cfg))

	cfg = Default()
	cfg.Scoring.SparseContentThreshold = 1000
	assert.Error(t, validateConfig(cfg))
}

func TestProviderConfig_TimeoutDuration(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10*time.Second, cfg.Providers.GoogleBooks.TimeoutDuration())
	assert.Equal(t, 8*time.Second, cfg.Providers.OpenLibrary.TimeoutDuration())
}
