// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like REDIS_ADDRESS
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, merged on top of the base file when present.
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from several locations so the binary and the tests
// can both find it.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "bookrec"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 5
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	applyProviderDefaults(&cfg.Providers.GoogleBooks,
		"https://www.googleapis.com/books/v1/volumes", 10)
	applyProviderDefaults(&cfg.Providers.OpenLibrary,
		"https://openlibrary.org", 8)

	if cfg.Cache.TTL == nil {
		cfg.Cache.TTL = map[string]int{}
	}
	cacheDefaults := map[string]int{
		"ratings":  86400,
		"search":   3600,
		"user":     1800,
		"trending": 600,
		"default":  3600,
	}
	for kind, secs := range cacheDefaults {
		if _, ok := cfg.Cache.TTL[kind]; !ok {
			cfg.Cache.TTL[kind] = secs
		}
	}

	applyPipelineDefaults(&cfg.Pipeline)
	applyScoringDefaults(&cfg.Scoring)
	applyDiversityDefaults(&cfg.Diversity)
}

func applyProviderDefaults(p *ProviderConfig, baseURL string, timeout int) {
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	if p.Timeout == 0 {
		p.Timeout = timeout
	}
	if p.RequestsPerSecond == 0 {
		p.RequestsPerSecond = 5
	}
	if p.UserAgent == "" {
		p.UserAgent = "bookrec/1.0"
	}
}

func applyPipelineDefaults(p *PipelineConfig) {
	if p.TargetLanguage == "" {
		p.TargetLanguage = "es"
	}
	if len(p.AcceptedLanguages) == 0 {
		p.AcceptedLanguages = []string{"spa", "es"}
	}
	if p.InitialResults == 0 {
		p.InitialResults = 5
	}
	if p.AuthorResults == 0 {
		p.AuthorResults = 8
	}
	if p.CategoryResults == 0 {
		p.CategoryResults = 15
	}
	if p.KeywordResults == 0 {
		p.KeywordResults = 10
	}
	if p.SeriesResults == 0 {
		p.SeriesResults = 10
	}
	if p.SecondaryResults == 0 {
		p.SecondaryResults = 25
	}
	if p.TopicResults == 0 {
		p.TopicResults = 30
	}
	if p.FallbackResults == 0 {
		p.FallbackResults = 15
	}
	if p.MaxCategories == 0 {
		p.MaxCategories = 3
	}
	if p.MaxKeywordQueries == 0 {
		p.MaxKeywordQueries = 2
	}
	if p.MaxKeywords == 0 {
		p.MaxKeywords = 10
	}
	if p.FallbackThreshold == 0 {
		p.FallbackThreshold = 15
	}
	if p.MinQueryEcho == 0 {
		p.MinQueryEcho = 5
	}
	if p.DescriptionDisplayLength == 0 {
		p.DescriptionDisplayLength = 150
	}
	if p.UnknownAuthorLabel == "" {
		p.UnknownAuthorLabel = "Unknown author"
	}
	if p.EmptyDescriptionLabel == "" {
		p.EmptyDescriptionLabel = "No description available"
	}
}

func applyScoringDefaults(s *ScoringConfig) {
	if s.AuthorMatch == 0 {
		s.AuthorMatch = 30
	}
	if s.CategoryMax == 0 {
		s.CategoryMax = 25
	}
	if s.CategoryStep == 0 {
		s.CategoryStep = 5
	}
	if s.SimilarityMax == 0 {
		s.SimilarityMax = 15
	}
	if s.SeriesBonus == 0 {
		s.SeriesBonus = 30
	}
	if s.RatingBaseMax == 0 {
		s.RatingBaseMax = 15
	}
	if s.RatingCountMax == 0 {
		s.RatingCountMax = 15
	}
	if s.RatingCountHigh == 0 {
		s.RatingCountHigh = 5000
	}
	if s.RatingCountMedium == 0 {
		s.RatingCountMedium = 1000
	}
	if s.RatingCountLow == 0 {
		s.RatingCountLow = 100
	}
	if s.PopularityMegaThreshold == 0 {
		s.PopularityMegaThreshold = 50000
	}
	if s.PopularityHighThreshold == 0 {
		s.PopularityHighThreshold = 10000
	}
	if s.PopularityNicheCeiling == 0 {
		s.PopularityNicheCeiling = 50
	}
	if s.PopularityNicheFloor == 0 {
		s.PopularityNicheFloor = 10
	}
	if s.PopularityMegaFactor == 0 {
		s.PopularityMegaFactor = 0.92
	}
	if s.PopularityNicheFactor == 0 {
		s.PopularityNicheFactor = 1.08
	}
	if s.PopularityMicroFactor == 0 {
		s.PopularityMicroFactor = 1.05
	}
	if s.RecencyNearYears == 0 {
		s.RecencyNearYears = 5
	}
	if s.RecencyFarYears == 0 {
		s.RecencyFarYears = 10
	}
	if s.RecencyNearBonus == 0 {
		s.RecencyNearBonus = 5
	}
	if s.RecencyFarBonus == 0 {
		s.RecencyFarBonus = 3
	}
	if s.SparseContentThreshold == 0 {
		s.SparseContentThreshold = 30
	}
	if s.SparseCompensation == 0 {
		s.SparseCompensation = 25
	}
	if s.DescriptionCompareLength == 0 {
		s.DescriptionCompareLength = 500
	}
}

func applyDiversityDefaults(d *DiversityConfig) {
	if d.MaxPerAuthor == 0 {
		d.MaxPerAuthor = 2
	}
	if d.MaxPerDecade == 0 {
		d.MaxPerDecade = 3
	}
	if d.MaxPerSeries == 0 {
		d.MaxPerSeries = 2
	}
	if d.FinalLimit == 0 {
		d.FinalLimit = 4
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Providers.GoogleBooks.BaseURL == "" {
		return fmt.Errorf("providers.google_books.base_url is required")
	}
	if cfg.Providers.OpenLibrary.BaseURL == "" {
		return fmt.Errorf("providers.open_library.base_url is required")
	}
	if cfg.Diversity.FinalLimit <= 0 {
		return fmt.Errorf("diversity.final_limit must be positive")
	}
	if cfg.Pipeline.TargetLanguage == "" {
		return fmt.Errorf("pipeline.target_language is required")
	}
	if cfg.Scoring.SparseContentThreshold >
		cfg.Scoring.AuthorMatch+cfg.Scoring.CategoryMax+cfg.Scoring.SeriesBonus {
		return fmt.Errorf("scoring.sparse_content_threshold exceeds the maximum content match")
	}
	return nil
}

// Default returns a fully defaulted configuration without touching the
// filesystem. Used by tests.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
