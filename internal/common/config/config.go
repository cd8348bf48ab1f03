// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Diversity DiversityConfig `mapstructure:"diversity"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// --- Provider Config ---

type ProvidersConfig struct {
	GoogleBooks ProviderConfig `mapstructure:"google_books"`
	OpenLibrary ProviderConfig `mapstructure:"open_library"`
}

type ProviderConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	Timeout           int    `mapstructure:"timeout"` // seconds
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
	UserAgent         string `mapstructure:"user_agent"`
}

func (p ProviderConfig) TimeoutDuration() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

// --- Cache Config ---

// CacheConfig maps data-kind tags to TTLs. The pipeline picks a TTL by tag,
// never by hard constant.
type CacheConfig struct {
	TTL map[string]int `mapstructure:"ttl"` // seconds per data-kind tag
}

// TTLFor returns the configured TTL for a data-kind tag, falling back to the
// "default" entry.
func (c CacheConfig) TTLFor(kind string) time.Duration {
	if secs, ok := c.TTL[kind]; ok {
		return time.Duration(secs) * time.Second
	}
	if secs, ok := c.TTL["default"]; ok {
		return time.Duration(secs) * time.Second
	}
	return time.Hour
}

// --- Pipeline Config ---

type PipelineConfig struct {
	TargetLanguage    string   `mapstructure:"target_language"`
	AcceptedLanguages []string `mapstructure:"accepted_languages"`

	InitialResults    int `mapstructure:"initial_results"`
	AuthorResults     int `mapstructure:"author_results"`
	CategoryResults   int `mapstructure:"category_results"`
	KeywordResults    int `mapstructure:"keyword_results"`
	SeriesResults     int `mapstructure:"series_results"`
	SecondaryResults  int `mapstructure:"secondary_results"`
	TopicResults      int `mapstructure:"topic_results"`
	FallbackResults   int `mapstructure:"fallback_results"`
	MaxCategories     int `mapstructure:"max_categories"`
	MaxKeywordQueries int `mapstructure:"max_keyword_queries"`
	MaxKeywords       int `mapstructure:"max_keywords"`

	// FallbackThreshold is the pool size below which the fallback generator
	// runs. Observed on the raw pool, before scoring.
	FallbackThreshold int `mapstructure:"fallback_threshold"`

	// MinQueryEcho is the minimum folded-query length for the near-duplicate
	// title exclusion to apply.
	MinQueryEcho int `mapstructure:"min_query_echo"`

	DescriptionDisplayLength int    `mapstructure:"description_display_length"`
	UnknownAuthorLabel       string `mapstructure:"unknown_author_label"`
	EmptyDescriptionLabel    string `mapstructure:"empty_description_label"`
}

// --- Scoring Config ---

// ScoringConfig holds every weight of the scoring engine. Each is
// independently tunable; defaults come from applyDefaults.
type ScoringConfig struct {
	AuthorMatch   float64 `mapstructure:"author_match"`
	CategoryMax   float64 `mapstructure:"category_max"`
	CategoryStep  float64 `mapstructure:"category_step"`
	SimilarityMax float64 `mapstructure:"similarity_max"`
	SeriesBonus   float64 `mapstructure:"series_bonus"`
	RatingBaseMax float64 `mapstructure:"rating_base_max"`
	RatingCountMax float64 `mapstructure:"rating_count_max"`

	RatingCountHigh   int `mapstructure:"rating_count_high"`
	RatingCountMedium int `mapstructure:"rating_count_medium"`
	RatingCountLow    int `mapstructure:"rating_count_low"`

	// Popularity adjustment bands for the combined rating component.
	PopularityMegaThreshold int     `mapstructure:"popularity_mega_threshold"`
	PopularityHighThreshold int     `mapstructure:"popularity_high_threshold"`
	PopularityNicheCeiling  int     `mapstructure:"popularity_niche_ceiling"`
	PopularityNicheFloor    int     `mapstructure:"popularity_niche_floor"`
	PopularityMegaFactor    float64 `mapstructure:"popularity_mega_factor"`
	PopularityNicheFactor   float64 `mapstructure:"popularity_niche_factor"`
	PopularityMicroFactor   float64 `mapstructure:"popularity_micro_factor"`

	RecencyNearYears  int     `mapstructure:"recency_near_years"`
	RecencyFarYears   int     `mapstructure:"recency_far_years"`
	RecencyNearBonus  float64 `mapstructure:"recency_near_bonus"`
	RecencyFarBonus   float64 `mapstructure:"recency_far_bonus"`

	// Sparse-metadata compensation for rating/description-less sources.
	SparseContentThreshold float64 `mapstructure:"sparse_content_threshold"`
	SparseCompensation     float64 `mapstructure:"sparse_compensation"`

	DescriptionCompareLength int `mapstructure:"description_compare_length"`
}

// --- Diversity Config ---

type DiversityConfig struct {
	MaxPerAuthor int `mapstructure:"max_per_author"`
	MaxPerDecade int `mapstructure:"max_per_decade"`
	MaxPerSeries int `mapstructure:"max_per_series"`
	FinalLimit   int `mapstructure:"final_limit"`
}
