// internal/provider/openlibrary/client.go

// Package openlibrary adapts the secondary search provider. Its search
// endpoint exposes a flat document schema without descriptions or ratings,
// so normalized candidates carry HasRichMetadata=false and rely on the
// scoring engine's sparse-metadata compensation.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"bookrec/internal/common/config"
	apperrors "bookrec/internal/common/errors"
	commonhttp "bookrec/internal/common/http"
	"bookrec/internal/common/logger"
	"bookrec/internal/models"
	"bookrec/internal/provider"
)

const SourceName = "openlibrary"

const coverURLFormat = "https://covers.openlibrary.org/b/id/%d-M.jpg"

type Adapter struct {
	client        *commonhttp.Client
	baseURL       string
	targetLang    string
	acceptedLangs map[string]bool
	logger        logger.Logger
}

func NewAdapter(cfg config.ProviderConfig, pipeline config.PipelineConfig, log logger.Logger) *Adapter {
	accepted := make(map[string]bool, len(pipeline.AcceptedLanguages))
	for _, lang := range pipeline.AcceptedLanguages {
		accepted[lang] = true
	}
	return &Adapter{
		client:        commonhttp.NewClient(cfg.TimeoutDuration(), cfg.RequestsPerSecond, cfg.UserAgent),
		baseURL:       cfg.BaseURL,
		targetLang:    pipeline.TargetLanguage,
		acceptedLangs: accepted,
		logger:        log.WithFields(map[string]interface{}{"source": SourceName}),
	}
}

func (a *Adapter) Name() string { return SourceName }

// SearchResponse matches search.json.
type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	Subjects         []string `json:"subject"`
	FirstPublishYear int      `json:"first_publish_year"`
	Languages        []string `json:"language"`
	CoverID          int      `json:"cover_i"`
}

func (a *Adapter) Search(ctx context.Context, q provider.Query) ([]byte, error) {
	params := url.Values{}
	params.Set("q", q.Terms)
	params.Set("limit", strconv.Itoa(q.MaxResults))
	if q.Language != "" {
		params.Set("language", q.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderUnavailableError(SourceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewProviderUnavailableError(SourceName,
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	return io.ReadAll(resp.Body)
}

func (a *Adapter) Normalize(payload []byte) []models.Candidate {
	var res SearchResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		a.logger.Warn("failed to decode payload", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	var candidates []models.Candidate
	for _, doc := range res.Docs {
		// Server-side language filtering is advisory only; re-check the
		// document's language list against the accepted set.
		if !a.languageAccepted(doc.Languages) {
			continue
		}
		if doc.Key == "" || doc.Title == "" {
			continue
		}

		var imageURL *string
		if doc.CoverID != 0 {
			u := fmt.Sprintf(coverURLFormat, doc.CoverID)
			imageURL = &u
		}

		year := ""
		if doc.FirstPublishYear != 0 {
			year = strconv.Itoa(doc.FirstPublishYear)
		}

		candidates = append(candidates, models.Candidate{
			ID:            doc.Key,
			Title:         doc.Title,
			Authors:       doc.AuthorNames,
			Categories:    doc.Subjects,
			PublishedYear: year,
			ImageURL:      imageURL,

			// This endpoint exposes neither descriptions nor ratings.
			Description:     "",
			AverageRating:   0,
			RatingsCount:    0,
			Language:        a.targetLang,
			HasRichMetadata: false,
		})
	}
	return candidates
}

func (a *Adapter) languageAccepted(langs []string) bool {
	for _, lang := range langs {
		if a.acceptedLangs[lang] {
			return true
		}
	}
	return false
}
