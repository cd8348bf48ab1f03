// internal/provider/googlebooks/client.go

// Package googlebooks adapts the primary search provider. Its volumes API
// returns items with nested volume metadata; normalization flattens that into
// the canonical candidate shape.
package googlebooks

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

const SourceName = "googlebooks"

type Adapter struct {
	client  *commonhttp.Client
	baseURL string
	logger  logger.Logger
}

func NewAdapter(cfg config.ProviderConfig, log logger.Logger) *Adapter {
	return &Adapter{
		client:  commonhttp.NewClient(cfg.TimeoutDuration(), cfg.RequestsPerSecond, cfg.UserAgent),
		baseURL: cfg.BaseURL,
		logger:  log.WithFields(map[string]interface{}{"source": SourceName}),
	}
}

func (a *Adapter) Name() string { return SourceName }

// SearchResponse matches the volumes endpoint.
type SearchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Categories    []string `json:"categories"`
	Description   string   `json:"description"`
	Language      string   `json:"language"`
	AverageRating float64  `json:"averageRating"`
	RatingsCount  int      `json:"ratingsCount"`
	PublishedDate string   `json:"publishedDate"`
	ImageLinks    struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

func (a *Adapter) Search(ctx context.Context, q provider.Query) ([]byte, error) {
	params := url.Values{}
	params.Set("q", q.Terms)
	params.Set("maxResults", strconv.Itoa(q.MaxResults))
	if q.OrderBy != "" {
		params.Set("orderBy", q.OrderBy)
	}
	if q.Language != "" {
		params.Set("langRestrict", q.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"?"+params.Encode(), nil)
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

// Decode parses a raw payload into the typed response. Exposed so the seed
// selection step can inspect items directly.
func Decode(payload []byte) (*SearchResponse, error) {
	var res SearchResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &res, nil
}

func (a *Adapter) Normalize(payload []byte) []models.Candidate {
	res, err := Decode(payload)
	if err != nil {
		a.logger.Warn("failed to decode payload", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	candidates := make([]models.Candidate, 0, len(res.Items))
	for _, item := range res.Items {
		c, ok := ToCandidate(item)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// ToCandidate maps one volume into the canonical candidate shape. ok=false
// when the record lacks a title or identifier.
func ToCandidate(item Volume) (models.Candidate, bool) {
	info := item.VolumeInfo
	if item.ID == "" || info.Title == "" {
		return models.Candidate{}, false
	}

	var imageURL *string
	if info.ImageLinks.Thumbnail != "" {
		u := info.ImageLinks.Thumbnail
		imageURL = &u
	}

	return models.Candidate{
		ID:            item.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		Categories:    info.Categories,
		Description:   info.Description,
		Language:      info.Language,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
		PublishedYear: info.PublishedDate,
		ImageURL:      imageURL,

		// Items carrying neither description nor ratings score like
		// secondary-source records and get the sparse compensation.
		HasRichMetadata: info.Description != "" || info.RatingsCount > 0,
	}, true
}
