// internal/provider/googlebooks/client_test.go
package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookrec/internal/common/config"
	"bookrec/internal/common/logger"
	"bookrec/internal/provider"
)

const volumesFixture = `{
	"totalItems": 2,
	"items": [
		{
			"id": "vol-1",
			"volumeInfo": {
				"title": "El Imperio Final",
				"authors": ["Brandon Sanderson"],
				"categories": ["Fiction / Fantasy"],
				"description": "Una historia de alomancia",
				"language": "es",
				"averageRating": 4.5,
				"ratingsCount": 1200,
				"publishedDate": "2006-07-17",
				"imageLinks": {"thumbnail": "http://example.com/cover.jpg"}
			}
		},
		{
			"id": "",
			"volumeInfo": {"title": "Sin Identificador"}
		}
	]
}`

func testAdapter(t *testing.T, baseURL string) *Adapter {
	cfg := config.Default().Providers.GoogleBooks
	cfg.BaseURL = baseURL
	cfg.RequestsPerSecond = 100
	return NewAdapter(cfg, logger.NewTestLogger(t))
}

func TestAdapter_Search_BuildsQuery(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":            r.URL.Query().Get("q"),
			"maxResults":   r.URL.Query().Get("maxResults"),
			"orderBy":      r.URL.Query().Get("orderBy"),
			"langRestrict": r.URL.Query().Get("langRestrict"),
		}
		w.Write([]byte(volumesFixture))
	}))
	defer server.Close()

	adapter := testAdapter(t, server.URL)
	payload, err := adapter.Search(context.Background(), provider.Query{
		Label:      "author",
		Terms:      `inauthor:"Brandon Sanderson"`,
		MaxResults: 8,
		OrderBy:    "relevance",
		Language:   "es",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payload)

	assert.Equal(t, `inauthor:"Brandon Sanderson"`, gotQuery["q"])
	assert.Equal(t, "8", gotQuery["maxResults"])
	assert.Equal(t, "relevance", gotQuery["orderBy"])
	assert.Equal(t, "es", gotQuery["langRestrict"])
}

func TestAdapter_Search_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := testAdapter(t, server.URL)
	_, err := adapter.Search(context.Background(), provider.Query{Terms: "x", MaxResults: 5})
	assert.Error(t, err)
}

func TestAdapter_Normalize(t *testing.T) {
	adapter := testAdapter(t, "http://unused")

	candidates := adapter.Normalize([]byte(volumesFixture))
	require.Len(t, candidates, 1) // the id-less record is dropped

	c := candidates[0]
	assert.Equal(t, "vol-1", c.ID)
	assert.Equal(t, "El Imperio Final", c.Title)
	assert.Equal(t, []string{"Brandon Sanderson"}, c.Authors)
	assert.Equal(t, "es", c.Language)
	assert.Equal(t, 4.5, c.AverageRating)
	assert.Equal(t, 1200, c.RatingsCount)
	assert.Equal(t, "2006-07-17", c.PublishedYear)
	require.NotNil(t, c.ImageURL)
	assert.Equal(t, "http://example.com/cover.jpg", *c.ImageURL)
	assert.True(t, c.HasRichMetadata)
}

func TestAdapter_Normalize_MalformedPayload(t *testing.T) {
	adapter := testAdapter(t, "http://unused")
	assert.Nil(t, adapter.Normalize([]byte("not json")))
}

func TestToCandidate_SparseMetadataFlag(t *testing.T) {
	item := Volume{ID: "v1"}
	item.VolumeInfo.Title = "Sin Metadatos"

	c, ok := ToCandidate(item)
	require.True(t, ok)
	assert.False(t, c.HasRichMetadata)
	assert.Nil(t, c.ImageURL)
}
