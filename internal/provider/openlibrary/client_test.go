// internal/provider/openlibrary/client_test.go
package openlibrary

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

const searchFixture = `{
	"numFound": 3,
	"docs": [
		{
			"key": "/works/OL1W",
			"title": "La Sombra del Viento",
			"author_name": ["Carlos Ruiz Zafon"],
			"subject": ["Fiction", "Mystery"],
			"first_publish_year": 2001,
			"language": ["spa", "eng"],
			"cover_i": 12345
		},
		{
			"key": "/works/OL2W",
			"title": "English Only",
			"author_name": ["Someone"],
			"language": ["eng"]
		},
		{
			"key": "",
			"title": "Sin Clave",
			"language": ["spa"]
		}
	]
}`

func testAdapter(t *testing.T, baseURL string) *Adapter {
	cfg := config.Default()
	providerCfg := cfg.Providers.OpenLibrary
	providerCfg.BaseURL = baseURL
	providerCfg.RequestsPerSecond = 100
	return NewAdapter(providerCfg, cfg.Pipeline, logger.NewTestLogger(t))
}

func TestAdapter_Search_BuildsQuery(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"q":        r.URL.Query().Get("q"),
			"limit":    r.URL.Query().Get("limit"),
			"language": r.URL.Query().Get("language"),
		}
		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	adapter := testAdapter(t, server.URL)
	_, err := adapter.Search(context.Background(), provider.Query{
		Label:      "secondary",
		Terms:      `author:"Carlos Ruiz Zafon"`,
		MaxResults: 25,
		Language:   "spa",
	})
	require.NoError(t, err)

	assert.Equal(t, "/search.json", gotPath)
	assert.Equal(t, `author:"Carlos Ruiz Zafon"`, gotQuery["q"])
	assert.Equal(t, "25", gotQuery["limit"])
	assert.Equal(t, "spa", gotQuery["language"])
}

func TestAdapter_Normalize(t *testing.T) {
	adapter := testAdapter(t, "http://unused")

	candidates := adapter.Normalize([]byte(searchFixture))

	// The English-only doc and the key-less doc are both dropped.
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "/works/OL1W", c.ID)
	assert.Equal(t, "La Sombra del Viento", c.Title)
	assert.Equal(t, []string{"Carlos Ruiz Zafon"}, c.Authors)
	assert.Equal(t, "2001", c.PublishedYear)
	require.NotNil(t, c.ImageURL)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/12345-M.jpg", *c.ImageURL)

	// Documents are folded into the target language and flagged sparse: this
	// endpoint never carries descriptions or ratings.
	assert.Equal(t, "es", c.Language)
	assert.False(t, c.HasRichMetadata)
	assert.Empty(t, c.Description)
	assert.Zero(t, c.RatingsCount)
}

func TestAdapter_Normalize_MalformedPayload(t *testing.T) {
	adapter := testAdapter(t, "http://unused")
	assert.Nil(t, adapter.Normalize([]byte("<html>")))
}
