// internal/recommend/http_handler_test.go
package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookrec/internal/common/logger"
)

func setupHandler(t *testing.T, primary *fakeBooksSource) http.Handler {
	service := setupService(t, primary)
	return NewHandler(service, logger.NewTestLogger(t)).Routes()
}

func TestHandler_GetRecommendations_OK(t *testing.T) {
	router := setupHandler(t, &fakeBooksSource{
		name: "googlebooks",
		payloads: map[string]string{
			"initial": initialPayload,
			"*":       poolPayload,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/recommendations?book=Mistborn+Book+1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Because you read 'Mistborn, Book 1' by Brandon Sanderson", env.BasedOn)
	assert.NotEmpty(t, env.Recommendations)
}

func TestHandler_GetRecommendations_MissingQuery(t *testing.T) {
	router := setupHandler(t, &fakeBooksSource{name: "googlebooks"})

	for _, target := range []string{"/recommendations", "/recommendations?book=", "/recommendations?book=+++"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_QUERY", body.Error)
	}
}

func TestHandler_GetRecommendations_SeedNotFound(t *testing.T) {
	router := setupHandler(t, &fakeBooksSource{name: "googlebooks"})

	req := httptest.NewRequest(http.MethodGet, "/recommendations?book=zxqj", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MALFORMED_SEED", body.Error)
}
