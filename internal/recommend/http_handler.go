// internal/recommend/http_handler.go
package recommend

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "bookrec/internal/common/errors"
	"bookrec/internal/common/logger"
)

// Handler exposes the pipeline over HTTP.
type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

// Routes mounts the recommendation endpoints on a fresh chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/recommendations", h.GetRecommendations)
	return r
}

// GetRecommendations handles GET /recommendations?book=<query>.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("book"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, apperrors.NewInvalidQueryError())
		return
	}

	env, err := h.service.Recommend(r.Context(), query)
	if err != nil {
		switch {
		case apperrors.IsCode(err, apperrors.ErrCodeInvalidQuery):
			h.writeError(w, http.StatusBadRequest, err)
		case apperrors.IsCode(err, apperrors.ErrCodeMalformedSeed):
			h.writeError(w, http.StatusNotFound, err)
		default:
			h.logger.Error("pipeline run failed", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
			h.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, env)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: "INTERNAL_ERROR", Message: err.Error()}
	var stdErr *apperrors.StandardError
	if e, ok := err.(*apperrors.StandardError); ok {
		stdErr = e
	}
	if stdErr != nil {
		resp.Error = string(stdErr.Code)
		resp.Message = stdErr.Message
	}
	h.writeJSON(w, status, resp)
}
