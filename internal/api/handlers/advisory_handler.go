package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/farmguru/backend/internal/domain/entities"
)

// AdvisoryService is the recommendation surface the handler needs.
type AdvisoryService interface {
	Recommend(ctx context.Context, req *entities.AdvisoryRequest) (*entities.Advisory, error)
}

// AdvisoryHandler handles treatment recommendation requests.
type AdvisoryHandler struct {
	service AdvisoryService
}

// NewAdvisoryHandler creates a new advisory handler
func NewAdvisoryHandler(service AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{service: service}
}

// GetRecommendation handles POST /api/advisory
func (h *AdvisoryHandler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	var payload entities.AdvisoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	advisory, err := h.service.Recommend(r.Context(), &payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, advisory)
}
