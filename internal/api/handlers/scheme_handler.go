package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/farmguru/backend/internal/domain/entities"
)

// SchemeService is the matching surface the handler needs.
type SchemeService interface {
	Match(ctx context.Context, userID, state, crop string) (*entities.SchemeMatchResult, error)
}

// SchemeHandler handles government scheme matching.
type SchemeHandler struct {
	service SchemeService
}

// NewSchemeHandler creates a new scheme handler
func NewSchemeHandler(service SchemeService) *SchemeHandler {
	return &SchemeHandler{service: service}
}

type schemeMatchRequest struct {
	UserID string `json:"user_id"`
	State  string `json:"state"`
	Crop   string `json:"crop"`
}

// MatchSchemes handles POST /api/schemes/match
func (h *SchemeHandler) MatchSchemes(w http.ResponseWriter, r *http.Request) {
	var payload schemeMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Match(r.Context(), payload.UserID, payload.State, payload.Crop)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
