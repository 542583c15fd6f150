package handlers

import (
	"context"
	"net/http"

	"github.com/farmguru/backend/internal/domain/entities"
)

// MarketService is the price report surface the handler needs.
type MarketService interface {
	GetReport(ctx context.Context, commodity, mandi string) (*entities.MarketReport, error)
}

// MarketHandler handles mandi price requests.
type MarketHandler struct {
	service MarketService
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(service MarketService) *MarketHandler {
	return &MarketHandler{service: service}
}

// GetMarket handles GET /api/market
func (h *MarketHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	commodity := r.URL.Query().Get("commodity")
	mandi := r.URL.Query().Get("mandi")
	if commodity == "" || mandi == "" {
		respondWithError(w, http.StatusBadRequest, "commodity and mandi are required")
		return
	}

	report, err := h.service.GetReport(r.Context(), commodity, mandi)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
