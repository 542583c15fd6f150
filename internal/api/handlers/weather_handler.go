package handlers

import (
	"context"
	"net/http"

	"github.com/farmguru/backend/internal/domain/entities"
)

// WeatherService is the forecast surface the handler needs.
type WeatherService interface {
	GetForecast(ctx context.Context, state, district string) (*entities.WeatherReport, error)
}

// WeatherHandler handles weather forecast requests.
type WeatherHandler struct {
	service WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(service WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetWeather handles GET /api/weather
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	district := r.URL.Query().Get("district")
	if state == "" || district == "" {
		respondWithError(w, http.StatusBadRequest, "state and district are required")
		return
	}

	report, err := h.service.GetForecast(r.Context(), state, district)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
