package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// WeatherService serves district forecasts from the cache table with a
// static fallback, plus rule-based crop recommendations.
type WeatherService struct {
	repo repositories.WeatherRepository
}

// NewWeatherService creates a new weather service
func NewWeatherService(repo repositories.WeatherRepository) *WeatherService {
	return &WeatherService{repo: repo}
}

// GetForecast returns the forecast for a district. When nothing is cached
// or the cache is unreadable it degrades to a static seasonal forecast
// rather than failing the request.
func (s *WeatherService) GetForecast(ctx context.Context, state, district string) (*entities.WeatherReport, error) {
	if state == "" || district == "" {
		return nil, apperrors.NewValidationError("state and district are required")
	}

	record, err := s.repo.GetLatest(ctx, state, district)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			log.Warn().Err(err).Str("district", district).Msg("weather lookup failed, using fallback")
		}
		return fallbackWeather(state, district), nil
	}

	var forecast entities.Forecast
	if err := json.Unmarshal(record.Payload, &forecast); err != nil {
		log.Warn().Err(err).Str("district", district).Msg("cached forecast unreadable, using fallback")
		return fallbackWeather(state, district), nil
	}

	return &entities.WeatherReport{
		Forecast:       forecast,
		LastUpdated:    record.CreatedAt,
		Recommendation: weatherRecommendation(forecast),
	}, nil
}

// StoreForecast caches a forecast payload for a district.
func (s *WeatherService) StoreForecast(ctx context.Context, state, district string, forecastDate time.Time, forecast *entities.Forecast) error {
	payload, err := json.Marshal(forecast)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal forecast", err)
	}

	return s.repo.Upsert(ctx, &entities.WeatherRecord{
		State:        state,
		District:     district,
		ForecastDate: forecastDate,
		Payload:      payload,
	})
}

// weatherRecommendation derives crop guidance from forecast conditions.
func weatherRecommendation(f entities.Forecast) string {
	var recommendations []string

	if f.Temperature.Max > 30 {
		recommendations = append(recommendations, "High temperature expected - water crops early morning")
	} else if f.Temperature.Max < 15 {
		recommendations = append(recommendations, "Cool weather - protect sensitive crops from cold")
	}

	if f.RainfallProbability > 70 {
		recommendations = append(recommendations, "High chance of rain - delay irrigation and fertilizer application")
	} else if f.RainfallProbability < 20 && f.Humidity < 40 {
		recommendations = append(recommendations, "Dry conditions expected - ensure adequate irrigation")
	}

	if f.Humidity > 80 {
		recommendations = append(recommendations, "High humidity - monitor for fungal diseases")
	}

	if len(recommendations) == 0 {
		return "Monitor crop conditions and adjust management practices accordingly."
	}
	return strings.Join(recommendations, ". ")
}

// fallbackWeather is the static forecast used when nothing is cached.
func fallbackWeather(state, district string) *entities.WeatherReport {
	return &entities.WeatherReport{
		Forecast: entities.Forecast{
			Location:            district + ", " + state,
			Temperature:         entities.TemperatureRange{Min: 18, Max: 28},
			Humidity:            65,
			RainfallProbability: 30,
			WindSpeed:           8,
			Conditions:          "Partly cloudy",
		},
		LastUpdated:    time.Now(),
		Recommendation: "Monitor soil moisture and consider light irrigation if no rain in 2-3 days.",
	}
}
