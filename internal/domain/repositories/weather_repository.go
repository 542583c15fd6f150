package repositories

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// WeatherRepository stores cached district forecasts.
type WeatherRepository interface {
	// GetLatest returns the most recent forecast for a state and district.
	GetLatest(ctx context.Context, state, district string) (*entities.WeatherRecord, error)

	// Upsert stores a forecast, replacing any existing row for the same
	// state, district and forecast date.
	Upsert(ctx context.Context, record *entities.WeatherRecord) error
}
