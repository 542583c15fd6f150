package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	"github.com/farmguru/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// WeatherAdapter implements WeatherRepository on Postgres.
type WeatherAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewWeatherAdapter creates a new weather adapter
func NewWeatherAdapter(client *postgres.Client) repositories.WeatherRepository {
	return &WeatherAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetLatest returns the most recent forecast for a state and district.
func (a *WeatherAdapter) GetLatest(ctx context.Context, state, district string) (*entities.WeatherRecord, error) {
	query, args, err := a.db.Select(
		"id", "state", "district", "forecast_date", "json_payload", "created_at",
	).From("weather_cache").
		Where(goqu.Ex{"state": state, "district": district}).
		Order(goqu.I("forecast_date").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build weather select", err)
	}

	var record entities.WeatherRecord
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.State,
		&record.District,
		&record.ForecastDate,
		&record.Payload,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("no forecast cached for " + district + ", " + state)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get weather forecast", err)
	}

	return &record, nil
}

// Upsert stores a forecast, replacing any existing row for the same
// state, district and forecast date.
func (a *WeatherAdapter) Upsert(ctx context.Context, record *entities.WeatherRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query, args, err := a.db.Insert("weather_cache").Rows(goqu.Record{
		"id":            record.ID,
		"state":         record.State,
		"district":      record.District,
		"forecast_date": record.ForecastDate,
		"json_payload":  record.Payload,
		"created_at":    record.CreatedAt,
	}).OnConflict(goqu.DoUpdate("state, district, forecast_date", goqu.Record{
		"json_payload": record.Payload,
		"created_at":   record.CreatedAt,
	})).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build weather upsert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert weather forecast", err)
	}

	return nil
}
