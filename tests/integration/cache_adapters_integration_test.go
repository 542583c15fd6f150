//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmguru/backend/internal/adapters/database"
	"github.com/farmguru/backend/internal/domain/entities"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

func TestWeatherAdapterUpsertIntegration(t *testing.T) {
	if getEnv("TEST_DB_HOST", "") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST not set")
	}

	dbClient := newTestPostgresClient(t)
	defer dbClient.Close()

	db := dbClient.DB()
	applySchema(t, db)
	truncateTables(t, db, "weather_cache")

	repo := database.NewWeatherAdapter(dbClient)
	ctx := context.Background()

	forecastDate := time.Now().Truncate(24 * time.Hour)
	payload, err := json.Marshal(entities.Forecast{
		Location:            "Bangalore, Karnataka",
		Temperature:         entities.TemperatureRange{Min: 22, Max: 31},
		Humidity:            68,
		RainfallProbability: 20,
		WindSpeed:           12,
		Conditions:          "Partly cloudy",
	})
	require.NoError(t, err)

	record := &entities.WeatherRecord{
		State:        "Karnataka",
		District:     "Bangalore",
		ForecastDate: forecastDate,
		Payload:      payload,
	}
	require.NoError(t, repo.Upsert(ctx, record))
	assert.NotEmpty(t, record.ID, "Upsert should fill in the generated id")

	// Same state, district and date replaces the payload instead of
	// inserting a second row.
	updated, err := json.Marshal(entities.Forecast{
		Location:            "Bangalore, Karnataka",
		Temperature:         entities.TemperatureRange{Min: 21, Max: 29},
		Humidity:            85,
		RainfallProbability: 80,
		WindSpeed:           18,
		Conditions:          "Heavy rain",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, &entities.WeatherRecord{
		State:        "Karnataka",
		District:     "Bangalore",
		ForecastDate: forecastDate,
		Payload:      updated,
	}))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM weather_cache").Scan(&count))
	assert.Equal(t, 1, count)

	latest, err := repo.GetLatest(ctx, "Karnataka", "Bangalore")
	require.NoError(t, err)

	var forecast entities.Forecast
	require.NoError(t, json.Unmarshal(latest.Payload, &forecast))
	assert.Equal(t, 80, forecast.RainfallProbability)
	assert.Equal(t, "Heavy rain", forecast.Conditions)

	truncateTables(t, db, "weather_cache")
}

func TestWeatherAdapterGetLatestMissingIntegration(t *testing.T) {
	if getEnv("TEST_DB_HOST", "") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST not set")
	}

	dbClient := newTestPostgresClient(t)
	defer dbClient.Close()

	db := dbClient.DB()
	applySchema(t, db)
	truncateTables(t, db, "weather_cache")

	repo := database.NewWeatherAdapter(dbClient)

	_, err := repo.GetLatest(context.Background(), "Karnataka", "Nowhere")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestMarketAdapterListSinceIntegration(t *testing.T) {
	if getEnv("TEST_DB_HOST", "") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST not set")
	}

	dbClient := newTestPostgresClient(t)
	defer dbClient.Close()

	db := dbClient.DB()
	applySchema(t, db)
	truncateTables(t, db, "market_prices")

	repo := database.NewMarketAdapter(dbClient)
	ctx := context.Background()

	today := time.Now().Truncate(24 * time.Hour)
	prices := []float64{2400, 2450, 2500, 2600}
	for i, price := range prices {
		require.NoError(t, repo.Upsert(ctx, &entities.MarketPrice{
			Commodity:  "tomato",
			Mandi:      "Bangalore",
			Date:       today.AddDate(0, 0, i-len(prices)+1),
			ModalPrice: price,
		}))
	}

	// A second upsert for the same day overwrites the price.
	require.NoError(t, repo.Upsert(ctx, &entities.MarketPrice{
		Commodity:  "tomato",
		Mandi:      "Bangalore",
		Date:       today,
		ModalPrice: 2650,
	}))

	since := today.AddDate(0, 0, -2)
	listed, err := repo.ListSince(ctx, "tomato", "Bangalore", since)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Newest first.
	assert.InDelta(t, 2650, listed[0].ModalPrice, 0.001)
	assert.InDelta(t, 2500, listed[2].ModalPrice, 0.001)

	latest, err := repo.GetLatest(ctx, "tomato", "Bangalore")
	require.NoError(t, err)
	assert.InDelta(t, 2650, latest.ModalPrice, 0.001)

	truncateTables(t, db, "market_prices")
}
