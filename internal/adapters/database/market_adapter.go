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

// MarketAdapter implements MarketRepository on Postgres.
type MarketAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMarketAdapter creates a new market adapter
func NewMarketAdapter(client *postgres.Client) repositories.MarketRepository {
	return &MarketAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetLatest returns the most recent price for a commodity at a mandi.
func (a *MarketAdapter) GetLatest(ctx context.Context, commodity, mandi string) (*entities.MarketPrice, error) {
	query, args, err := a.db.Select(
		"id", "commodity", "mandi", "date", "modal_price",
	).From("market_prices").
		Where(goqu.Ex{"commodity": commodity, "mandi": mandi}).
		Order(goqu.I("date").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build market price select", err)
	}

	var price entities.MarketPrice
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&price.ID,
		&price.Commodity,
		&price.Mandi,
		&price.Date,
		&price.ModalPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("no price recorded for " + commodity + " at " + mandi)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get market price", err)
	}

	return &price, nil
}

// ListSince returns prices on or after the given date, newest first.
func (a *MarketAdapter) ListSince(ctx context.Context, commodity, mandi string, since time.Time) ([]entities.MarketPrice, error) {
	query, args, err := a.db.Select(
		"id", "commodity", "mandi", "date", "modal_price",
	).From("market_prices").
		Where(
			goqu.Ex{"commodity": commodity, "mandi": mandi},
			goqu.I("date").Gte(since),
		).
		Order(goqu.I("date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build market price list", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list market prices", err)
	}
	defer rows.Close()

	var prices []entities.MarketPrice
	for rows.Next() {
		var price entities.MarketPrice
		if err := rows.Scan(
			&price.ID,
			&price.Commodity,
			&price.Mandi,
			&price.Date,
			&price.ModalPrice,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan market price", err)
		}
		prices = append(prices, price)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate market prices", err)
	}

	return prices, nil
}

// Upsert stores a price, replacing any existing row for the same
// commodity, mandi and date.
func (a *MarketAdapter) Upsert(ctx context.Context, price *entities.MarketPrice) error {
	if price.ID == "" {
		price.ID = uuid.New().String()
	}

	query, args, err := a.db.Insert("market_prices").Rows(goqu.Record{
		"id":          price.ID,
		"commodity":   price.Commodity,
		"mandi":       price.Mandi,
		"date":        price.Date,
		"modal_price": price.ModalPrice,
	}).OnConflict(goqu.DoUpdate("commodity, mandi, date", goqu.Record{
		"modal_price": price.ModalPrice,
	})).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build market price upsert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert market price", err)
	}

	return nil
}
