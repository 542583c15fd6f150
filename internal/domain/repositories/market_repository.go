package repositories

import (
	"context"
	"time"

	"github.com/farmguru/backend/internal/domain/entities"
)

// MarketRepository stores mandi price observations.
type MarketRepository interface {
	// GetLatest returns the most recent price for a commodity at a mandi.
	GetLatest(ctx context.Context, commodity, mandi string) (*entities.MarketPrice, error)

	// ListSince returns prices on or after the given date, newest first.
	ListSince(ctx context.Context, commodity, mandi string, since time.Time) ([]entities.MarketPrice, error)

	// Upsert stores a price, replacing any existing row for the same
	// commodity, mandi and date.
	Upsert(ctx context.Context, price *entities.MarketPrice) error
}
