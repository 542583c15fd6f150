package repositories

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// QueryLogRepository persists resolved queries. Appends are best-effort:
// callers treat failures as non-fatal and never block presentation on them.
type QueryLogRepository interface {
	// Append inserts a log row and fills in its generated ID.
	Append(ctx context.Context, log *entities.QueryLog) error

	// ListRecent returns log rows for a user, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]entities.QueryLog, error)
}
