package repositories

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// SchemeRepository stores government schemes and their applicability rules.
type SchemeRepository interface {
	// FindApplicable returns schemes whose state and crop lists contain the
	// given values or the 'ALL' wildcard, ordered by name.
	FindApplicable(ctx context.Context, state, crop string) ([]entities.Scheme, error)

	// Upsert stores a scheme keyed by its code.
	Upsert(ctx context.Context, scheme *entities.Scheme) error
}
