package repositories

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// UserRepository stores farmer profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}
