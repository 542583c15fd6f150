package repositories

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// ImageRepository stores crop image metadata.
type ImageRepository interface {
	Create(ctx context.Context, image *entities.CropImage) error
	GetByID(ctx context.Context, id string) (*entities.CropImage, error)
}
