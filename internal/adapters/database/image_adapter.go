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

// ImageAdapter implements ImageRepository on Postgres.
type ImageAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewImageAdapter creates a new image adapter
func NewImageAdapter(client *postgres.Client) repositories.ImageRepository {
	return &ImageAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *ImageAdapter) Create(ctx context.Context, image *entities.CropImage) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query, args, err := a.db.Insert("crop_images").Rows(goqu.Record{
		"id":           image.ID,
		"user_id":      sql.NullString{String: image.UserID, Valid: image.UserID != ""},
		"filename":     image.Filename,
		"storage_path": image.StoragePath,
		"label":        image.Label,
		"confidence":   image.Confidence,
		"created_at":   image.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build image insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create image", err)
	}

	return nil
}

func (a *ImageAdapter) GetByID(ctx context.Context, id string) (*entities.CropImage, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "filename", "storage_path", "label", "confidence", "created_at",
	).From("crop_images").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build image select", err)
	}

	var image entities.CropImage
	var user sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&image.ID,
		&user,
		&image.Filename,
		&image.StoragePath,
		&image.Label,
		&image.Confidence,
		&image.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("image not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get image", err)
	}

	image.UserID = user.String
	return &image, nil
}
