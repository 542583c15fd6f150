package repositories

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// PostFilter narrows a community post listing.
type PostFilter struct {
	Tags   []string
	Limit  int
	Offset int
}

// CommunityRepository stores forum posts.
type CommunityRepository interface {
	// Create inserts a post and fills in its generated ID and timestamp.
	Create(ctx context.Context, post *entities.CommunityPost) error

	// List returns moderated posts newest first, optionally filtered by tag overlap.
	List(ctx context.Context, filter PostFilter) ([]entities.CommunityPost, error)

	// GetByID returns a moderated post with author info, or a not-found error.
	GetByID(ctx context.Context, id string) (*entities.CommunityPost, error)

	// GetOwner returns the author user ID of a post regardless of moderation state.
	GetOwner(ctx context.Context, id string) (string, error)

	// Update replaces title, body, tags and moderation state of a post owned
	// by the given user.
	Update(ctx context.Context, post *entities.CommunityPost) error

	// Delete removes a post owned by the given user. Returns a not-found
	// error when nothing was deleted.
	Delete(ctx context.Context, id, userID string) error

	// PopularTags returns the most used tags across moderated posts.
	PopularTags(ctx context.Context, limit int) ([]entities.TagCount, error)
}
