package services

import (
	"context"
	"strings"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// moderationKeywords flag posts for manual review. A post tripping two or
// more of these stays hidden until reviewed.
var moderationKeywords = []string{
	"spam", "scam", "fraud", "fake", "cheat",
	"sell", "buy", "money", "cash", "loan",
}

// CommunityService manages the farmer forum with keyword moderation.
type CommunityService struct {
	repo repositories.CommunityRepository
}

// NewCommunityService creates a new community service
func NewCommunityService(repo repositories.CommunityRepository) *CommunityService {
	return &CommunityService{repo: repo}
}

// CreatePost validates, moderates and stores a post. Posts that trip
// moderation are stored hidden and reported as pending review.
func (s *CommunityService) CreatePost(ctx context.Context, post *entities.CommunityPost) error {
	if post.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Body) == "" {
		return apperrors.NewValidationError("title and body are required")
	}

	post.Moderated = !NeedsModeration(post.Title, post.Body)
	return s.repo.Create(ctx, post)
}

// ListPosts returns visible posts, optionally filtered by tags.
func (s *CommunityService) ListPosts(ctx context.Context, filter repositories.PostFilter) ([]entities.CommunityPost, error) {
	return s.repo.List(ctx, filter)
}

// GetPost returns one visible post.
func (s *CommunityService) GetPost(ctx context.Context, id string) (*entities.CommunityPost, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("post id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// UpdatePost edits a post owned by the caller. Edited content passes
// through moderation again.
func (s *CommunityService) UpdatePost(ctx context.Context, post *entities.CommunityPost) error {
	if post.ID == "" || post.UserID == "" {
		return apperrors.NewValidationError("post id and user id are required")
	}
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Body) == "" {
		return apperrors.NewValidationError("title and body are required")
	}

	owner, err := s.repo.GetOwner(ctx, post.ID)
	if err != nil {
		return err
	}
	if owner != post.UserID {
		return apperrors.NewUnauthorizedError("only the author can edit a post")
	}

	post.Moderated = !NeedsModeration(post.Title, post.Body)
	return s.repo.Update(ctx, post)
}

// DeletePost removes a post owned by the caller.
func (s *CommunityService) DeletePost(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return apperrors.NewValidationError("post id and user id are required")
	}

	owner, err := s.repo.GetOwner(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return apperrors.NewUnauthorizedError("only the author can delete a post")
	}

	return s.repo.Delete(ctx, id, userID)
}

// PopularTags returns the most used tags across visible posts.
func (s *CommunityService) PopularTags(ctx context.Context, limit int) ([]entities.TagCount, error) {
	return s.repo.PopularTags(ctx, limit)
}

// NeedsModeration reports whether post content requires manual review:
// two or more flagged keywords across title and body.
func NeedsModeration(title, body string) bool {
	content := strings.ToLower(title + " " + body)

	count := 0
	for _, keyword := range moderationKeywords {
		if strings.Contains(content, keyword) {
			count++
		}
	}

	return count >= 2
}
