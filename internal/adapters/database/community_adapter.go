package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	"github.com/farmguru/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// CommunityAdapter implements CommunityRepository on Postgres. Listing
// joins users for author display info and only returns moderated posts.
type CommunityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCommunityAdapter creates a new community adapter
func NewCommunityAdapter(client *postgres.Client) repositories.CommunityRepository {
	return &CommunityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a post and fills in its generated ID and timestamp.
func (a *CommunityAdapter) Create(ctx context.Context, post *entities.CommunityPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query, args, err := a.db.Insert("community_posts").Rows(goqu.Record{
		"id":         post.ID,
		"user_id":    post.UserID,
		"title":      post.Title,
		"body":       post.Body,
		"tags":       pq.Array(post.Tags),
		"moderated":  post.Moderated,
		"created_at": post.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build post insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create post", err)
	}

	return nil
}

func (a *CommunityAdapter) selectPosts() *goqu.SelectDataset {
	return a.db.Select(
		goqu.I("p.id"), goqu.I("p.user_id"), goqu.I("p.title"), goqu.I("p.body"),
		goqu.I("p.tags"), goqu.I("p.moderated"), goqu.I("p.created_at"),
		goqu.COALESCE(goqu.I("u.name"), goqu.V("")).As("author_name"),
		goqu.COALESCE(goqu.I("u.state"), goqu.V("")).As("author_state"),
		goqu.COALESCE(goqu.I("u.village"), goqu.V("")).As("author_village"),
	).From(goqu.T("community_posts").As("p")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("p.user_id").Eq(goqu.I("u.id"))))
}

func scanPost(rows interface {
	Scan(dest ...interface{}) error
}) (*entities.CommunityPost, error) {
	var post entities.CommunityPost
	if err := rows.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Body,
		pq.Array(&post.Tags),
		&post.Moderated,
		&post.CreatedAt,
		&post.Author.Name,
		&post.Author.State,
		&post.Author.Village,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns moderated posts newest first, optionally filtered by tag overlap.
func (a *CommunityAdapter) List(ctx context.Context, filter repositories.PostFilter) ([]entities.CommunityPost, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	dataset := a.selectPosts().Where(goqu.I("p.moderated").IsTrue())
	if len(filter.Tags) > 0 {
		dataset = dataset.Where(goqu.L("p.tags && ?", pq.Array(filter.Tags)))
	}

	query, args, err := dataset.
		Order(goqu.I("p.created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(filter.Offset)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build post list", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list posts", err)
	}
	defer rows.Close()

	var posts []entities.CommunityPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan post", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate posts", err)
	}

	return posts, nil
}

// GetByID returns a moderated post with author info, or a not-found error.
func (a *CommunityAdapter) GetByID(ctx context.Context, id string) (*entities.CommunityPost, error) {
	query, args, err := a.selectPosts().
		Where(goqu.I("p.id").Eq(id), goqu.I("p.moderated").IsTrue()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build post select", err)
	}

	post, err := scanPost(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("post not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get post", err)
	}

	return post, nil
}

// GetOwner returns the author user ID of a post regardless of moderation state.
func (a *CommunityAdapter) GetOwner(ctx context.Context, id string) (string, error) {
	query, args, err := a.db.Select("user_id").
		From("community_posts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return "", apperrors.NewInternalError("failed to build post owner select", err)
	}

	var userID string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.NewNotFoundError("post not found")
	}
	if err != nil {
		return "", apperrors.NewInternalError("failed to get post owner", err)
	}

	return userID, nil
}

// Update replaces title, body, tags and moderation state of a post owned
// by the given user.
func (a *CommunityAdapter) Update(ctx context.Context, post *entities.CommunityPost) error {
	query, args, err := a.db.Update("community_posts").Set(goqu.Record{
		"title":     post.Title,
		"body":      post.Body,
		"tags":      pq.Array(post.Tags),
		"moderated": post.Moderated,
	}).Where(goqu.Ex{"id": post.ID, "user_id": post.UserID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build post update", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update post", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperrors.NewNotFoundError("post not found")
	}

	return nil
}

// Delete removes a post owned by the given user.
func (a *CommunityAdapter) Delete(ctx context.Context, id, userID string) error {
	query, args, err := a.db.Delete("community_posts").
		Where(goqu.Ex{"id": id, "user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build post delete", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete post", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperrors.NewNotFoundError("post not found")
	}

	return nil
}

// PopularTags returns the most used tags across moderated posts.
func (a *CommunityAdapter) PopularTags(ctx context.Context, limit int) ([]entities.TagCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query, args, err := a.db.Select(
		goqu.L("unnest(tags)").As("tag"),
		goqu.COUNT(goqu.Star()).As("count"),
	).From("community_posts").
		Where(goqu.I("moderated").IsTrue()).
		GroupBy(goqu.I("tag")).
		Order(goqu.I("count").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build tag select", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list tags", err)
	}
	defer rows.Close()

	var tags []entities.TagCount
	for rows.Next() {
		var tc entities.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan tag", err)
		}
		tags = append(tags, tc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate tags", err)
	}

	return tags, nil
}
