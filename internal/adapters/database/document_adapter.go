package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	"github.com/farmguru/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// DocumentAdapter implements DocumentRepository on Postgres full-text
// search. It is the retrieval fallback when the search engine is down.
type DocumentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDocumentAdapter creates a new document adapter
func NewDocumentAdapter(client *postgres.Client) repositories.DocumentRepository {
	return &DocumentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Search runs full-text search over title and content, best match first.
// ts_rank scores land in roughly the same [0,1] range the search engine
// produces, so callers can apply one similarity floor to both tiers.
func (a *DocumentAdapter) Search(ctx context.Context, searchQuery string, limit int) ([]entities.RetrievedDoc, error) {
	if limit <= 0 {
		limit = 5
	}

	rank := goqu.L(
		"ts_rank(to_tsvector('english', title || ' ' || content), plainto_tsquery('english', ?))",
		searchQuery,
	)

	query, args, err := a.db.Select(
		"id", "title", "content", "source_url", "category", "created_at",
		rank.As("similarity"),
	).From("docs").
		Where(goqu.L(
			"to_tsvector('english', title || ' ' || content) @@ plainto_tsquery('english', ?)",
			searchQuery,
		)).
		Order(goqu.I("similarity").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build document search", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search documents", err)
	}
	defer rows.Close()

	var docs []entities.RetrievedDoc
	for rows.Next() {
		var doc entities.RetrievedDoc
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&doc.SourceURL,
			&doc.Category,
			&doc.CreatedAt,
			&doc.Similarity,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan document", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate documents", err)
	}

	return docs, nil
}

// GetByIDs returns the documents with the given IDs.
func (a *DocumentAdapter) GetByIDs(ctx context.Context, ids []string) ([]entities.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := a.db.Select(
		"id", "title", "content", "source_url", "category", "created_at",
	).From("docs").
		Where(goqu.L("id = ANY(?)", pq.Array(ids))).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build document lookup", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get documents", err)
	}
	defer rows.Close()

	var docs []entities.Document
	for rows.Next() {
		var doc entities.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&doc.SourceURL,
			&doc.Category,
			&doc.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan document", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate documents", err)
	}

	return docs, nil
}

// Upsert inserts or updates a document, filling in a generated ID when empty.
func (a *DocumentAdapter) Upsert(ctx context.Context, doc *entities.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":         doc.ID,
		"title":      doc.Title,
		"content":    doc.Content,
		"source_url": doc.SourceURL,
		"category":   doc.Category,
		"created_at": doc.CreatedAt,
	}

	query, args, err := a.db.Insert("docs").Rows(record).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"title":      doc.Title,
			"content":    doc.Content,
			"source_url": doc.SourceURL,
			"category":   doc.Category,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build document upsert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert document", err)
	}

	return nil
}
