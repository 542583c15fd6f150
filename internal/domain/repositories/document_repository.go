package repositories

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// DocumentRepository stores the agricultural knowledge corpus in Postgres.
type DocumentRepository interface {
	// Search runs full-text search over title and content, best match first.
	Search(ctx context.Context, query string, limit int) ([]entities.RetrievedDoc, error)

	// GetByIDs returns the documents with the given IDs.
	GetByIDs(ctx context.Context, ids []string) ([]entities.Document, error)

	// Upsert inserts or updates a document, filling in a generated ID when empty.
	Upsert(ctx context.Context, doc *entities.Document) error
}

// DocumentSearchRepository retrieves corpus documents from the search engine.
// It is the primary retrieval tier; DocumentRepository.Search is the fallback.
type DocumentSearchRepository interface {
	Search(ctx context.Context, query string, limit int) ([]entities.RetrievedDoc, error)
	Index(ctx context.Context, doc *entities.Document) error
}
