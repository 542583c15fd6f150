package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	tsclient "github.com/farmguru/backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements corpus retrieval using Typesense. It is the
// primary retrieval tier; Postgres full-text search backs it up.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements DocumentSearchRepository
var _ repositories.DocumentSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the docs collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index indexes a corpus document
func (a *TypesenseAdapter) Index(ctx context.Context, doc *entities.Document) error {
	document := map[string]interface{}{
		"id":         doc.ID,
		"title":      doc.Title,
		"content":    doc.Content,
		"source_url": doc.SourceURL,
		"category":   doc.Category,
	}

	_, err := a.client.Client().Collection(tsclient.DocsCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}

	return nil
}

// Search retrieves the best matching corpus documents for a question.
// Typesense text_match scores are normalized into [0,1] so callers can
// apply the same similarity floor as the full-text fallback.
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]entities.RetrievedDoc, error) {
	if limit <= 0 {
		limit = 5
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("title,content"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.DocsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	if result.Hits == nil {
		return nil, nil
	}

	var docs []entities.RetrievedDoc
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := docFromHit(*hit.Document)
		doc.Similarity = scoreFromHit(hit)
		docs = append(docs, doc)
	}

	return docs, nil
}

// docFromHit reconstructs a document from the Typesense hit payload.
func docFromHit(fields map[string]interface{}) entities.RetrievedDoc {
	var doc entities.RetrievedDoc
	if val, ok := fields["id"].(string); ok {
		doc.ID = val
	}
	if val, ok := fields["title"].(string); ok {
		doc.Title = val
	}
	if val, ok := fields["content"].(string); ok {
		doc.Content = val
	}
	if val, ok := fields["source_url"].(string); ok {
		doc.SourceURL = val
	}
	if val, ok := fields["category"].(string); ok {
		doc.Category = val
	}
	return doc
}

// scoreFromHit maps a raw text_match score onto [0,1]. Typesense scores
// are large integers where higher is better; the divisor keeps strong
// matches near 1.0 without letting any hit exceed it.
func scoreFromHit(hit api.SearchResultHit) float64 {
	if hit.TextMatch == nil {
		return 0
	}
	score := float64(*hit.TextMatch) / float64(1<<57)
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}
