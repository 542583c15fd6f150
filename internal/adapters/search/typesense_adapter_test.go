package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/typesense/typesense-go/v2/typesense/api"
)

func TestDocFromHit(t *testing.T) {
	doc := docFromHit(map[string]interface{}{
		"id":         "doc-1",
		"title":      "Aphid control in cotton",
		"content":    "Spray neem oil in the evening.",
		"source_url": "https://example.org/aphids",
		"category":   "pest",
	})

	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "Aphid control in cotton", doc.Title)
	assert.Equal(t, "Spray neem oil in the evening.", doc.Content)
	assert.Equal(t, "https://example.org/aphids", doc.SourceURL)
	assert.Equal(t, "pest", doc.Category)
}

func TestDocFromHitMissingFields(t *testing.T) {
	doc := docFromHit(map[string]interface{}{"id": "doc-2"})

	assert.Equal(t, "doc-2", doc.ID)
	assert.Empty(t, doc.Title)
	assert.Empty(t, doc.Content)
}

func TestScoreFromHit(t *testing.T) {
	assert.Equal(t, 0.0, scoreFromHit(api.SearchResultHit{}))

	high := int64(1) << 57
	score := scoreFromHit(api.SearchResultHit{TextMatch: &high})
	assert.Equal(t, 1.0, score)

	half := int64(1) << 56
	score = scoreFromHit(api.SearchResultHit{TextMatch: &half})
	assert.Equal(t, 0.5, score)

	huge := int64(1) << 60
	score = scoreFromHit(api.SearchResultHit{TextMatch: &huge})
	assert.Equal(t, 1.0, score)
}
