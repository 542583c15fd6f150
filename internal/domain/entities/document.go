package entities

import "time"

// Document is one passage in the agricultural knowledge corpus.
type Document struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	SourceURL string    `json:"source_url" db:"source_url"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RetrievedDoc is a corpus document with its retrieval score.
type RetrievedDoc struct {
	Document
	Similarity float64 `json:"similarity"`
}

// Source converts a retrieved document into an answer citation.
// Snippets are truncated so responses stay compact.
func (d *RetrievedDoc) Source() Source {
	snippet := d.Content
	if len(snippet) > 150 {
		snippet = snippet[:150]
	}
	title := d.Title
	if title == "" {
		title = "Agricultural Guide"
	}
	url := d.SourceURL
	if url == "" {
		url = "#"
	}
	return Source{Title: title, URL: url, Snippet: snippet}
}
