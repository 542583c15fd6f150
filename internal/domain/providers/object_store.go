package providers

import "context"

// ObjectStore persists uploaded binary assets and returns a public URL.
type ObjectStore interface {
	// Save writes the blob at the given path (relative, slash-separated)
	// and returns the public URL it is served from.
	Save(ctx context.Context, path string, data []byte) (string, error)
}
