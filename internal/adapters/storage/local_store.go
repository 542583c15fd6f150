package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/farmguru/backend/internal/domain/providers"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// LocalStore implements ObjectStore on the local filesystem. Uploads land
// under a base directory served as static files by the API.
type LocalStore struct {
	baseDir   string
	publicURL string
}

var _ providers.ObjectStore = (*LocalStore)(nil)

// NewLocalStore creates a local object store rooted at baseDir.
func NewLocalStore(baseDir, publicURL string) *LocalStore {
	return &LocalStore{
		baseDir:   baseDir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Save writes data under the given relative path and returns its public URL.
func (s *LocalStore) Save(ctx context.Context, path string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return "", apperrors.NewInternalError("failed to create upload directory", err)
	}

	if err := os.WriteFile(clean, data, 0o644); err != nil {
		return "", apperrors.NewInternalError("failed to write upload", err)
	}

	return s.publicURL + "/" + filepath.ToSlash(filepath.Clean(path)), nil
}

// resolve maps a relative object path onto the base directory, rejecting
// anything that would escape it.
func (s *LocalStore) resolve(path string) (string, error) {
	if path == "" {
		return "", apperrors.NewValidationError("object path is required")
	}

	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", apperrors.NewValidationError(fmt.Sprintf("invalid object path: %s", path))
	}

	return filepath.Join(s.baseDir, clean), nil
}
