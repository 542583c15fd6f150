package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/static/uploads/")

	url, err := store.Save(context.Background(), "user-1/leaf.jpg", []byte("jpegdata"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/user-1/leaf.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "user-1", "leaf.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)
}

func TestLocalStoreRejectsEscapingPaths(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/static/uploads")

	_, err := store.Save(context.Background(), "../outside.jpg", []byte("x"))
	assert.Error(t, err)

	_, err = store.Save(context.Background(), "/etc/passwd", []byte("x"))
	assert.Error(t, err)

	_, err = store.Save(context.Background(), "", []byte("x"))
	assert.Error(t, err)
}

func TestLocalStoreCancelledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/static/uploads")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "a/b.jpg", []byte("x"))
	assert.Error(t, err)
}
