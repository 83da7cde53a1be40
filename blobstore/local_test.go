package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("0.5,1\n1,0.5\n")
	require.NoError(t, store.Put(ctx, "runs/a/psm.csv", data))

	// Verify file exists on disk
	_, err := os.Stat(filepath.Join(tmpDir, "runs", "a", "psm.csv"))
	require.NoError(t, err)

	got, err := store.Get(ctx, "runs/a/psm.csv")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Overwrite
	require.NoError(t, store.Put(ctx, "runs/a/psm.csv", []byte("x")))
	got, err = store.Get(ctx, "runs/a/psm.csv")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Join(tmpDir, "runs", "a"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Get(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_Canceled(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "a", nil), context.Canceled)
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "dir/a", data))
	require.NoError(t, store.Put(ctx, "dir/b", data))
	require.NoError(t, store.Put(ctx, "other", data))
	data[0] = 'z'

	got, err := store.Get(ctx, "dir/a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _ := store.Get(ctx, "dir/a")
	assert.Equal(t, "abc", string(again))
}

var (
	_ BlobStore = (*LocalStore)(nil)
	_ BlobStore = (*MemoryStore)(nil)
)
