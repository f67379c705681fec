package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	data := []byte("<html>hello</html>")
	require.NoError(t, store.Write(ctx, "siteA", 1, "index.html", data))

	// Blob lands at root/site/innerPath; the version is reserved.
	onDisk, err := os.ReadFile(filepath.Join(root, "siteA", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	got, err := store.Read(ctx, "siteA", 1, "index.html")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStore_VersionDoesNotAlterAddressing(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "siteA", 1, "index.html", []byte("v1")))

	got, err := store.Read(ctx, "siteA", 99, "index.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestLocalStore_ExistsSemantics(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	assert.False(t, store.Exists(ctx, "siteA", 1, "a.txt"))
	require.NoError(t, store.Write(ctx, "siteA", 1, "a.txt", []byte("x")))
	assert.True(t, store.Exists(ctx, "siteA", 1, "a.txt"))

	require.NoError(t, store.Remove(ctx, "siteA", 1, "a.txt"))
	assert.False(t, store.Exists(ctx, "siteA", 1, "a.txt"))
}

func TestLocalStore_ReadMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Read(context.Background(), "siteA", 1, "missing.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_RemoveMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	err := store.Remove(context.Background(), "siteA", 1, "missing.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_WriteCreatesParentDirs(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "siteA", 1, "assets/css/site.css", []byte("body{}")))
	assert.FileExists(t, filepath.Join(root, "siteA", "assets", "css", "site.css"))

	// Writes are idempotent overwrites.
	require.NoError(t, store.Write(ctx, "siteA", 1, "assets/css/site.css", []byte("html{}")))
	got, err := store.Read(ctx, "siteA", 1, "assets/css/site.css")
	require.NoError(t, err)
	assert.Equal(t, []byte("html{}"), got)
}

func TestLocalStore_Streams(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	w, err := store.OpenWrite(ctx, "siteA", 1, "media/clip.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("chunk-1 "))
	require.NoError(t, err)
	_, err = w.Write([]byte("chunk-2"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	r, err := store.OpenRead(ctx, "siteA", 1, "media/clip.bin")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("chunk-1 chunk-2"), data)
}

func TestLocalStore_OpenReadMissingFailsImmediately(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	// The error must surface at open time, not on first read.
	_, err := store.OpenRead(context.Background(), "siteA", 1, "missing.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_List(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	names, err := store.List(ctx, "siteA")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.Write(ctx, "siteA", 1, "index.html", []byte("a")))
	require.NoError(t, store.Write(ctx, "siteA", 1, "assets/app.js", []byte("b")))
	require.NoError(t, store.Write(ctx, "siteB", 1, "other.txt", []byte("c")))

	names, err = store.List(ctx, "siteA")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index.html", "assets/app.js"}, names)
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "siteA", 1, "empty", nil))
	got, err := store.Read(ctx, "siteA", 1, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, store.Exists(ctx, "siteA", 1, "empty"))
}
