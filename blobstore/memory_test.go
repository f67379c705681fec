package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("payload")
	require.NoError(t, store.Write(ctx, "siteA", 1, "a/b.txt", data))

	got, err := store.Read(ctx, "siteA", 1, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Mutating the returned slice must not affect the stored blob.
	got[0] = 'X'
	again, err := store.Read(ctx, "siteA", 1, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Read(ctx, "siteA", 1, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.OpenRead(ctx, "siteA", 1, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, store.Remove(ctx, "siteA", 1, "missing"), ErrNotFound)
	assert.False(t, store.Exists(ctx, "siteA", 1, "missing"))
}

func TestMemoryStore_Streams(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w, err := store.OpenWrite(ctx, "siteA", 1, "doc.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("st"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ream"))
	require.NoError(t, err)

	// Not visible until Close.
	assert.False(t, store.Exists(ctx, "siteA", 1, "doc.txt"))
	require.NoError(t, w.Close())
	assert.True(t, store.Exists(ctx, "siteA", 1, "doc.txt"))

	r, err := store.OpenRead(ctx, "siteA", 1, "doc.txt")
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("stream"), data)
}

func TestMemoryStore_ListPerSite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "siteA", 1, "b.txt", []byte("1")))
	require.NoError(t, store.Write(ctx, "siteA", 1, "a/inner.txt", []byte("2")))
	require.NoError(t, store.Write(ctx, "siteB", 1, "c.txt", []byte("3")))

	names, err := store.List(ctx, "siteA")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/inner.txt", "b.txt"}, names)

	names, err = store.List(ctx, "nosuch")
	require.NoError(t, err)
	assert.Empty(t, names)
}
