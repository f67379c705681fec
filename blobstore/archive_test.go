package blobstore

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()

	blobs := map[string][]byte{
		"index.html":      []byte("<html></html>"),
		"assets/app.js":   []byte("console.log(1)"),
		"assets/site.css": []byte("body{margin:0}"),
		"empty.txt":       {},
	}
	for name, data := range blobs {
		require.NoError(t, src.Write(ctx, "siteA", 1, name, data))
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(ctx, src, "siteA", 1, &buf))

	dst := NewLocalStore(t.TempDir())
	require.NoError(t, ReadArchive(ctx, dst, "siteA", 1, &buf))

	for name, data := range blobs {
		got, err := dst.Read(ctx, "siteA", 1, name)
		require.NoError(t, err, name)
		assert.Equal(t, data, got, name)
	}

	names, err := dst.List(ctx, "siteA")
	require.NoError(t, err)
	assert.Len(t, names, len(blobs))
}

func TestArchive_Deterministic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Write(ctx, "siteA", 1, "b.txt", []byte("b")))
	require.NoError(t, store.Write(ctx, "siteA", 1, "a.txt", []byte("a")))

	var first, second bytes.Buffer
	require.NoError(t, WriteArchive(ctx, store, "siteA", 1, &first))
	require.NoError(t, WriteArchive(ctx, store, "siteA", 1, &second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestArchive_EmptySite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(ctx, store, "nosuch", 1, &buf))

	dst := NewMemoryStore()
	require.NoError(t, ReadArchive(ctx, dst, "nosuch", 1, &buf))
	names, err := dst.List(ctx, "nosuch")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadArchive_GarbageInput(t *testing.T) {
	store := NewMemoryStore()
	err := ReadArchive(context.Background(), store, "siteA", 1, bytes.NewReader([]byte("definitely not zstd")))
	require.Error(t, err)
}
