package blobstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror_CopiesAllBlobs(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewMemoryStore()

	blobs := map[string][]byte{
		"index.html":     []byte("<html></html>"),
		"assets/app.js":  []byte("console.log(1)"),
		"data/feed.json": []byte(`{"items":[]}`),
	}
	for name, data := range blobs {
		require.NoError(t, src.Write(ctx, "siteA", 1, name, data))
	}

	require.NoError(t, Mirror(ctx, src, dst, "siteA", 1))

	for name, data := range blobs {
		got, err := dst.Read(ctx, "siteA", 1, name)
		require.NoError(t, err, name)
		assert.Equal(t, data, got, name)
	}
}

func TestMirror_EmptySite(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Mirror(ctx, NewMemoryStore(), NewMemoryStore(), "nosuch", 1))
}

func TestMirror_DoesNotDeleteExtraBlobs(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewMemoryStore()

	require.NoError(t, src.Write(ctx, "siteA", 1, "a.txt", []byte("a")))
	require.NoError(t, dst.Write(ctx, "siteA", 1, "stale.txt", []byte("s")))

	require.NoError(t, Mirror(ctx, src, dst, "siteA", 1))

	names, err := dst.List(ctx, "siteA")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "stale.txt"}, names)
}

func TestMirror_RateLimited(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewMemoryStore()

	payload := make([]byte, 2048)
	require.NoError(t, src.Write(ctx, "siteA", 1, "big.bin", payload))

	// 1 KiB/s over 2 KiB has to take about a second beyond the initial
	// burst.
	start := time.Now()
	require.NoError(t, Mirror(ctx, src, dst, "siteA", 1, func(o *MirrorOptions) {
		o.BytesPerSec = 1024
	}))
	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)

	got, err := dst.Read(ctx, "siteA", 1, "big.bin")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestMirror_Cancellation(t *testing.T) {
	src := NewMemoryStore()
	dst := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, src.Write(ctx, "siteA", 1, "big.bin", make([]byte, 4096)))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	err := Mirror(cancelled, src, dst, "siteA", 1, func(o *MirrorOptions) {
		o.BytesPerSec = 1 // would take ages; cancellation must cut it short
	})
	require.Error(t, err)
}
