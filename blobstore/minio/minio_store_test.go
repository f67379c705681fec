package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sitestore/blobstore"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-sitestore"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		t.Skipf("MinIO not reachable: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			t.Skipf("bucket creation failed: %v", err)
		}
	}

	store := NewStore(client, bucket, "it/")

	data := []byte("<html>integration</html>")
	require.NoError(t, store.Write(ctx, "siteA", 1, "index.html", data))
	defer func() {
		_ = store.Remove(ctx, "siteA", 1, "index.html")
	}()

	assert.True(t, store.Exists(ctx, "siteA", 1, "index.html"))

	got, err := store.Read(ctx, "siteA", 1, "index.html")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "siteA")
	require.NoError(t, err)
	assert.Contains(t, names, "index.html")

	_, err = store.Read(ctx, "siteA", 1, "missing.html")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Remove(ctx, "siteA", 1, "index.html"))
	assert.False(t, store.Exists(ctx, "siteA", 1, "index.html"))
	require.ErrorIs(t, store.Remove(ctx, "siteA", 1, "index.html"), blobstore.ErrNotFound)
}
