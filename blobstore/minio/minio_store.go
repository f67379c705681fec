package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/sitestore/blobstore"
)

// Store implements blobstore.BlobStore for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore creates a new MinIO blob store.
// bucket is the MinIO bucket name.
// rootPrefix is prepended to all keys (e.g. "sites/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

// The version is reserved and does not participate in addressing yet.
func (s *Store) key(site string, _ int, innerPath string) string {
	return path.Join(s.prefix, site, innerPath)
}

func isNotFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}

// Exists reports whether the object is present. Errors collapse to false.
func (s *Store) Exists(ctx context.Context, site string, version int, innerPath string) bool {
	_, err := s.client.StatObject(ctx, s.bucket, s.key(site, version, innerPath), minio.StatObjectOptions{})
	return err == nil
}

// Read returns the full object content.
func (s *Store) Read(ctx context.Context, site string, version int, innerPath string) ([]byte, error) {
	r, err := s.OpenRead(ctx, site, version, innerPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", site, innerPath, err)
	}
	return data, nil
}

// Write stores the full object content.
func (s *Store) Write(ctx context.Context, site string, version int, innerPath string, data []byte) error {
	key := s.key(site, version, innerPath)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", site, innerPath, err)
	}
	return nil
}

// Remove deletes the object. MinIO deletes are silent on missing keys, so
// presence is checked first to honor the ErrNotFound contract.
func (s *Store) Remove(ctx context.Context, site string, version int, innerPath string) error {
	key := s.key(site, version, innerPath)
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return blobstore.ErrNotFound
		}
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// OpenRead opens the object for incremental reading. The object is stat'ed
// first so a missing key fails here rather than on first read.
func (s *Store) OpenRead(ctx context.Context, site string, version int, innerPath string) (io.ReadCloser, error) {
	key := s.key(site, version, innerPath)
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// OpenWrite opens the object for streaming writes via a background upload.
func (s *Store) OpenWrite(ctx context.Context, site string, version int, innerPath string) (blobstore.WritableBlob, error) {
	key := s.key(site, version, innerPath)
	pr, pw := io.Pipe()

	blob := &minioWritableBlob{
		pw:   pw,
		done: make(chan error, 1),
	}

	// Start upload in background
	go func() {
		_, err := s.client.PutObject(ctx, s.bucket, key, pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(err)
		blob.done <- err
	}()

	return blob, nil
}

// List returns all inner paths of a site, sorted.
func (s *Store) List(ctx context.Context, site string) ([]string, error) {
	sitePrefix := path.Join(s.prefix, site) + "/"

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    sitePrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, sitePrefix)
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// minioWritableBlob implements blobstore.WritableBlob for MinIO.
type minioWritableBlob struct {
	pw   *io.PipeWriter
	done chan error
}

func (b *minioWritableBlob) Write(p []byte) (int, error) {
	return b.pw.Write(p)
}

func (b *minioWritableBlob) Close() error {
	if err := b.pw.Close(); err != nil {
		return err
	}
	// Wait for the background upload to finish.
	return <-b.done
}

// Sync is a no-op: durability is only established when Close completes the
// upload.
func (b *minioWritableBlob) Sync() error { return nil }
