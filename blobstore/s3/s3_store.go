package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/sitestore/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "sites/").
func NewStore(client *s3.Client, bucket, rootPrefix string) *Store {
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
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}

func (s *Store) head(ctx context.Context, key string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// Exists reports whether the object is present. Errors collapse to false.
func (s *Store) Exists(ctx context.Context, site string, version int, innerPath string) bool {
	return s.head(ctx, s.key(site, version, innerPath)) == nil
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
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(site, version, innerPath)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", site, innerPath, err)
	}
	return nil
}

// Remove deletes the object. S3 deletes are silent on missing keys, so
// presence is checked first to honor the ErrNotFound contract.
func (s *Store) Remove(ctx context.Context, site string, version int, innerPath string) error {
	key := s.key(site, version, innerPath)
	if err := s.head(ctx, key); err != nil {
		if isNotFound(err) {
			return blobstore.ErrNotFound
		}
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// OpenRead opens the object for incremental reading. A missing key fails
// here, not on first read.
func (s *Store) OpenRead(ctx context.Context, site string, version int, innerPath string) (io.ReadCloser, error) {
	key := s.key(site, version, innerPath)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return out.Body, nil
}

// OpenWrite opens the object for streaming writes via a background
// multipart upload.
func (s *Store) OpenWrite(ctx context.Context, site string, version int, innerPath string) (blobstore.WritableBlob, error) {
	key := s.key(site, version, innerPath)
	pr, pw := io.Pipe()

	blob := &s3WritableBlob{
		pw:       pw,
		done:     make(chan error, 1),
		uploader: manager.NewUploader(s.client),
	}

	// Start upload in background
	go func() {
		_, err := blob.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   pr,
		})
		_ = pr.CloseWithError(err)
		blob.done <- err
	}()

	return blob, nil
}

// List returns all inner paths of a site, sorted.
func (s *Store) List(ctx context.Context, site string) ([]string, error) {
	sitePrefix := path.Join(s.prefix, site) + "/"

	var names []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(sitePrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), sitePrefix)
			if name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// s3WritableBlob implements blobstore.WritableBlob for S3.
type s3WritableBlob struct {
	pw       *io.PipeWriter
	done     chan error
	uploader *manager.Uploader
}

func (b *s3WritableBlob) Write(p []byte) (int, error) {
	return b.pw.Write(p)
}

func (b *s3WritableBlob) Close() error {
	if err := b.pw.Close(); err != nil {
		return err
	}
	// Wait for the background upload to finish.
	return <-b.done
}

// Sync is a no-op: durability is only established when Close completes the
// upload.
func (b *s3WritableBlob) Sync() error { return nil }
