package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// WritableBlob is an open streaming sink for a blob's bytes.
//
// The blob is not guaranteed to be visible to readers before Close returns.
// The caller owns the handle: failing to Close leaks it.
type WritableBlob interface {
	io.WriteCloser
	// Sync flushes written bytes to the backing store where the backend
	// supports it.
	Sync() error
}

// BlobStore is byte-oriented CRUD over site content files.
//
// Every operation is keyed by (site, version, innerPath). The version is
// accepted for forward compatibility with versioned lookups but does not
// currently alter blob addressing; implementations must accept and ignore
// it rather than dropping the parameter.
type BlobStore interface {
	// Exists reports whether the blob is present. Errors collapse to false.
	Exists(ctx context.Context, site string, version int, innerPath string) bool

	// Read returns the full blob content.
	Read(ctx context.Context, site string, version int, innerPath string) ([]byte, error)

	// Write stores the full blob content, overwriting any existing blob and
	// creating missing parent directories. The write is not atomic: on
	// failure the prior content is not guaranteed preserved.
	Write(ctx context.Context, site string, version int, innerPath string, data []byte) error

	// Remove deletes the blob. It returns ErrNotFound if absent.
	Remove(ctx context.Context, site string, version int, innerPath string) error

	// OpenRead opens the blob for incremental reading. A missing blob fails
	// immediately with ErrNotFound rather than deferring the error to the
	// first read.
	OpenRead(ctx context.Context, site string, version int, innerPath string) (io.ReadCloser, error)

	// OpenWrite opens the blob for incremental writing, creating missing
	// parent directories first.
	OpenWrite(ctx context.Context, site string, version int, innerPath string) (WritableBlob, error)

	// List returns the inner paths of all blobs stored under site, using
	// forward slashes regardless of platform.
	List(ctx context.Context, site string) ([]string, error)
}
