package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/hupe1980/sitestore/fs"
)

// Options configures the local blob store.
type Options struct {
	// FS is the filesystem the store operates on. Defaults to fs.Default.
	FS fs.FileSystem
}

// LocalStore implements BlobStore on the local file system.
//
// Blobs live at root/site/innerPath. The filesystem is the store: there is
// no in-memory state and no locking, so concurrent writes to the same path
// race at the filesystem level.
type LocalStore struct {
	res  fs.Resolver
	fsys fs.FileSystem
}

var _ BlobStore = (*LocalStore)(nil)

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(root string, optFns ...func(*Options)) *LocalStore {
	opts := Options{FS: fs.Default}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.FS == nil {
		opts.FS = fs.Default
	}
	return &LocalStore{
		res:  fs.Resolver{Root: root},
		fsys: opts.FS,
	}
}

// resolve maps a blob address to its absolute path. The version is reserved
// for future versioned lookups and does not participate yet.
func (s *LocalStore) resolve(site string, _ int, innerPath string) string {
	return s.res.Resolve(site, innerPath)
}

// Exists reports whether the blob is present. Errors collapse to false.
func (s *LocalStore) Exists(_ context.Context, site string, version int, innerPath string) bool {
	return fs.Exists(s.fsys, s.resolve(site, version, innerPath))
}

// Read returns the full blob content.
func (s *LocalStore) Read(_ context.Context, site string, version int, innerPath string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, s.resolve(site, version, innerPath))
	if err != nil {
		return nil, fmt.Errorf("blobstore: read %s/%s: %w", site, innerPath, err)
	}
	return data, nil
}

// Write stores the full blob content, creating the parent directory chain
// first. Overwrites are allowed and not atomic.
func (s *LocalStore) Write(_ context.Context, site string, version int, innerPath string, data []byte) error {
	name := s.resolve(site, version, innerPath)
	if err := s.fsys.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("blobstore: create parent dirs for %s/%s: %w", site, innerPath, err)
	}
	if err := fs.WriteFile(s.fsys, name, data, 0o644); err != nil {
		return fmt.Errorf("blobstore: write %s/%s: %w", site, innerPath, err)
	}
	return nil
}

// Remove deletes the blob. It returns ErrNotFound if absent.
func (s *LocalStore) Remove(_ context.Context, site string, version int, innerPath string) error {
	if err := s.fsys.Remove(s.resolve(site, version, innerPath)); err != nil {
		return fmt.Errorf("blobstore: remove %s/%s: %w", site, innerPath, err)
	}
	return nil
}

// OpenRead opens the blob for incremental reading. A missing blob fails
// here, not on first read.
func (s *LocalStore) OpenRead(_ context.Context, site string, version int, innerPath string) (io.ReadCloser, error) {
	f, err := s.fsys.OpenFile(s.resolve(site, version, innerPath), os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open %s/%s: %w", site, innerPath, err)
	}
	return f, nil
}

// OpenWrite opens the blob for incremental writing, creating missing parent
// directories first. The caller must Close the handle or it leaks.
func (s *LocalStore) OpenWrite(_ context.Context, site string, version int, innerPath string) (WritableBlob, error) {
	name := s.resolve(site, version, innerPath)
	if err := s.fsys.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, fmt.Errorf("blobstore: create parent dirs for %s/%s: %w", site, innerPath, err)
	}
	f, err := s.fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open %s/%s for writing: %w", site, innerPath, err)
	}
	return f, nil
}

// List walks root/site and returns all inner paths with forward slashes.
// A site with no directory yet lists as empty.
func (s *LocalStore) List(_ context.Context, site string) ([]string, error) {
	siteDir := s.res.Resolve(site)
	if !fs.Exists(s.fsys, siteDir) {
		return nil, nil
	}
	var names []string
	if err := s.walk(siteDir, "", &names); err != nil {
		return nil, fmt.Errorf("blobstore: list %s: %w", site, err)
	}
	return names, nil
}

func (s *LocalStore) walk(dir, prefix string, names *[]string) error {
	entries, err := s.fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		rel := path.Join(prefix, entry.Name())
		if entry.IsDir() {
			if err := s.walk(filepath.Join(dir, entry.Name()), rel, names); err != nil {
				return err
			}
			continue
		}
		*names = append(*names, rel)
	}
	return nil
}
