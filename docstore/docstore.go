package docstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/sitestore/codec"
	"github.com/hupe1980/sitestore/fs"
)

const (
	// dirName is the subdirectory of the root holding all document slots.
	dirName = "json"

	backupExt  = ".bak"
	corruptExt = ".corrupt"

	filePerm = 0o644
	dirPerm  = 0o755
)

// DocumentStore is key-addressed CRUD over small metadata documents.
//
// Implementations are not required to be safe for concurrent use of the
// same key: the local backup-rotation protocol is crash-safe, not
// concurrency-safe. Callers must serialize operations per key.
type DocumentStore interface {
	// Start prepares the store for use. It must be called before any other
	// operation and is idempotent.
	Start(ctx context.Context) error

	// Stop releases backend resources. The local store has none; remote
	// backends tear down client handles here.
	Stop() error

	// Write persists v under key, rotating any previous value to a backup
	// slot first.
	Write(ctx context.Context, key string, v any) error

	// Read decodes the document stored under key into out, recovering from
	// an interrupted or corrupted prior write when a usable backup exists.
	Read(ctx context.Context, key string, out any) error

	// Exists reports whether a primary document is present under key. It
	// does not consult the backup slot and never fails.
	Exists(ctx context.Context, key string) bool

	// Remove deletes the primary document. It returns ErrNotFound if absent
	// and leaves any backup slot untouched.
	Remove(ctx context.Context, key string) error
}

// Options configures the local document store.
type Options struct {
	// FS is the filesystem the store operates on. Defaults to fs.Default.
	FS fs.FileSystem

	// Codec serializes document values. Defaults to codec.Default.
	Codec codec.Codec

	// Observer receives recovery events. Defaults to logging through Logger.
	Observer Observer

	// Logger backs the default observer. Defaults to a discard logger.
	Logger *slog.Logger
}

// Store is a filesystem-backed DocumentStore.
//
// State is entirely externalized to three slots per key under root/json/:
// the primary (`key`), the backup (`key.bak`) and the corrupt quarantine
// (`key.corrupt`). At any point after a completed write either the primary
// or the backup holds a complete, parseable value; the read path exploits
// that to recover from interrupted writes.
type Store struct {
	res   fs.Resolver
	fsys  fs.FileSystem
	codec codec.Codec
	obs   Observer
}

var _ DocumentStore = (*Store)(nil)

// New creates a document store rooted at the given directory. Documents
// live under root/json/.
func New(root string, optFns ...func(*Options)) *Store {
	opts := Options{
		FS:    fs.Default,
		Codec: codec.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.FS == nil {
		opts.FS = fs.Default
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Observer == nil {
		logger := opts.Logger
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		opts.Observer = logObserver{logger: logger}
	}
	return &Store{
		res:   fs.Resolver{Root: root},
		fsys:  opts.FS,
		codec: opts.Codec,
		obs:   opts.Observer,
	}
}

// Start ensures the json/ subdirectory exists. Idempotent.
func (s *Store) Start(_ context.Context) error {
	if err := s.fsys.MkdirAll(s.res.Resolve(dirName), dirPerm); err != nil {
		return fmt.Errorf("docstore: create document directory: %w", err)
	}
	return nil
}

// Stop is a no-op. It exists for interface uniformity with backends that
// hold client handles.
func (s *Store) Stop() error { return nil }

func (s *Store) primaryPath(key string) string {
	return s.res.Resolve(dirName, key)
}

func (s *Store) backupPath(key string) string {
	return s.primaryPath(key) + backupExt
}

func (s *Store) corruptPath(key string) string {
	return s.primaryPath(key) + corruptExt
}

// Write rotates the current value of key to its backup slot and installs v.
//
// The three steps run strictly in order and the first failure aborts the
// operation without rolling back completed steps. A crash at any point
// leaves at least one of {primary, backup} holding a complete prior value,
// which Read recovers from.
func (s *Store) Write(_ context.Context, key string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("docstore: encode %q: %w", key, err)
	}
	return s.writeRaw(key, data)
}

// writeRaw runs the rotation protocol with pre-encoded bytes. The recovery
// path reuses it to re-install a value with its original serialization.
func (s *Store) writeRaw(key string, data []byte) error {
	primary := s.primaryPath(key)
	backup := s.backupPath(key)

	// Step 1: clear a stale backup left by a prior interrupted write so the
	// rotation below starts clean.
	if fs.Exists(s.fsys, backup) {
		if err := s.fsys.Remove(backup); err != nil {
			return fmt.Errorf("docstore: clear stale backup for %q: %w", key, err)
		}
	}

	// Step 2: rotate the current value to the backup slot.
	if fs.Exists(s.fsys, primary) {
		if err := s.fsys.Rename(primary, backup); err != nil {
			return fmt.Errorf("docstore: rotate %q to backup: %w", key, err)
		}
	}

	// Step 3: install the new value. The json/ directory is guaranteed by
	// Start, not per write.
	if err := fs.WriteFile(s.fsys, primary, data, filePerm); err != nil {
		return fmt.Errorf("docstore: write %q: %w", key, err)
	}
	return nil
}

// Exists checks only the primary slot. Errors collapse to false.
func (s *Store) Exists(_ context.Context, key string) bool {
	return fs.Exists(s.fsys, s.primaryPath(key))
}

// Remove deletes only the primary slot. An orphaned backup is collected by
// the next write's rotation step.
func (s *Store) Remove(_ context.Context, key string) error {
	if err := s.fsys.Remove(s.primaryPath(key)); err != nil {
		return fmt.Errorf("docstore: remove %q: %w", key, err)
	}
	return nil
}
