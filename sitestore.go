package sitestore

import (
	"context"
	"fmt"

	"github.com/hupe1980/sitestore/blobstore"
	"github.com/hupe1980/sitestore/docstore"
)

// Store bundles the two persistence components of one site root: a blob
// store for content bytes and a document store for JSON metadata.
//
// The two components share no runtime state beyond the root directory.
// Higher-level site management drives them independently: blobs by
// (site, version, innerPath), documents by logical key.
type Store struct {
	root   string
	logger *Logger

	// Blobs is byte-oriented CRUD over site content files.
	Blobs blobstore.BlobStore

	// Docs is the durable JSON metadata store.
	Docs docstore.DocumentStore
}

// New creates a store rooted at the given directory. Both components
// default to their local filesystem backends; options swap in remote ones.
func New(root string, optFns ...func(*Options)) *Store {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger()
	}

	blobs := opts.Blobs
	if blobs == nil {
		blobs = blobstore.NewLocalStore(root, func(o *blobstore.Options) {
			o.FS = opts.FS
		})
	}

	docs := opts.Docs
	if docs == nil {
		docs = docstore.New(root, func(o *docstore.Options) {
			o.FS = opts.FS
			o.Codec = opts.Codec
			o.Observer = opts.Observer
			o.Logger = logger.Logger
		})
	}

	return &Store{
		root:   root,
		logger: logger,
		Blobs:  blobs,
		Docs:   docs,
	}
}

// Root returns the configured root directory.
func (s *Store) Root() string { return s.root }

// Start prepares both components for use. It must be called before any
// document operation and is idempotent.
func (s *Store) Start(ctx context.Context) error {
	if err := s.Docs.Start(ctx); err != nil {
		return fmt.Errorf("sitestore: start: %w", err)
	}
	s.logger.Debug("store started", "root", s.root)
	return nil
}

// Stop releases backend resources. Local backends have none; remote ones
// tear down their client handles here.
func (s *Store) Stop() error {
	if err := s.Docs.Stop(); err != nil {
		return fmt.Errorf("sitestore: stop: %w", err)
	}
	s.logger.Debug("store stopped", "root", s.root)
	return nil
}
