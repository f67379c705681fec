// Package sitestore provides the local persistence layer for a versioned
// site archive: a blob store for raw content bytes and a durable JSON
// document store for metadata.
//
// # Quick Start
//
// Local mode:
//
//	ctx := context.Background()
//	store := sitestore.New("./data")
//	_ = store.Start(ctx)
//	defer store.Stop()
//
//	_ = store.Blobs.Write(ctx, "example.com", 3, "index.html", html)
//	_ = store.Docs.Write(ctx, "example.com", siteRecord)
//
// Remote backends:
//
//	s3Store, _ := s3.New(ctx, client, "my-bucket", s3.WithPrefix("sites/"))
//	store := sitestore.New("./data", sitestore.WithBlobStore(s3Store))
//
// # Durability
//
// Document writes rotate the previous value into a backup slot before
// replacing the primary, so a crash at any point leaves at least one
// parseable copy on disk. Reads detect torn or corrupt primaries and
// recover from the backup automatically, reporting what happened through
// a pluggable Observer. See the docstore package for the full protocol.
//
// The store performs no locking: callers serialize access per key.
package sitestore
