// Package blobstore provides byte-oriented storage for site content files.
//
// BlobStore is the interface for reading and writing blobs addressed by
// (site, version, innerPath). The version parameter is reserved for future
// versioned lookups and does not currently alter addressing.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, blobs at root/site/innerPath
//   - MemoryStore: in-memory, for tests and ephemeral sites
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 with parallel uploads
//
// # Utilities
//
// [Mirror] copies a site between any two stores with bounded concurrency
// and optional throughput limiting. [WriteArchive] and [ReadArchive]
// snapshot a site to and from a zstd-compressed tar stream.
//
// Stores never recover from errors: every failure propagates to the caller.
// Crash-safe metadata persistence lives in the docstore package, not here.
package blobstore
