package sitestore

import (
	"github.com/hupe1980/sitestore/blobstore"
	"github.com/hupe1980/sitestore/codec"
	"github.com/hupe1980/sitestore/docstore"
	"github.com/hupe1980/sitestore/fs"
)

// Options configures the store. All fields are optional; zero values pick
// local filesystem backends with sensible defaults.
type Options struct {
	// FS is the filesystem backing the local backends. Defaults to fs.Default.
	// Ignored when both Blobs and Docs are supplied.
	FS fs.FileSystem

	// Codec serializes document values. Defaults to codec.Default.
	// Ignored when Docs is supplied.
	Codec codec.Codec

	// Observer receives document recovery events. Defaults to logging
	// through Logger. Ignored when Docs is supplied.
	Observer docstore.Observer

	// Logger receives structured store logs. Defaults to NoopLogger.
	Logger *Logger

	// Blobs replaces the default local blob store, e.g. with an S3 or
	// MinIO backend.
	Blobs blobstore.BlobStore

	// Docs replaces the default local document store, e.g. with a
	// DynamoDB backend.
	Docs docstore.DocumentStore
}

// WithLogger configures structured logging for the store and its
// default document store.
func WithLogger(logger *Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithCodec configures the codec used for document values.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) func(*Options) {
	return func(o *Options) {
		o.Codec = c
	}
}

// WithObserver configures the recovery event observer of the default
// document store.
func WithObserver(obs docstore.Observer) func(*Options) {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithFS configures the filesystem backing the local backends.
func WithFS(fsys fs.FileSystem) func(*Options) {
	return func(o *Options) {
		o.FS = fsys
	}
}

// WithBlobStore replaces the default local blob store.
func WithBlobStore(store blobstore.BlobStore) func(*Options) {
	return func(o *Options) {
		o.Blobs = store
	}
}

// WithDocumentStore replaces the default local document store.
func WithDocumentStore(store docstore.DocumentStore) func(*Options) {
	return func(o *Options) {
		o.Docs = store
	}
}
