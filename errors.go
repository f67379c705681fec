package sitestore

import (
	"github.com/hupe1980/sitestore/docstore"
)

// Sentinel errors of the component packages, re-exported for callers that
// only import the root package.
var (
	// ErrNotFound indicates a missing blob or document.
	ErrNotFound = docstore.ErrNotFound

	// ErrCorrupt indicates a document that could not be parsed and had no
	// usable backup to recover from.
	ErrCorrupt = docstore.ErrCorrupt

	// ErrUnrecoverable indicates that recovery itself failed and manual
	// intervention is required.
	ErrUnrecoverable = docstore.ErrUnrecoverable
)
