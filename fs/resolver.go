package fs

import "path/filepath"

// Resolver joins a fixed root directory with relative path segments.
//
// It is a pure helper: malformed segments produce a malformed path, which
// surfaces later as a filesystem error. Both stores share one Resolver so
// the on-disk layout is decided in exactly one place.
type Resolver struct {
	Root string
}

// Resolve joins the root with the given ordered segments using platform
// path-join semantics.
func (r Resolver) Resolve(segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, r.Root)
	parts = append(parts, segments...)
	return filepath.Join(parts...)
}
