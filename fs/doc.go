// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: Represents an open file with read/write/sync capabilities
//   - [FileSystem]: Abstracts filesystem operations (open, remove, rename, etc.)
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// Production code should use fs.Default (which is [LocalFS]). Tests inject
// [FaultyFS] to drive the document store's recovery branches: a rule for a
// key's backup file makes its promotion fail, a read rule makes the primary
// unreadable without touching the bytes on disk, and so on.
//
// [Resolver] is the shared path-resolution helper: it joins a configured
// root directory with relative segments and does nothing else.
//
// # Design Notes
//
// This package intentionally does NOT include context.Context parameters.
// Filesystem operations are typically fast (microseconds for local NVMe) and
// non-interruptible at the syscall level. Adding context would add overhead
// without meaningful cancellation capability.
package fs
