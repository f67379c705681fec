// Package docstore persists small JSON metadata documents with a durable
// write protocol and read-time corruption recovery.
//
// Every key owns three filesystem slots under root/json/: the primary
// (`key`), the backup (`key.bak`) and the corrupt quarantine
// (`key.corrupt`). Writes rotate the previous value into the backup slot
// before installing the new one, so a crash at any point leaves a complete
// parseable value in at least one slot. Reads detect the two crash shapes
// (missing primary, unparseable primary) and repair them transparently,
// emitting a [RecoveryEvent] through the configured [Observer].
//
// The quarantine slot is a forensic artifact: it is written when a corrupt
// primary is detected and never read back by the store.
//
// # Concurrency
//
// The protocol is crash-safe but not concurrency-safe. Two interleaved
// writes to the same key can break the rotation invariant; callers must
// serialize operations per key.
//
// # Backends
//
// [Store] is the local filesystem implementation. The dynamo subpackage
// implements [DocumentStore] on DynamoDB for deployments that keep site
// metadata off the local disk.
package docstore
