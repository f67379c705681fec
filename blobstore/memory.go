package blobstore

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory BlobStore implementation for testing and
// ephemeral sites. Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ BlobStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// The version is reserved and does not participate in addressing yet.
func (m *MemoryStore) key(site string, _ int, innerPath string) string {
	return path.Join(site, innerPath)
}

// Exists reports whether the blob is present.
func (m *MemoryStore) Exists(_ context.Context, site string, version int, innerPath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[m.key(site, version, innerPath)]
	return ok
}

// Read returns a copy of the blob content.
func (m *MemoryStore) Read(_ context.Context, site string, version int, innerPath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[m.key(site, version, innerPath)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// Write stores a copy of data, preventing external mutation.
func (m *MemoryStore) Write(_ context.Context, site string, version int, innerPath string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.blobs[m.key(site, version, innerPath)] = copied
	return nil
}

// Remove deletes the blob. It returns ErrNotFound if absent.
func (m *MemoryStore) Remove(_ context.Context, site string, version int, innerPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.key(site, version, innerPath)
	if _, ok := m.blobs[key]; !ok {
		return ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

// OpenRead opens the blob for incremental reading.
func (m *MemoryStore) OpenRead(ctx context.Context, site string, version int, innerPath string) (io.ReadCloser, error) {
	data, err := m.Read(ctx, site, version, innerPath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// OpenWrite opens the blob for incremental writing. The blob becomes
// visible on Close.
func (m *MemoryStore) OpenWrite(_ context.Context, site string, version int, innerPath string) (WritableBlob, error) {
	return &memoryWritableBlob{
		store: m,
		key:   m.key(site, version, innerPath),
	}, nil
}

// List returns all inner paths stored under site, sorted.
func (m *MemoryStore) List(_ context.Context, site string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := site + "/"
	var names []string
	for key := range m.blobs {
		if strings.HasPrefix(key, prefix) {
			names = append(names, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(names)
	return names, nil
}

type memoryWritableBlob struct {
	store *MemoryStore
	key   string
	buf   bytes.Buffer
}

func (w *memoryWritableBlob) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memoryWritableBlob) Close() error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()

	data := make([]byte, w.buf.Len())
	copy(data, w.buf.Bytes())
	w.store.blobs[w.key] = data
	return nil
}

func (w *memoryWritableBlob) Sync() error { return nil }
