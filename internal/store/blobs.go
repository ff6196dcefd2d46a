// Package store persists the task collection as a single blob in a
// key-value store.
package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Blobs.Get when the key has never been written.
var ErrNotFound = errors.New("blob not found")

// Blobs is a key-value store of opaque values. Put replaces the whole value.
type Blobs interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// MemoryBlobs keeps blobs in memory. Useful as a test double.
type MemoryBlobs struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBlobs returns an empty in-memory store.
func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{data: map[string][]byte{}}
}

// Get implements Blobs.
func (m *MemoryBlobs) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements Blobs.
func (m *MemoryBlobs) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}
