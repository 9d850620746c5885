// internal/kv/kv.go
//
// Key-value persistence interface for the score slot, plus the in-memory
// implementation used in tests and ephemeral runs.
//
// Characteristics:
//   - Whole values round-trip as opaque blobs; callers own serialization.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Memory state is lost when the process restarts.

package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence interface for key-value slots.
// Implementations may be backed by memory (this file) or SQLite.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory constructs a new in-memory Store.
func NewMemory() Store {
	return &memory{data: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *memory) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}
