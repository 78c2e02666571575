package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is the read-through payload cache consulted before every outbound
// fetch. Writes are last-write-wins; entries are never partially written.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type memoryEntry struct {
	val     []byte
	expires time.Time
}

// Memory is an in-process Cache. It backs tests and keeps the pipeline
// functional when no redis address is configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if m.now().After(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	stored := make([]byte, len(val))
	copy(stored, val)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{val: stored, expires: m.now().Add(ttl)}
	return nil
}
