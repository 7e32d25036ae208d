package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps revisions in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	revs map[string][]Revision // Oldest first
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revs: make(map[string][]Revision)}
}

func (m *MemoryStore) Latest(ctx context.Context, key string) (Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	revs := m.revs[key]
	if len(revs) == 0 {
		return Revision{}, ErrNotFound
	}
	return revs[len(revs)-1], nil
}

func (m *MemoryStore) Put(ctx context.Context, key string, data []byte) (Revision, error) {
	rev := Revision{
		ID:        uuid.New(),
		Key:       key,
		Size:      len(data),
		CreatedAt: time.Now().UTC(),
		Data:      append([]byte(nil), data...),
	}
	m.mu.Lock()
	m.revs[key] = append(m.revs[key], rev)
	m.mu.Unlock()
	return rev, nil
}

func (m *MemoryStore) Revisions(ctx context.Context, key string, limit int) ([]Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	revs := m.revs[key]
	out := make([]Revision, 0, min(limit, len(revs)))
	for i := len(revs) - 1; i >= 0 && len(out) < limit; i-- {
		rev := revs[i]
		rev.Data = nil
		out = append(out, rev)
	}
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
