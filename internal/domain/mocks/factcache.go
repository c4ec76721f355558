package mocks

import (
	"context"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/ports"
)

// FactCache is an in-memory mock implementation of ports.FactCache.
type FactCache struct {
	Entries  map[string][]entities.Fact
	Capacity int
	GetErr   error
	PutErr   error
}

// Get returns the cached facts for a key.
func (m *FactCache) Get(ctx context.Context, key string) ([]entities.Fact, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	facts, ok := m.Entries[key]
	return facts, ok, nil
}

// Put stores facts under a key.
func (m *FactCache) Put(ctx context.Context, key string, facts []entities.Fact) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	if m.Entries == nil {
		m.Entries = make(map[string][]entities.Fact)
	}
	m.Entries[key] = facts
	return nil
}

// Clear removes all entries.
func (m *FactCache) Clear(ctx context.Context) error {
	m.Entries = nil
	return nil
}

// Stats reports occupancy.
func (m *FactCache) Stats(ctx context.Context) (ports.CacheStats, error) {
	return ports.CacheStats{Count: len(m.Entries), Capacity: m.Capacity}, nil
}

// Close is a no-op.
func (m *FactCache) Close() error {
	return nil
}
