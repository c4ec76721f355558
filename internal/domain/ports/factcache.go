package ports

import (
	"context"

	"github.com/ersonp/chrono-core/internal/domain/entities"
)

// CacheStats describes the current occupancy of the result cache.
type CacheStats struct {
	Count    int `json:"count"`
	Capacity int `json:"capacity"`
}

// FactCache memoizes classifier output by normalized query text so repeated
// queries short-circuit the external lookup. Implementations are bounded:
// writes may evict the oldest-written entries. A missing entry is reported
// as (nil, false, nil), not as an error.
type FactCache interface {
	// Get returns the cached candidate list for a normalized query.
	Get(ctx context.Context, key string) ([]entities.Fact, bool, error)

	// Put stores the candidate list, evicting oldest-written entries if the
	// cache is over capacity. Last write wins.
	Put(ctx context.Context, key string, facts []entities.Fact) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Stats reports entry count and configured capacity.
	Stats(ctx context.Context) (CacheStats, error)

	// Close releases the underlying store.
	Close() error
}
