// Package sqlite provides a SQLite implementation of the FactCache
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/ports"
)

// DefaultCapacity bounds the cache when the config does not set one.
const DefaultCapacity = 200

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Cache implements ports.FactCache using SQLite. Entries persist across
// process restarts; a corrupt store is reset to empty rather than failing.
type Cache struct {
	db       *sql.DB
	path     string
	capacity int
}

// New opens (or creates) the cache database at path.
func New(path string, capacity int) (*Cache, error) {
	if path == "" {
		return nil, errors.New("cache path is required")
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := open(path)
	if err != nil {
		// A corrupt or unreadable store resets to empty instead of failing.
		_ = os.Remove(path)
		db, err = open(path)
		if err != nil {
			return nil, fmt.Errorf("opening cache database: %w", err)
		}
	}

	return &Cache{
		db:       db,
		path:     path,
		capacity: capacity,
	}, nil
}

// open opens the database and verifies it is usable.
func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS fact_cache (
		query_key TEXT PRIMARY KEY,
		facts TEXT NOT NULL,
		written_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_fact_cache_written ON fact_cache(written_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached candidate list for a normalized query.
func (c *Cache) Get(ctx context.Context, key string) ([]entities.Fact, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		"SELECT facts FROM fact_cache WHERE query_key = ?", key,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var facts []entities.Fact
	if err := json.Unmarshal([]byte(payload), &facts); err != nil {
		// A single corrupt row behaves like a miss; the next Put overwrites it.
		return nil, false, nil
	}
	return facts, true, nil
}

// Put stores the candidate list under the normalized query, last write
// wins, then opportunistically evicts the oldest-written entries beyond
// capacity.
func (c *Cache) Put(ctx context.Context, key string, facts []entities.Fact) error {
	payload, err := json.Marshal(facts)
	if err != nil {
		return fmt.Errorf("marshaling facts: %w", err)
	}

	query := `
		INSERT INTO fact_cache (query_key, facts, written_at)
		VALUES (?, ?, ?)
		ON CONFLICT(query_key) DO UPDATE SET
			facts = excluded.facts,
			written_at = excluded.written_at
	`
	if _, err := c.db.ExecContext(ctx, query, key, string(payload), timeNow().UTC()); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return c.evict(ctx)
}

// evict removes the oldest-written entries until the cache fits its
// capacity.
func (c *Cache) evict(ctx context.Context) error {
	query := `
		DELETE FROM fact_cache WHERE query_key IN (
			SELECT query_key FROM fact_cache
			ORDER BY written_at ASC
			LIMIT max(0, (SELECT COUNT(*) FROM fact_cache) - ?)
		)
	`
	if _, err := c.db.ExecContext(ctx, query, c.capacity); err != nil {
		return fmt.Errorf("evicting cache entries: %w", err)
	}
	return nil
}

// Clear removes all entries.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM fact_cache"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Stats reports entry count and configured capacity.
func (c *Cache) Stats(ctx context.Context) (ports.CacheStats, error) {
	var count int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fact_cache").Scan(&count)
	if err != nil {
		return ports.CacheStats{}, fmt.Errorf("counting cache entries: %w", err)
	}
	return ports.CacheStats{Count: count, Capacity: c.capacity}, nil
}
