// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/chrono-core/internal/domain/ports"
)

// FactSource is a mock implementation of ports.FactSource.
type FactSource struct {
	// Hits returned by Search, or HitsByQuery keyed on the exact query.
	Hits        []ports.SearchHit
	HitsByQuery map[string][]ports.SearchHit
	SearchErr   error
	SearchCalls int

	// Details keyed by title for Detail.
	Details   map[string]*ports.PageDetail
	DetailErr error
}

// Search returns the configured hits or error and counts the call.
func (m *FactSource) Search(ctx context.Context, query string, limit int) ([]ports.SearchHit, error) {
	m.SearchCalls++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if m.HitsByQuery != nil {
		return m.HitsByQuery[query], nil
	}
	if limit < len(m.Hits) {
		return m.Hits[:limit], nil
	}
	return m.Hits, nil
}

// Detail returns the configured detail for a title, or nil when absent.
func (m *FactSource) Detail(ctx context.Context, title string) (*ports.PageDetail, error) {
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	return m.Details[title], nil
}
