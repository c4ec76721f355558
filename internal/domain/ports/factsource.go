// Package ports defines interfaces for external service communication.
package ports

import "context"

// SearchHit is one ranked candidate returned by a fact source search.
type SearchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// PageDetail is the descriptive material for one candidate, used by the
// classifier gates and date extractors.
type PageDetail struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Extract     string   `json:"extract"`
	URL         string   `json:"url,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// FactSource defines the interface to the external knowledge base. The
// engine treats it as an oracle: it may return zero, one, or several
// plausible candidates, possibly none correct. Transport failures should be
// reported as errors; the classifier degrades them to "no candidates".
type FactSource interface {
	// Search returns ranked candidates for a free-text query.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Detail fetches descriptive text and metadata for a candidate title.
	Detail(ctx context.Context, title string) (*PageDetail, error)
}
