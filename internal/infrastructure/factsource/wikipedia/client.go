// Package wikipedia provides a FactSource implementation backed by the
// MediaWiki Action API.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/ersonp/chrono-core/internal/domain/ports"
	"github.com/ersonp/chrono-core/internal/infrastructure/config"
)

// defaultTimeout bounds a single API call. Callers treat expiry as "no
// candidates found".
const defaultTimeout = 10 * time.Second

// reHTMLTag strips the search-snippet highlight markup the API returns.
var reHTMLTag = regexp.MustCompile(`<[^>]+>`)

// Client implements the FactSource interface using the MediaWiki API.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a new MediaWiki fact source.
func NewClient(cfg config.SourceConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("wikipedia endpoint is required")
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
	}, nil
}

// searchResponse is the list=search API shape.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Search returns ranked candidates for a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]ports.SearchHit, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"format":   {"json"},
	}

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	hits := make([]ports.SearchHit, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		hits = append(hits, ports.SearchHit{
			Title:   hit.Title,
			Snippet: reHTMLTag.ReplaceAllString(hit.Snippet, ""),
		})
	}
	return hits, nil
}

// detailResponse is the prop=extracts|description|info|categories API shape.
type detailResponse struct {
	Query struct {
		Pages map[string]struct {
			Title       string `json:"title"`
			Extract     string `json:"extract"`
			Description string `json:"description"`
			FullURL     string `json:"fullurl"`
			Categories  []struct {
				Title string `json:"title"`
			} `json:"categories"`
			Missing *string `json:"missing,omitempty"`
		} `json:"pages"`
	} `json:"query"`
}

// Detail fetches the intro extract, short description, canonical URL, and
// categories for a candidate title.
func (c *Client) Detail(ctx context.Context, title string) (*ports.PageDetail, error) {
	params := url.Values{
		"action":      {"query"},
		"titles":      {title},
		"prop":        {"extracts|description|info|categories"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"inprop":      {"url"},
		"cllimit":     {"10"},
		"redirects":   {"1"},
		"format":      {"json"},
	}

	var resp detailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("fetching detail for %q: %w", title, err)
	}

	for _, page := range resp.Query.Pages {
		if page.Missing != nil {
			continue
		}
		detail := &ports.PageDetail{
			Title:       page.Title,
			Description: page.Description,
			Extract:     page.Extract,
			URL:         page.FullURL,
		}
		for _, cat := range page.Categories {
			detail.Categories = append(detail.Categories, cat.Title)
		}
		return detail, nil
	}
	return nil, fmt.Errorf("page %q not found", title)
}

// get performs one API call and decodes the JSON response.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "chrono-core/0.1 (https://github.com/ersonp/chrono-core)")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
