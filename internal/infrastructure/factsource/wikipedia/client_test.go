package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/chrono-core/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.SourceConfig{Endpoint: server.URL})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(config.SourceConfig{})
	require.Error(t, err)
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "query", r.URL.Query().Get("action"))
		assert.Equal(t, "search", r.URL.Query().Get("list"))
		assert.Equal(t, "battle of hastings", r.URL.Query().Get("srsearch"))
		assert.Equal(t, "5", r.URL.Query().Get("srlimit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": {
				"search": [
					{"title": "Battle of Hastings", "snippet": "The <span class=\"searchmatch\">Battle</span> of Hastings"},
					{"title": "Hastings", "snippet": "a town in England"}
				]
			}
		}`))
	})

	hits, err := client.Search(context.Background(), "battle of hastings", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Battle of Hastings", hits[0].Title)
	assert.Equal(t, "The Battle of Hastings", hits[0].Snippet, "highlight markup is stripped")
}

func TestClient_Detail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Battle of Hastings", r.URL.Query().Get("titles"))
		assert.Equal(t, "1", r.URL.Query().Get("redirects"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": {
				"pages": {
					"48250": {
						"title": "Battle of Hastings",
						"description": "1066 battle between Norman and English forces",
						"extract": "The Battle of Hastings was fought on 14 October 1066.",
						"fullurl": "https://en.wikipedia.org/wiki/Battle_of_Hastings",
						"categories": [{"title": "Category:1066 in England"}]
					}
				}
			}
		}`))
	})

	detail, err := client.Detail(context.Background(), "Battle of Hastings")
	require.NoError(t, err)
	assert.Equal(t, "Battle of Hastings", detail.Title)
	assert.Equal(t, "1066 battle between Norman and English forces", detail.Description)
	assert.Contains(t, detail.Extract, "14 October 1066")
	assert.Equal(t, "https://en.wikipedia.org/wiki/Battle_of_Hastings", detail.URL)
	assert.Equal(t, []string{"Category:1066 in England"}, detail.Categories)
}

func TestClient_Detail_MissingPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": {
				"pages": {
					"-1": {"title": "No Such Page", "missing": ""}
				}
			}
		}`))
	})

	_, err := client.Detail(context.Background(), "No Such Page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
