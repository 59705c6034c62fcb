package external_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/caremesh/triage-gateway/external"
)

const searchResponse = `{
	"value": [
		{"@search.score": 2.5, "id": "doc1", "title": "Hypertension Overview", "content": "Blood pressure basics.", "category": "conditions", "source": "internal-kb"},
		{"@search.score": 1.2, "id": "doc2", "title": "Medication Safety", "content": "Interaction basics.", "category": "medications", "source": "internal-kb"}
	]
}`

func newSearchClient(t *testing.T, endpoint string) *external.SearchClient {
	t.Helper()
	c, err := external.NewSearchClient(external.SearchClientConfig{
		Endpoint: endpoint,
		APIKey:   "search-key",
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestSearchClient_Search(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/medical-kb/docs/search", r.URL.Path)
		assert.Equal(t, "2023-11-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "search-key", r.Header.Get("api-key"))
		w.Write([]byte(searchResponse))
	}))
	t.Cleanup(srv.Close)

	c := newSearchClient(t, srv.URL)
	docs, err := c.Search(context.Background(), "blood pressure", 3)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "doc1", docs[0].ID)
	assert.Equal(t, "Hypertension Overview", docs[0].Title)
	assert.InDelta(t, 2.5, docs[0].Score, 0.001)
	assert.Equal(t, "medications", docs[1].Category)

	assert.Equal(t, "blood pressure", gjson.GetBytes(captured, "search").String())
	assert.Equal(t, int64(3), gjson.GetBytes(captured, "top").Int())
}

func TestSearchClient_Search_StopsAtTopK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchResponse))
	}))
	t.Cleanup(srv.Close)

	c := newSearchClient(t, srv.URL)
	docs, err := c.Search(context.Background(), "blood pressure", 1)
	require.NoError(t, err)

	assert.Len(t, docs, 1)
}

func TestSearchClient_Search_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "bad key"}`))
	}))
	t.Cleanup(srv.Close)

	c := newSearchClient(t, srv.URL)
	_, err := c.Search(context.Background(), "blood pressure", 3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestSearchClient_EnsureIndex(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/indexes/medical-kb", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	c := newSearchClient(t, srv.URL)
	require.NoError(t, c.EnsureIndex(context.Background()))

	assert.Equal(t, "medical-kb", gjson.GetBytes(captured, "name").String())
	assert.Equal(t, "id", gjson.GetBytes(captured, "fields.0.name").String())
	assert.True(t, gjson.GetBytes(captured, "fields.0.key").Bool())
}

func TestSearchClient_UploadDocuments(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		assert.Equal(t, "/indexes/medical-kb/docs/index", r.URL.Path)
		w.Write([]byte(`{"value": []}`))
	}))
	t.Cleanup(srv.Close)

	c := newSearchClient(t, srv.URL)
	err := c.UploadDocuments(context.Background(), external.SeedDocuments())
	require.NoError(t, err)

	values := gjson.GetBytes(captured, "value").Array()
	assert.Equal(t, len(external.SeedDocuments()), len(values))
	assert.Equal(t, "mergeOrUpload", values[0].Get("\\@search\\.action").String())
	assert.NotEmpty(t, values[0].Get("id").String())
}

func TestSeedDocuments_WellFormed(t *testing.T) {
	docs := external.SeedDocuments()

	require.NotEmpty(t, docs)
	seen := make(map[string]bool)
	for _, d := range docs {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.Content)
		assert.NotEmpty(t, d.Category)
		assert.False(t, seen[d.ID], "duplicate seed document ID %s", d.ID)
		seen[d.ID] = true
	}
}
