package rag_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/triage-gateway/external"
	"github.com/caremesh/triage-gateway/internal/rag"
	"github.com/caremesh/triage-gateway/internal/store"
)

// stubSearch is a scriptable SearchService.
type stubSearch struct {
	docs  []external.Document
	err   error
	calls int
}

func (s *stubSearch) Search(ctx context.Context, query string, topK int) ([]external.Document, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func (s *stubSearch) Index() string { return "medical-kb" }

// countingMetrics counts cache hits and misses.
type countingMetrics struct{ hits, misses int }

func (m *countingMetrics) RecordCacheHit()  { m.hits++ }
func (m *countingMetrics) RecordCacheMiss() { m.misses++ }

func testDocs() []external.Document {
	return []external.Document{
		{ID: "1", Title: "Hypertension Overview", Content: "Blood pressure basics.", Category: "conditions", Source: "internal-kb"},
		{ID: "2", Title: "Medication Safety", Content: "Drug interaction basics.", Category: "medications", Source: "internal-kb"},
	}
}

func TestRetriever_Retrieve_Success(t *testing.T) {
	search := &stubSearch{docs: testDocs()}
	r := rag.NewRetriever(search, nil, 3)

	result := r.Retrieve(context.Background(), "blood pressure question")

	assert.False(t, result.Degraded)
	assert.Len(t, result.Documents, 2)
	assert.Equal(t, 1, search.calls)
}

func TestRetriever_Retrieve_SearchFailureDegrades(t *testing.T) {
	search := &stubSearch{err: errors.New("connection refused")}
	r := rag.NewRetriever(search, nil, 3)

	result := r.Retrieve(context.Background(), "blood pressure question")

	assert.True(t, result.Degraded)
	assert.Empty(t, result.Documents)
}

func TestRetriever_Retrieve_EmptyResultIsNotDegraded(t *testing.T) {
	search := &stubSearch{docs: nil}
	r := rag.NewRetriever(search, nil, 3)

	result := r.Retrieve(context.Background(), "obscure question")

	assert.False(t, result.Degraded, "healthy empty result is not a degradation")
	assert.Empty(t, result.Documents)
}

func TestRetriever_Retrieve_Disabled(t *testing.T) {
	r := rag.NewRetriever(nil, nil, 3)

	assert.False(t, r.Enabled())
	result := r.Retrieve(context.Background(), "anything")
	assert.Empty(t, result.Documents)
	assert.False(t, result.Degraded)
}

func TestRetriever_Retrieve_TruncatesToTopK(t *testing.T) {
	search := &stubSearch{docs: append(testDocs(), external.Document{ID: "3", Title: "Third"})}
	r := rag.NewRetriever(search, nil, 2)

	result := r.Retrieve(context.Background(), "question")

	assert.Len(t, result.Documents, 2)
}

func TestRetriever_Retrieve_CacheHitSkipsCollaborator(t *testing.T) {
	search := &stubSearch{docs: testDocs()}
	cache := store.NewMemoryStore(time.Minute)
	defer cache.Close()
	r := rag.NewRetriever(search, cache, 3)
	metrics := &countingMetrics{}
	r.SetMetrics(metrics)

	first := r.Retrieve(context.Background(), "Blood Pressure Question")
	second := r.Retrieve(context.Background(), "  blood pressure question ")

	require.Equal(t, 1, search.calls, "second lookup must come from cache")
	assert.Equal(t, first.Documents, second.Documents)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestRetriever_Retrieve_EmptyResultNotCached(t *testing.T) {
	search := &stubSearch{docs: nil}
	cache := store.NewMemoryStore(time.Minute)
	defer cache.Close()
	r := rag.NewRetriever(search, cache, 3)

	r.Retrieve(context.Background(), "question")
	r.Retrieve(context.Background(), "question")

	assert.Equal(t, 2, search.calls)
	assert.Equal(t, 0, cache.Len())
}
