// Package rag retrieves reference passages for clinical questions and
// builds the augmented prompt sent to the model router.
//
// DESIGN: Retrieval is best-effort. A search collaborator failure
// (timeout, error, unreachable index) degrades to an empty result plus a
// degraded flag - it never propagates as an error, and the orchestrator
// falls back to the unaugmented sanitized text. Results are cached in a
// TTL store keyed by query so repeated questions skip the collaborator.
package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/caremesh/triage-gateway/external"
	"github.com/caremesh/triage-gateway/internal/store"
)

// DefaultTopK is the default number of passages to retrieve.
const DefaultTopK = 3

// SearchService is the outbound search collaborator boundary.
type SearchService interface {
	Search(ctx context.Context, query string, topK int) ([]external.Document, error)
	Index() string
}

// CacheMetrics receives cache hit/miss counts. Optional.
type CacheMetrics interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// Result is a retrieval outcome. Degraded is set when the collaborator
// failed and the pipeline should fall back to the unaugmented prompt;
// it is not set for a healthy empty result.
type Result struct {
	Documents []external.Document
	Degraded  bool
}

// Retriever fetches top-k reference passages.
type Retriever struct {
	search  SearchService
	cache   store.Store
	topK    int
	metrics CacheMetrics
}

// NewRetriever creates a Retriever. search may be nil when retrieval is
// disabled; cache may be nil to skip caching. topK <= 0 uses DefaultTopK.
func NewRetriever(search SearchService, cache store.Store, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{search: search, cache: cache, topK: topK}
}

// Enabled reports whether a search collaborator is configured.
func (r *Retriever) Enabled() bool { return r.search != nil }

// SetMetrics attaches a cache metrics receiver.
func (r *Retriever) SetMetrics(m CacheMetrics) { r.metrics = m }

// Retrieve fetches up to topK passages for query. Never returns an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) Result {
	if r.search == nil {
		return Result{}
	}

	key := r.cacheKey(query)
	if r.cache != nil {
		if raw, ok := r.cache.Get(key); ok {
			var docs []external.Document
			if err := json.Unmarshal([]byte(raw), &docs); err == nil {
				if r.metrics != nil {
					r.metrics.RecordCacheHit()
				}
				return Result{Documents: docs}
			}
			// Corrupt cache entry: drop it and fall through to the collaborator.
			_ = r.cache.Delete(key)
		}
		if r.metrics != nil {
			r.metrics.RecordCacheMiss()
		}
	}

	docs, err := r.search.Search(ctx, query, r.topK)
	if err != nil {
		log.Warn().Err(err).Str("index", r.search.Index()).Msg("search failed, degrading to no augmentation")
		return Result{Degraded: true}
	}
	if len(docs) > r.topK {
		docs = docs[:r.topK]
	}

	if r.cache != nil && len(docs) > 0 {
		if raw, err := json.Marshal(docs); err == nil {
			_ = r.cache.Set(key, string(raw))
		}
	}

	return Result{Documents: docs}
}

func (r *Retriever) cacheKey(query string) string {
	return fmt.Sprintf("q:%d:%s", r.topK, strings.ToLower(strings.TrimSpace(query)))
}
