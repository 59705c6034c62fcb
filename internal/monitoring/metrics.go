// Package monitoring - metrics.go provides simple counters.
//
// DESIGN: Lightweight in-memory counters for operational metrics:
//   - requests/successes:    Total and successful request counts
//   - prohibited/emergencies: Safety screener outcomes
//   - retrievals/cache_hits:  Knowledge retriever activity
//   - router_failures:        Terminal upstream failures
//
// For production, export these to Prometheus or similar.
package monitoring

import (
	"sync/atomic"
	"time"
)

// MetricsCollector collects operational metrics.
type MetricsCollector struct {
	requests       atomic.Int64
	successes      atomic.Int64
	prohibited     atomic.Int64
	emergencies    atomic.Int64
	retrievals     atomic.Int64
	retrievalFails atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	routerFailures atomic.Int64
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// RecordRequest records a request.
func (mc *MetricsCollector) RecordRequest(success bool, _ time.Duration) {
	mc.requests.Add(1)
	if success {
		mc.successes.Add(1)
	}
}

// RecordProhibited records a safety screener veto.
func (mc *MetricsCollector) RecordProhibited() { mc.prohibited.Add(1) }

// RecordEmergency records an emergency-flagged request.
func (mc *MetricsCollector) RecordEmergency() { mc.emergencies.Add(1) }

// RecordRetrieval records a knowledge retrieval attempt.
func (mc *MetricsCollector) RecordRetrieval(degraded bool) {
	mc.retrievals.Add(1)
	if degraded {
		mc.retrievalFails.Add(1)
	}
}

// RecordCacheHit records a retrieval cache hit.
func (mc *MetricsCollector) RecordCacheHit() { mc.cacheHits.Add(1) }

// RecordCacheMiss records a retrieval cache miss.
func (mc *MetricsCollector) RecordCacheMiss() { mc.cacheMisses.Add(1) }

// RecordRouterFailure records a terminal model router failure.
func (mc *MetricsCollector) RecordRouterFailure() { mc.routerFailures.Add(1) }

// Stats returns current metrics.
func (mc *MetricsCollector) Stats() map[string]int64 {
	return map[string]int64{
		"requests":        mc.requests.Load(),
		"successes":       mc.successes.Load(),
		"prohibited":      mc.prohibited.Load(),
		"emergencies":     mc.emergencies.Load(),
		"retrievals":      mc.retrievals.Load(),
		"retrieval_fails": mc.retrievalFails.Load(),
		"cache_hits":      mc.cacheHits.Load(),
		"cache_misses":    mc.cacheMisses.Load(),
		"router_failures": mc.routerFailures.Load(),
	}
}

// Stop is a no-op for compatibility.
func (mc *MetricsCollector) Stop() {}
