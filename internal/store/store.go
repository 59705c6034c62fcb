// Package store provides a TTL cache for retrieval results.
//
// The knowledge retriever caches query -> serialized document sets here so
// repeated clinical questions within the TTL window skip the search
// collaborator entirely.
//
// Currently only MemoryStore is implemented. For multi-instance
// deployments, implement Store with Redis or similar.
package store

import (
	"sync"
	"time"
)

// DefaultTTL is used when config leaves the cache TTL unset.
const DefaultTTL = 10 * time.Minute

// Store defines the cache interface.
type Store interface {
	// Set stores a value under key until the TTL elapses.
	Set(key, value string) error

	// Get retrieves a live value by key.
	Get(key string) (string, bool)

	// Delete removes a value by key.
	Delete(key string) error

	// Close cleans up resources.
	Close() error
}

// MemoryStore is a simple in-memory implementation of Store.
type MemoryStore struct {
	data     map[string]entry
	mu       sync.RWMutex
	ttl      time.Duration
	stopChan chan struct{}
	stopped  bool
}

type entry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		data:     make(map[string]entry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	go s.cleanup()

	return s
}

// Set stores a value with the store's TTL.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{value: value, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// Get retrieves a value; expired entries read as absent.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Delete removes a value.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of entries, including not-yet-swept expired ones.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.stopChan)
	}
	return nil
}

// cleanup periodically sweeps expired entries.
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for k, e := range s.data {
				if now.After(e.expiresAt) {
					delete(s.data, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
