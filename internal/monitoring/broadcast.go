// Package monitoring - broadcast.go fans telemetry records out to live
// subscribers (the /telemetry/stream websocket endpoint).
//
// DESIGN: Best-effort delivery. Subscribers get a buffered channel; a
// subscriber that falls behind has records dropped rather than blocking
// the pipeline.
package monitoring

import "sync"

const subscriberBuffer = 16

// Broadcaster is a Sink that fans records out to live subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan *Record]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan *Record]struct{})}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called when the subscriber disconnects.
func (b *Broadcaster) Subscribe() (<-chan *Record, func()) {
	ch := make(chan *Record, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Append delivers the record to every subscriber without blocking.
func (b *Broadcaster) Append(rec *Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- rec:
		default: // slow subscriber, drop
		}
	}
	return nil
}

// Subscribers returns the current subscriber count.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close disconnects all subscribers.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	return nil
}
