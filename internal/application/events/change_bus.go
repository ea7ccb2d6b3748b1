package events

import (
	"sync"
)

// ChangeBus fans out payload-free "state changed" pulses to subscribers.
// Thread-safe, supports multiple subscribers.
//
// This is deliberately not an event log: the contract is fire-and-forget.
// Each subscriber channel is buffered with size 1 and publishes are
// non-blocking, so rapid mutations coalesce into a single pending pulse.
// Consumers re-derive state by reading snapshots, never by accumulating
// event payloads.
type ChangeBus struct {
	mu          sync.RWMutex
	subscribers []chan struct{}
}

// NewChangeBus creates a bus with no subscribers
func NewChangeBus() *ChangeBus {
	return &ChangeBus{}
}

// Publish signals that some simulation state changed. Never blocks: a
// subscriber with a pulse already pending simply keeps the one it has.
func (b *ChangeBus) Publish() {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- struct{}{}:
		default:
			// Pulse already pending; coalesce
		}
	}
}

// Subscribe registers a new listener. The caller must Unsubscribe when done.
func (b *ChangeBus) Subscribe() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan struct{}, 1)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel
func (b *ChangeBus) Unsubscribe(ch <-chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, c := range b.subscribers {
		if c == ch {
			close(c)
			b.subscribers[i] = b.subscribers[len(b.subscribers)-1]
			b.subscribers = b.subscribers[:len(b.subscribers)-1]
			return
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
// Useful for testing and monitoring.
func (b *ChangeBus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
