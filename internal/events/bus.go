// Package events provides a small in-process event bus for decoupling the
// ingestion pipeline from UI-facing notifications.
package events

import (
	"log"
	"sync"
)

// Type identifies the kind of event.
type Type string

const (
	// TypeNewMerchant fires when a transaction was stored under a raw
	// merchant token the user has never named.
	TypeNewMerchant Type = "new_merchant"
	// TypeDataChanged fires after any write that should refresh cached
	// views (ingest, relabel, deletes).
	TypeDataChanged Type = "data_changed"
)

// Event is one published occurrence. Payload fields are set per type.
type Event struct {
	Type    Type
	OwnerID string

	// New-merchant payload
	RawToken      string
	SuggestedName string
	Amount        float64
	TransactionID string
}

// Bus fans events out to subscribers over bounded channels. Publishing never
// blocks the ingestion path: when a subscriber's buffer is full the event is
// dropped and logged. Subscribers are expected to treat events as hints and
// re-query the store for truth.
type Bus struct {
	mu      sync.RWMutex
	subs    []chan Event
	bufSize int
}

// NewBus creates a bus whose subscriber channels buffer up to bufSize events.
func NewBus(bufSize int) *Bus {
	if bufSize <= 0 {
		bufSize = 64
	}
	return &Bus{bufSize: bufSize}
}

// Subscribe registers a new subscriber and returns its receive channel.
// Callers that stop consuming must Unsubscribe, otherwise their buffer
// fills and publishes to them are dropped forever.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufSize)
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. The argument must
// be a channel previously returned by Subscribe; unknown channels are a no-op.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Publish delivers the event to every subscriber without blocking.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			log.Printf("[Events] dropping %s event for owner %s: subscriber buffer full", event.Type, event.OwnerID)
		}
	}
}
