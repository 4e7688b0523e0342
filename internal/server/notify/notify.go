// Package notify fans out "collection changed" signals to document
// listeners.
//
// A signal carries only a topic (owner/collection); listeners reload the
// collection themselves, so signals may be coalesced freely.
package notify

import (
	"context"
	"sync"
)

// Notifier publishes and subscribes to change signals.
type Notifier interface {
	Publish(ctx context.Context, topic string) error
	// Subscribe returns a channel that receives at least one value after
	// every Publish on topic, and a function that cancels the subscription.
	Subscribe(topic string) (<-chan struct{}, func())
}

// Topic is the notification topic of one owner's collection.
func Topic(owner, collection string) string {
	return owner + "/" + collection
}

// Hub is the in-process Notifier.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{}
}

var _ Notifier = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

func (h *Hub) Publish(_ context.Context, topic string) error {
	h.Notify(topic)
	return nil
}

// Notify wakes every subscriber of topic without blocking.
func (h *Hub) Notify(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) Subscribe(topic string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]chan struct{})
	}
	h.subs[topic][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[topic], id)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
		})
	}
}

// Subscribers reports the number of live subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}
