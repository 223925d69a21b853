// Package eventbus is a small in-memory publish/subscribe bus. The chat
// service publishes one event per completed exchange so side consumers
// (the REPL transcript logger, future analytics) can observe traffic
// without sitting on the request path.
//
//   - Buffered channel per subscriber (buffer=64).
//   - Publish never blocks: a full subscriber buffer drops the event.
//   - No persistence; events are fire-and-forget.
package eventbus

import "sync"

// TopicExchange is published after every persisted chat exchange.
const TopicExchange = "chat.exchange"

// Event is a single published message.
type Event struct {
	Topic   string
	Payload any
}

// EventBus is the interface for publishing and subscribing to topics.
type EventBus interface {
	Publish(topic string, payload any)
	Subscribe(topic string) <-chan Event
}

const subscriberBuffer = 64

// Bus is the in-memory implementation of EventBus.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// New returns an empty in-memory Bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]chan Event)}
}

// Subscribe registers a subscriber for topic and returns its channel.
// The caller must keep draining the channel or later events are dropped.
func (b *Bus) Subscribe(topic string) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers an Event to every subscriber of topic without blocking.
func (b *Bus) Publish(topic string, payload any) {
	evt := Event{Topic: topic, Payload: payload}
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
			// subscriber is behind; drop
		}
	}
}
