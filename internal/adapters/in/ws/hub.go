// Package ws provides the realtime fan-out adapter: an in-process hub
// implementing the Broadcaster port plus the websocket subscription gateway
// that joins authenticated connections to groups.
package ws

import (
	"log/slog"
	"sync"

	"broker/internal/core/ports"
)

// subscriberBufferSize bounds the per-connection event queue. A subscriber
// that cannot drain this many events loses the overflow rather than stalling
// publishers.
const subscriberBufferSize = 32

type subscriber struct {
	group  string
	events chan ports.Event
}

// Hub routes published events to group subscribers. Publishing never blocks:
// each subscriber has a buffered channel and overflow is dropped with a log
// line. Publishing to a group without subscribers is a no-op.
type Hub struct {
	logger *slog.Logger

	mu     sync.RWMutex
	groups map[string]map[*subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "ws_hub"),
		groups: make(map[string]map[*subscriber]struct{}),
	}
}

// Publish delivers the event to every current subscriber of the group.
func (h *Hub) Publish(group string, event ports.Event) {
	h.mu.RLock()
	subscribers := make([]*subscriber, 0, len(h.groups[group]))
	for sub := range h.groups[group] {
		subscribers = append(subscribers, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subscribers {
		select {
		case sub.events <- event:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				"group", group, "event_type", event.Type)
		}
	}
}

// Join subscribes to one group and returns the subscription handle. The
// caller owns the handle and must Close it when the connection ends.
func (h *Hub) Join(group string) *Subscription {
	sub := &subscriber{
		group:  group,
		events: make(chan ports.Event, subscriberBufferSize),
	}

	h.mu.Lock()
	if h.groups[group] == nil {
		h.groups[group] = make(map[*subscriber]struct{})
	}
	h.groups[group][sub] = struct{}{}
	h.mu.Unlock()

	return &Subscription{hub: h, sub: sub}
}

func (h *Hub) leave(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[sub.group]
	if !ok {
		return
	}
	delete(members, sub)
	if len(members) == 0 {
		delete(h.groups, sub.group)
	}
}

// SubscriberCount reports the current membership of one group.
func (h *Hub) SubscriberCount(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Subscription is one connection's membership in one group.
type Subscription struct {
	hub  *Hub
	sub  *subscriber
	once sync.Once
}

// Events returns the channel of events published to the group. The channel
// is never closed by the hub; stop reading after Close.
func (s *Subscription) Events() <-chan ports.Event {
	return s.sub.events
}

// Close removes the subscription from the hub. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.leave(s.sub)
	})
}
