package notify

import (
	"log/slog"
	"sync"

	"kapkurtar/internal/domain/event"
)

const subscriberBuffer = 64

// Subscription is a cancellable stream of matching events. Cancel closes
// the channel; receivers range over C until then.
type Subscription struct {
	C      <-chan event.Event
	cancel func()
	once   sync.Once
}

func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

type subscriber struct {
	kinds map[event.Kind]struct{}
	ch    chan event.Event
}

func (s *subscriber) wants(k event.Kind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	_, ok := s.kinds[k]
	return ok
}

// Hub fans dispatched events out to in-process subscribers. The external
// delivery collaborator attaches here; the hub knows nothing about
// push/sound/badge channels.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[*subscriber]struct{}),
		logger: logger,
	}
}

// Subscribe returns a stream of events of the given kinds; no kinds means
// all kinds.
func (h *Hub) Subscribe(kinds ...event.Kind) *Subscription {
	sub := &subscriber{
		kinds: make(map[event.Kind]struct{}, len(kinds)),
		ch:    make(chan event.Event, subscriberBuffer),
	}
	for _, k := range kinds {
		sub.kinds[k] = struct{}{}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return &Subscription{
		C: sub.ch,
		cancel: func() {
			h.mu.Lock()
			if _, ok := h.subs[sub]; ok {
				delete(h.subs, sub)
				close(sub.ch)
			}
			h.mu.Unlock()
		},
	}
}

// Publish delivers ev to every matching subscriber. A full subscriber
// buffer drops the event for that subscriber; the outbox row remains the
// durable record.
func (h *Hub) Publish(ev event.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if !sub.wants(ev.Kind) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			h.logger.Warn("notification subscriber buffer full, event dropped",
				"kind", ev.Kind.String(),
				"event_id", ev.ID.String())
		}
	}
}
