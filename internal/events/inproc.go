package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// InProcBus dispatches events to subscribers in the publishing goroutine.
// Single-process deployments use this; multi-instance ones use NATSBus.
type InProcBus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]Handler
}

var _ Bus = (*InProcBus)(nil)

func NewInProcBus() *InProcBus {
	return &InProcBus{handlers: make(map[int]Handler)}
}

// PublishReviewUpdated invokes every subscribed handler synchronously, so a
// publisher observes all cache updates before its call returns.
func (b *InProcBus) PublishReviewUpdated(ctx context.Context, event ReviewUpdated) error {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	log.Debug().
		Str("event_id", event.EventID.String()).
		Int64("article_id", event.ArticleID).
		Int("subscribers", len(handlers)).
		Msg("publishing review-updated event")

	for _, h := range handlers {
		h(event)
	}
	return nil
}

func (b *InProcBus) SubscribeReviewUpdated(handler Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}, nil
}
