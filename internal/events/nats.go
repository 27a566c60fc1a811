package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	reviewUpdatedSubject = "conference.review.updated"

	natsMaxReconnects = 10
	natsReconnectWait = 2 * time.Second
)

// NATSBus carries review-updated events over NATS so several service
// instances invalidate their resolver caches together.
type NATSBus struct {
	nc *nats.Conn
}

var _ Bus = (*NATSBus)(nil)

// NewNATSBus connects to the given NATS URL with reconnect handling.
func NewNATSBus(natsURL string) (*NATSBus, error) {
	opts := []nats.Option{
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSBus{nc: nc}, nil
}

func (b *NATSBus) PublishReviewUpdated(ctx context.Context, event ReviewUpdated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal review-updated event: %w", err)
	}

	if err := b.nc.Publish(reviewUpdatedSubject, payload); err != nil {
		return fmt.Errorf("publish review-updated event: %w", err)
	}

	log.Debug().
		Str("event_id", event.EventID.String()).
		Str("subject", reviewUpdatedSubject).
		Msg("published review-updated event")
	return nil
}

func (b *NATSBus) SubscribeReviewUpdated(handler Handler) (func(), error) {
	sub, err := b.nc.Subscribe(reviewUpdatedSubject, func(msg *nats.Msg) {
		var event ReviewUpdated
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject).Msg("failed to decode review-updated event")
			return
		}
		handler(event)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", reviewUpdatedSubject, err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			log.Error().Err(err).Msg("failed to unsubscribe from review-updated events")
		}
	}, nil
}

// Close closes the underlying NATS connection.
func (b *NATSBus) Close() {
	b.nc.Close()
}
