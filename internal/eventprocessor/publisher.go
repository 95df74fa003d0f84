// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/breaker"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/logging"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/metrics"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

// Publisher wraps a Watermill publisher with rate limiting and circuit
// breaker protection. It implements recommend.ReplaceListener.
type Publisher struct {
	publisher message.Publisher
	breaker   *breaker.Breaker
	limiter   *rate.Limiter
	topic     string

	mu     sync.RWMutex
	closed bool
}

// NewPublisher connects a Watermill NATS publisher to cfg.URL.
func NewPublisher(cfg PublisherConfig, logger watermill.LoggerAdapter) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = watermill.NewSlogLogger(logging.NewSlogLogger())
	}

	// NATS connection options with reconnection handling
	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.ReconnectBufSize(cfg.ReconnectBuffer),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled: true,
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return NewPublisherWithBackend(pub, cfg)
}

// NewPublisherWithBackend wraps an existing Watermill publisher.
func NewPublisherWithBackend(pub message.Publisher, cfg PublisherConfig) (*Publisher, error) {
	if pub == nil {
		return nil, ErrNilPublisher
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Publisher{
		publisher: pub,
		breaker:   breaker.New("nats-publisher"),
		topic:     cfg.Topic,
	}
	if cfg.Rate > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)
	}
	return p, nil
}

// Topic returns the subject events are published to.
func (p *Publisher) Topic() string {
	return p.topic
}

// BreakerState reports the circuit breaker state.
func (p *Publisher) BreakerState() string {
	return p.breaker.State()
}

// Publish sends msg to the configured topic. The message UUID is used as
// Nats-Msg-Id when none is set.
func (p *Publisher) Publish(ctx context.Context, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if p.limiter != nil && !p.limiter.Allow() {
		metrics.RecordEventPublishFailure(p.topic, "rate_limited")
		return ErrRateLimited
	}

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}
	msg.SetContext(ctx)

	err := p.breaker.Run(func() error {
		return p.publisher.Publish(p.topic, msg)
	})
	if err != nil {
		reason := "error"
		if breaker.IsRejected(err) {
			reason = "circuit_open"
		}
		metrics.RecordEventPublishFailure(p.topic, reason)
		return fmt.Errorf("publish %s: %w", msg.UUID, err)
	}

	metrics.RecordEventPublished(p.topic)
	return nil
}

// PublishEvent serializes and publishes an event.
func (p *Publisher) PublishEvent(ctx context.Context, event *InteractionsReplaced) error {
	data, err := SerializeEvent(event)
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("event_type", event.EventType)
	msg.Metadata.Set("user_id", event.UserID)

	return p.Publish(ctx, msg)
}

// InteractionsReplaced publishes an event for a completed replace. Failures
// are logged and dropped.
func (p *Publisher) InteractionsReplaced(ctx context.Context, userID string, records []recommend.InteractionRecord) {
	event := NewInteractionsReplaced(userID, records)
	if err := p.PublishEvent(ctx, event); err != nil {
		ev := logging.Ctx(ctx).Warn()
		if errors.Is(err, ErrRateLimited) {
			ev = logging.Ctx(ctx).Debug()
		}
		ev.Err(err).
			Str("user_id", userID).
			Str("event_id", event.EventID).
			Msg("interaction event dropped")
	}
}

// Close shuts down the underlying publisher. It is safe to call twice.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}

var _ recommend.ReplaceListener = (*Publisher)(nil)
