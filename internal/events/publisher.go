// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// Message metadata keys set on every published change event.
const (
	MetadataType = "type"
	MetadataDate = "date"
)

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	TopicPrefix string
	Breaker     BreakerConfig
}

// Publisher publishes player change events. It implements
// database.ChangePublisher.
type Publisher struct {
	pub     message.Publisher
	breaker *gobreaker.CircuitBreaker[struct{}]
	prefix  string

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps pub. The underlying publisher is owned by the caller
// (usually a Bus) and is not closed by Publisher.Close.
func NewPublisher(pub message.Publisher, cfg PublisherConfig) (*Publisher, error) {
	if pub == nil {
		return nil, ErrNilPublisher
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = DefaultBreakerConfig("player-events")
	}
	return &Publisher{
		pub:     pub,
		breaker: NewCircuitBreaker[struct{}](cfg.Breaker),
		prefix:  cfg.TopicPrefix,
	}, nil
}

// PublishChange serializes event and publishes it on its type's topic.
func (p *Publisher) PublishChange(ctx context.Context, event models.ChangeEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	data, err := Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set(MetadataType, string(event.Type))
	if event.Date != "" {
		msg.Metadata.Set(MetadataDate, event.Date)
	}
	msg.SetContext(ctx)

	topic := Topic(p.prefix, event.Type)
	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.pub.Publish(topic, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// BreakerState reports the circuit breaker state ("closed", "half-open", "open").
func (p *Publisher) BreakerState() string {
	return p.breaker.State().String()
}

// Close stops further publishing.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

var _ database.ChangePublisher = (*Publisher)(nil)
