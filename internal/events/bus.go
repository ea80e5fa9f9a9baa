// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/nathanprobert/smartscore-api/internal/config"
)

// Transport names accepted in events.transport.
const (
	TransportGoChannel = "gochannel"
	TransportNATS      = "nats"
)

// Bus is a publisher/subscriber pair for one transport.
type Bus struct {
	Transport  string
	Publisher  message.Publisher
	Subscriber message.Subscriber

	closers []func() error
}

// NewGoChannelBus returns an in-process bus. Messages published while nobody
// is subscribed are dropped.
func NewGoChannelBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)

	return &Bus{
		Transport:  TransportGoChannel,
		Publisher:  ch,
		Subscriber: ch,
		closers:    []func() error{ch.Close},
	}
}

// NewBus builds the bus selected by cfg.Transport.
func NewBus(cfg config.EventsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	switch cfg.Transport {
	case "", TransportGoChannel:
		return NewGoChannelBus(logger), nil
	case TransportNATS:
		return NewNATSBus(NATSConfigFrom(cfg), logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}

// Close shuts down the bus in reverse order of construction.
func (b *Bus) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
