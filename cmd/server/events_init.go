// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package main

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/nathanprobert/smartscore-api/internal/config"
	"github.com/nathanprobert/smartscore-api/internal/events"
	"github.com/nathanprobert/smartscore-api/internal/logging"
)

// initEvents builds the change-event bus and the publisher handed to the
// store. Both are nil when events are disabled.
func initEvents(cfg config.EventsConfig) (*events.Bus, *events.Publisher, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Player change events disabled (EVENTS_ENABLED=false)")
		return nil, nil, nil
	}

	bus, err := events.NewBus(cfg, watermill.NewSlogLogger(logging.NewSlogLogger()))
	if err != nil {
		return nil, nil, fmt.Errorf("create event bus: %w", err)
	}

	breaker := events.DefaultBreakerConfig("player-events")
	if cfg.BreakerFailureThreshold > 0 {
		breaker.FailureThreshold = cfg.BreakerFailureThreshold
	}
	if cfg.BreakerTimeout > 0 {
		breaker.Timeout = cfg.BreakerTimeout
	}

	pub, err := events.NewPublisher(bus.Publisher, events.PublisherConfig{
		TopicPrefix: cfg.TopicPrefix,
		Breaker:     breaker,
	})
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("create event publisher: %w", err), bus.Close())
	}

	logging.Info().
		Str("transport", bus.Transport).
		Str("topic_prefix", cfg.TopicPrefix).
		Msg("Player change events enabled")
	return bus, pub, nil
}
