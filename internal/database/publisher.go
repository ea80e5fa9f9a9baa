// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/nathanprobert/smartscore-api/internal/logging"
	"github.com/nathanprobert/smartscore-api/internal/metrics"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// ChangePublisher receives a change event after each successful mutation.
type ChangePublisher interface {
	PublishChange(ctx context.Context, event models.ChangeEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishChange(context.Context, models.ChangeEvent) error { return nil }

// publishChange fills in the event envelope and hands it to the publisher.
// Failures are logged and counted; they never fail the mutation.
func (s *Store) publishChange(ctx context.Context, event models.ChangeEvent) {
	event.EventID = uuid.NewString()
	event.OccurredAt = s.now().UTC()

	if err := s.publisher.PublishChange(ctx, event); err != nil {
		metrics.RecordEventPublishFailure(string(event.Type))
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", string(event.Type)).
			Str("date", event.Date).
			Msg("Failed to publish player change event")
	}
}

// commonDate returns the date shared by every player, or "" when they differ.
func commonDate(players []models.Player) string {
	if len(players) == 0 {
		return ""
	}
	date := players[0].Date()
	for _, p := range players[1:] {
		if p.Date() != date {
			return ""
		}
	}
	return date
}
