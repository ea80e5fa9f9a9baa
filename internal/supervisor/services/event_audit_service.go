// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package services

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/nathanprobert/smartscore-api/internal/events"
	"github.com/nathanprobert/smartscore-api/internal/logging"
	"github.com/nathanprobert/smartscore-api/internal/metrics"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// EventAuditService consumes every player change event, writes an audit
// log line for it and counts it by type.
type EventAuditService struct {
	subscriber message.Subscriber
	prefix     string
}

// NewEventAuditService consumes the change topics under prefix from sub.
func NewEventAuditService(sub message.Subscriber, prefix string) *EventAuditService {
	return &EventAuditService{subscriber: sub, prefix: prefix}
}

// Serve implements suture.Service.
func (s *EventAuditService) Serve(ctx context.Context) error {
	if s.subscriber == nil {
		return fmt.Errorf("event audit: no subscriber")
	}
	logging.Info().Str("prefix", s.prefix).Msg("Event audit consumer started")
	return events.Consume(ctx, s.subscriber, s.prefix, s.audit)
}

func (s *EventAuditService) audit(_ context.Context, event models.ChangeEvent) error {
	metrics.RecordPlayerEvent(string(event.Type))

	log := logging.WithComponent("event-audit")
	entry := log.Info().
		Str("event_id", event.EventID).
		Str("type", string(event.Type)).
		Int64("count", event.Count).
		Time("occurred_at", event.OccurredAt)
	if event.Date != "" {
		entry = entry.Str("date", event.Date)
	}
	if len(event.Teams) > 0 {
		entry = entry.Strs("teams", event.Teams)
	}
	if event.Type == models.ChangeScoredBackfill {
		entry = entry.Int64("unscored", event.Unscored)
	}
	entry.Msg("Player records changed")
	return nil
}

// String names the service in supervisor logs.
func (s *EventAuditService) String() string {
	return "event-audit"
}
