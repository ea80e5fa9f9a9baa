// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nathanprobert/smartscore-api/internal/events"
	"github.com/nathanprobert/smartscore-api/internal/metrics"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

func TestEventAuditService_CountsEvents(t *testing.T) {
	bus := events.NewGoChannelBus(nil)
	t.Cleanup(func() { _ = bus.Close() })

	svc := NewEventAuditService(bus.Subscriber, "audit.players")
	if svc.String() != "event-audit" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	pub, err := events.NewPublisher(bus.Publisher, events.PublisherConfig{TopicPrefix: "audit.players"})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}

	counter := metrics.PlayerEventsTotal.WithLabelValues(string(models.ChangeGameDeleted))
	before := testutil.ToFloat64(counter)

	deadline := time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(counter) == before {
		if time.Now().After(deadline) {
			t.Fatal("event was not counted")
		}
		_ = pub.PublishChange(ctx, models.ChangeEvent{
			EventID:    "evt-1",
			Type:       models.ChangeGameDeleted,
			Date:       "2024-01-15",
			Teams:      []string{"TOR", "MTL"},
			Count:      3,
			OccurredAt: time.Now().UTC(),
		})
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestEventAuditService_NoSubscriber(t *testing.T) {
	if err := NewEventAuditService(nil, "x").Serve(context.Background()); err == nil {
		t.Error("expected error without subscriber")
	}
}
