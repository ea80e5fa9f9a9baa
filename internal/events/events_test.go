// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nathanprobert/smartscore-api/internal/config"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

func TestTopic(t *testing.T) {
	tests := []struct {
		prefix string
		typ    models.ChangeType
		want   string
	}{
		{"smartscore.players", models.ChangePlayersUploaded, "smartscore.players.uploaded"},
		{"smartscore.players.", models.ChangeGameDeleted, "smartscore.players.game_deleted"},
		{"", models.ChangeScoredBackfill, "smartscore.players.scored_backfilled"},
		{"dev.events", models.ChangePlayersUploaded, "dev.events.uploaded"},
	}
	for _, tt := range tests {
		if got := Topic(tt.prefix, tt.typ); got != tt.want {
			t.Errorf("Topic(%q, %q) = %q, want %q", tt.prefix, tt.typ, got, tt.want)
		}
	}
}

func TestTopics(t *testing.T) {
	topics := Topics("x")
	if len(topics) != len(ChangeTypes) {
		t.Fatalf("len = %d, want %d", len(topics), len(ChangeTypes))
	}
	for _, topic := range topics {
		if !strings.HasPrefix(topic, "x.") {
			t.Errorf("topic %q missing prefix", topic)
		}
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	event := models.ChangeEvent{
		EventID:    "e-1",
		Type:       models.ChangeGameDeleted,
		Date:       "2024-01-15",
		Teams:      []string{"TOR", "MTL"},
		Count:      3,
		OccurredAt: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := Marshal(event)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"event_id":"e-1"`) {
		t.Errorf("payload = %s", data)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.EventID != event.EventID || got.Count != 3 || len(got.Teams) != 2 || !got.OccurredAt.Equal(event.OccurredAt) {
		t.Errorf("Unmarshal() = %+v", got)
	}
}

func TestMarshal_RejectsIncompleteEvent(t *testing.T) {
	if _, err := Marshal(models.ChangeEvent{Type: models.ChangePlayersUploaded}); err == nil {
		t.Error("expected error for missing event_id")
	}
	if _, err := Marshal(models.ChangeEvent{EventID: "x"}); err == nil {
		t.Error("expected error for missing type")
	}
}

func TestUnmarshal_InvalidJSON(t *testing.T) {
	if _, err := Unmarshal([]byte("{")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestNATSConfigFrom(t *testing.T) {
	cfg := NATSConfigFrom(config.EventsConfig{
		TopicPrefix:    "smartscore.players",
		NATSURL:        "nats://nats:4222",
		EmbeddedServer: true,
		StoreDir:       "/tmp/nats",
	})
	if cfg.StreamName != "SMARTSCORE_PLAYERS" {
		t.Errorf("StreamName = %q", cfg.StreamName)
	}
	if len(cfg.Subjects) != 1 || cfg.Subjects[0] != "smartscore.players.>" {
		t.Errorf("Subjects = %v", cfg.Subjects)
	}
	if cfg.URL != "nats://nats:4222" || !cfg.EmbeddedServer || cfg.StoreDir != "/tmp/nats" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestNewBus_UnknownTransport(t *testing.T) {
	_, err := NewBus(config.EventsConfig{Transport: "kafka"}, nil)
	if !errors.Is(err, ErrUnknownTransport) {
		t.Errorf("err = %v, want ErrUnknownTransport", err)
	}
}

func TestNewBus_GoChannel(t *testing.T) {
	bus, err := NewBus(config.EventsConfig{Transport: TransportGoChannel}, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	if bus.Transport != TransportGoChannel || bus.Publisher == nil || bus.Subscriber == nil {
		t.Errorf("bus = %+v", bus)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
