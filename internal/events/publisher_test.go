// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

// failingPublisher always returns err.
type failingPublisher struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *failingPublisher) Publish(string, ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *failingPublisher) Close() error { return nil }

func testEvent(typ models.ChangeType) models.ChangeEvent {
	return models.ChangeEvent{
		EventID:    "evt-" + string(typ),
		Type:       typ,
		Date:       "2024-01-15",
		Count:      2,
		OccurredAt: time.Now().UTC(),
	}
}

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestNewPublisher_NilTransport(t *testing.T) {
	if _, err := NewPublisher(nil, PublisherConfig{}); !errors.Is(err, ErrNilPublisher) {
		t.Errorf("err = %v, want ErrNilPublisher", err)
	}
}

func TestPublisher_PublishChange(t *testing.T) {
	bus := NewGoChannelBus(nil)
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	messages, err := bus.Subscriber.Subscribe(ctx, "smartscore.players.uploaded")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub, err := NewPublisher(bus.Publisher, PublisherConfig{TopicPrefix: "smartscore.players"})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}

	if err := pub.PublishChange(ctx, testEvent(models.ChangePlayersUploaded)); err != nil {
		t.Fatalf("PublishChange() error = %v", err)
	}

	msg := receive(t, messages)
	if msg.UUID != "evt-uploaded" {
		t.Errorf("UUID = %q", msg.UUID)
	}
	if msg.Metadata.Get(MetadataType) != "uploaded" || msg.Metadata.Get(MetadataDate) != "2024-01-15" {
		t.Errorf("metadata = %v", msg.Metadata)
	}
	event, err := Unmarshal(msg.Payload)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if event.Count != 2 {
		t.Errorf("Count = %d", event.Count)
	}
}

func TestPublisher_Closed(t *testing.T) {
	pub, err := NewPublisher(&failingPublisher{}, PublisherConfig{})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	err = pub.PublishChange(context.Background(), testEvent(models.ChangeGameDeleted))
	if !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("err = %v, want ErrPublisherClosed", err)
	}
}

func TestPublisher_InvalidEventNotPublished(t *testing.T) {
	transport := &failingPublisher{}
	pub, _ := NewPublisher(transport, PublisherConfig{})

	if err := pub.PublishChange(context.Background(), models.ChangeEvent{}); err == nil {
		t.Error("expected validation error")
	}
	if transport.calls != 0 {
		t.Errorf("transport called %d times", transport.calls)
	}
}

func TestPublisher_BreakerOpensOnFailures(t *testing.T) {
	boom := errors.New("broker down")
	transport := &failingPublisher{err: boom}
	pub, _ := NewPublisher(transport, PublisherConfig{
		Breaker: BreakerConfig{Name: "test-publish", FailureThreshold: 2, Timeout: time.Minute},
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := pub.PublishChange(ctx, testEvent(models.ChangeScoredBackfill)); !errors.Is(err, boom) {
			t.Fatalf("attempt %d err = %v, want %v", i, err, boom)
		}
	}
	if pub.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %q, want open", pub.BreakerState())
	}

	if err := pub.PublishChange(ctx, testEvent(models.ChangeScoredBackfill)); err == nil {
		t.Error("expected breaker error")
	}
	if transport.calls != 2 {
		t.Errorf("transport calls = %d, want 2", transport.calls)
	}
}
