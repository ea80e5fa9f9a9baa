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

type eventLog struct {
	mu     sync.Mutex
	events []models.ChangeEvent
}

func (l *eventLog) handle(_ context.Context, e models.ChangeEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *eventLog) has(typ models.ChangeType) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func (l *eventLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestConsume_DeliversEveryType(t *testing.T) {
	bus := NewGoChannelBus(nil)
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var log eventLog
	done := make(chan error, 1)
	go func() { done <- Consume(ctx, bus.Subscriber, "test.players", log.handle) }()

	pub, _ := NewPublisher(bus.Publisher, PublisherConfig{TopicPrefix: "test.players"})

	// Subscriptions are registered asynchronously; keep publishing the
	// first event until it lands.
	waitFor(t, func() bool {
		_ = pub.PublishChange(ctx, testEvent(models.ChangePlayersUploaded))
		return log.len() > 0
	})
	for _, typ := range []models.ChangeType{models.ChangeGameDeleted, models.ChangeScoredBackfill} {
		if err := pub.PublishChange(ctx, testEvent(typ)); err != nil {
			t.Fatalf("PublishChange(%s) error = %v", typ, err)
		}
	}
	waitFor(t, func() bool {
		return log.has(models.ChangeGameDeleted) && log.has(models.ChangeScoredBackfill)
	})

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Consume() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not return after cancel")
	}
}

func TestConsume_DropsUndecodable(t *testing.T) {
	bus := NewGoChannelBus(nil)
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var log eventLog
	go func() { _ = Consume(ctx, bus.Subscriber, "bad", log.handle) }()

	topic := Topic("bad", models.ChangePlayersUploaded)
	waitFor(t, func() bool {
		_ = bus.Publisher.Publish(topic, message.NewMessage("junk", []byte("not json")))
		good, _ := Marshal(testEvent(models.ChangePlayersUploaded))
		_ = bus.Publisher.Publish(topic, message.NewMessage("good", good))
		return log.len() > 0
	})

	log.mu.Lock()
	defer log.mu.Unlock()
	for _, e := range log.events {
		if e.EventID != "evt-uploaded" {
			t.Errorf("unexpected event %+v", e)
		}
	}
}

func TestConsume_ReturnsWhenBusCloses(t *testing.T) {
	bus := NewGoChannelBus(nil)

	done := make(chan error, 1)
	go func() {
		done <- Consume(context.Background(), bus.Subscriber, "closing", func(context.Context, models.ChangeEvent) error { return nil })
	}()

	// Give Consume a moment to subscribe before closing.
	time.Sleep(50 * time.Millisecond)
	_ = bus.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Consume() returned nil after bus close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not return after bus close")
	}
}

// failingSubscriber serves the first `ok` topics and fails the rest. Each
// served channel closes when its subscription context ends.
type failingSubscriber struct {
	ok     int
	calls  int
	mu     sync.Mutex
	closed int
}

func (s *failingSubscriber) Subscribe(ctx context.Context, _ string) (<-chan *message.Message, error) {
	s.calls++
	if s.calls > s.ok {
		return nil, errors.New("subscribe refused")
	}
	ch := make(chan *message.Message)
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		s.closed++
		s.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

func (s *failingSubscriber) Close() error { return nil }

func TestConsume_SubscribeFailureStopsEarlierTopics(t *testing.T) {
	sub := &failingSubscriber{ok: 1}

	err := Consume(context.Background(), sub, "partial", func(context.Context, models.ChangeEvent) error { return nil })
	if err == nil {
		t.Fatal("Consume() should fail when a subscription is refused")
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed != 1 {
		t.Errorf("closed subscriptions = %d, want 1", sub.closed)
	}
}
