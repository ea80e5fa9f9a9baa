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

	"github.com/nathanprobert/smartscore-api/internal/logging"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// Handler processes one change event. A returned error nacks the message.
type Handler func(ctx context.Context, event models.ChangeEvent) error

// Consume subscribes to every change topic under prefix and runs handle for
// each event until ctx is canceled. Undecodable messages are acked and
// dropped.
func Consume(ctx context.Context, sub message.Subscriber, prefix string, handle Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	for _, topic := range Topics(prefix) {
		messages, err := sub.Subscribe(ctx, topic)
		if err != nil {
			// Stop the topics already subscribed before reporting.
			cancel()
			wg.Wait()
			return fmt.Errorf("subscribe to %s: %w", topic, err)
		}

		wg.Add(1)
		go func(topic string, messages <-chan *message.Message) {
			defer wg.Done()
			for msg := range messages {
				process(ctx, topic, msg, handle)
			}
		}(topic, messages)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrSubscriptionClosed
}

func process(ctx context.Context, topic string, msg *message.Message, handle Handler) {
	event, err := Unmarshal(msg.Payload)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("topic", topic).
			Str("message_id", msg.UUID).
			Msg("Dropping undecodable change event")
		msg.Ack()
		return
	}

	if err := handle(ctx, event); err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Str("topic", topic).
			Str("event_id", event.EventID).
			Msg("Change event handler failed")
		msg.Nack()
		return
	}
	msg.Ack()
}
