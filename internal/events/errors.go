// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import "errors"

// ErrPublisherClosed is returned by PublishChange after Close.
var ErrPublisherClosed = errors.New("events: publisher is closed")

// ErrNilPublisher is returned when NewPublisher is given no transport.
var ErrNilPublisher = errors.New("events: message publisher cannot be nil")

// ErrNATSNotEnabled is returned by the NATS constructors in builds without
// the nats tag.
var ErrNATSNotEnabled = errors.New("events: NATS transport not enabled (build with -tags nats)")

// ErrUnknownTransport is returned by NewBus for an unsupported transport name.
var ErrUnknownTransport = errors.New("events: unknown transport")

// ErrSubscriptionClosed is returned by Consume when every subscription
// channel closed before its context was canceled.
var ErrSubscriptionClosed = errors.New("events: subscription closed")
