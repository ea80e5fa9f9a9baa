// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package events publishes and consumes player change events.
//
// After a successful upload, game delete or backfill the database store
// hands a models.ChangeEvent to a Publisher, which serializes it as JSON and
// publishes it on "<prefix>.<type>" (for example
// "smartscore.players.uploaded") through a Watermill message.Publisher
// guarded by a gobreaker circuit breaker.
//
// Two transports are available through Bus:
//
//   - gochannel: in-process, always compiled in (NewGoChannelBus)
//   - nats: NATS JetStream via watermill-nats, optionally against an
//     embedded nats-server (NewNATSBus, requires -tags=nats)
//
// Consume subscribes to every change topic and runs a handler per event; the
// supervisor's EventAuditService uses it to log and count events.
package events
