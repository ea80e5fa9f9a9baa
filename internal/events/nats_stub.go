// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

//go:build !nats

package events

import "github.com/ThreeDotsLabs/watermill"

// NewNATSBus returns ErrNATSNotEnabled. Build with -tags=nats for the
// JetStream transport.
func NewNATSBus(_ NATSConfig, _ watermill.LoggerAdapter) (*Bus, error) {
	return nil, ErrNATSNotEnabled
}
