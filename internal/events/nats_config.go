// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"strings"
	"time"

	"github.com/nathanprobert/smartscore-api/internal/config"
)

// NATSConfig configures the JetStream transport.
type NATSConfig struct {
	URL string

	// EmbeddedServer starts an in-process nats-server and connects to it
	// instead of URL.
	EmbeddedServer bool
	StoreDir       string

	// StreamName is the JetStream stream created for Subjects.
	StreamName string
	Subjects   []string

	DurablePrefix string
	QueueGroup    string

	MaxReconnects  int
	ReconnectWait  time.Duration
	AckWaitTimeout time.Duration
	CloseTimeout   time.Duration
	MaxAge         time.Duration
}

// NATSConfigFrom derives the JetStream settings from the events config.
func NATSConfigFrom(cfg config.EventsConfig) NATSConfig {
	prefix := strings.TrimSuffix(cfg.TopicPrefix, ".")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return NATSConfig{
		URL:            cfg.NATSURL,
		EmbeddedServer: cfg.EmbeddedServer,
		StoreDir:       cfg.StoreDir,
		StreamName:     streamName(prefix),
		Subjects:       []string{prefix + ".>"},
		DurablePrefix:  "smartscore-audit",
		QueueGroup:     "smartscore-audit",
		MaxReconnects:  -1,
		ReconnectWait:  2 * time.Second,
		AckWaitTimeout: 30 * time.Second,
		CloseTimeout:   30 * time.Second,
		MaxAge:         7 * 24 * time.Hour,
	}
}

// streamName turns a dotted prefix into a valid stream name:
// "smartscore.players" becomes "SMARTSCORE_PLAYERS".
func streamName(prefix string) string {
	r := strings.NewReplacer(".", "_", "*", "_", ">", "_", " ", "_")
	return strings.ToUpper(r.Replace(prefix))
}
