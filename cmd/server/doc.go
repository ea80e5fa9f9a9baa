// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

/*
Package main is the entry point for the SmartScore API server.

The server stores one record per player per game day and exposes them over a
small authenticated HTTP API used by the SmartScore frontend and the daily
prediction pipeline.

# Application Architecture

Components run under a Suture v4 supervisor tree:

	RootSupervisor ("smartscore")
	├── EventsSupervisor ("events-layer")
	│   └── event-audit (when EVENTS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    ├── http-server
	    ├── metrics-server (when METRICS_ENABLED=true)
	    └── uptime

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Store: MongoDB or BadgerDB, pinged before anything else starts
 4. Events: Watermill over gochannel or NATS JetStream (optional)
 5. Router: chi with request ID, metrics, CORS, recovery and bearer auth
 6. Supervisor tree

# Configuration

Core environment variables:

	API_AUTH_TOKEN=<secret>        # required
	ENVIRONMENT=dev                # dev -> SmartScoreDev, prod -> SmartScore
	DATABASE_BACKEND=mongodb       # mongodb or badger
	MONGODB_URI=mongodb+srv://...
	BADGER_PATH=/data/smartscore
	HTTP_PORT=8787
	CORS_ORIGINS=https://smartscore.nathanprobert.ca
	EVENTS_ENABLED=false
	EVENTS_TRANSPORT=gochannel     # gochannel or nats
	METRICS_ADDR=:9090

# Build Tags

	go build ./cmd/server              # gochannel events only
	go build -tags nats ./cmd/server   # enable NATS JetStream transport

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP servers drain for
HTTP_SHUTDOWN_TIMEOUT, then the event bus and the store are closed.
*/
package main
