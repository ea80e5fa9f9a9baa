// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package config loads SmartScore server configuration with koanf.
//
// Sources, lowest to highest precedence:
//
//   - defaults compiled into defaultConfig
//   - a YAML file (CONFIG_PATH, ./config.yaml, /etc/smartscore/config.yaml)
//   - environment variables
//
// Recognised environment variables:
//
//	API_AUTH_TOKEN      bearer token every request except /health must present (required)
//	ENVIRONMENT         dev or prod; selects SmartScoreDev or SmartScore
//	MONGODB_URI         MongoDB connection string (required for the mongodb backend)
//	MONGODB_DATABASE    database name (default: players)
//	MONGODB_COLLECTION  explicit collection, overrides ENVIRONMENT
//	DATABASE_BACKEND    mongodb or badger
//	CORS_ORIGINS        comma-separated browser origins
//	HTTP_HOST, HTTP_PORT
//	EVENTS_ENABLED, EVENTS_TRANSPORT, NATS_URL, NATS_EMBEDDED
//	METRICS_ENABLED, METRICS_ADDR
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//
// Example YAML:
//
//	server:
//	  port: 8787
//	  environment: prod
//	security:
//	  cors_origins: ["https://smartscore.nathanprobert.ca"]
//	database:
//	  mongodb_uri: "mongodb+srv://cluster.example.net"
package config
