// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package services adapts the server's components to suture.Service.
//
//   - HTTPServerService: an *http.Server (the API listener and the
//     Prometheus listener) with graceful shutdown
//   - EventAuditService: consumes player change events, logs them and
//     counts them in smartscore_player_events_total
package services
