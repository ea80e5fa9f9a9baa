// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package logging provides the zerolog-based structured logger shared by the
// API server, the store backends and the operator CLI.
//
// Initialize once from main:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// Request-scoped logging picks up the request and correlation IDs that the
// HTTP middleware stores in the context:
//
//	logging.Ctx(r.Context()).Error().Err(err).Str("date", date).Msg("Failed to fetch players")
//
// Always terminate event chains with Msg or Send, otherwise nothing is written.
package logging
