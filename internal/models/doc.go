// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package models defines the player record and the small value types shared
// by the HTTP layer, the store backends and the event bus.
//
// A player record is deliberately an open map: uploads may carry metric
// fields the server has never seen, and those are stored and returned
// unchanged. Only name, id and team_name are required, and stat is never
// persisted.
package models
