// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package models

import "time"

// ChangeType names a bulk mutation of player records.
type ChangeType string

const (
	ChangePlayersUploaded ChangeType = "uploaded"
	ChangeGameDeleted     ChangeType = "game_deleted"
	ChangeScoredBackfill  ChangeType = "scored_backfilled"
)

// ChangeEvent is published after a successful bulk mutation.
type ChangeEvent struct {
	EventID    string     `json:"event_id"`
	Type       ChangeType `json:"type"`
	Date       string     `json:"date,omitempty"`
	Teams      []string   `json:"teams,omitempty"`
	Count      int64      `json:"count"`
	Unscored   int64      `json:"unscored,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
