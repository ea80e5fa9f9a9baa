// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"strings"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "smartscore.players"

// ChangeTypes lists every change type, in publish order of a typical day.
var ChangeTypes = []models.ChangeType{
	models.ChangePlayersUploaded,
	models.ChangeScoredBackfill,
	models.ChangeGameDeleted,
}

// Topic returns the topic a change type is published on.
func Topic(prefix string, t models.ChangeType) string {
	prefix = strings.TrimSuffix(prefix, ".")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return prefix + "." + string(t)
}

// Topics returns the topics of every change type under prefix.
func Topics(prefix string) []string {
	out := make([]string, len(ChangeTypes))
	for i, t := range ChangeTypes {
		out[i] = Topic(prefix, t)
	}
	return out
}
