// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package mongostore is the MongoDB player store backend.
//
// One Connector owns a pooled *mongo.Client for the process lifetime. Each
// database.Session wraps a logical mongo.Session started on Open and ended on
// Close, so every request's operations are grouped under one server session.
//
// Filters:
//
//	FindByDate             {date}
//	FindAll                {}
//	DeleteGame             {date, team_abbr: {$in: teams}}
//	UpdateScored           {date, id: {$in|$nin: ids}} -> {$set: {scored: v}}
//	DistinctUnscoredDates  distinct("date", {scored: null})
//
// {scored: null} matches both an explicit null and a missing field. Player
// ids are stored as numbers; MongoDB compares int64 filter values against
// stored doubles numerically.
package mongostore
