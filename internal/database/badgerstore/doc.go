// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package badgerstore is an embedded player store backed by BadgerDB, used
// for local development without MongoDB and for tests.
//
// Records are stored under player/<date>/<seq> with JSON values, so a
// by-date read is a single prefix scan and a full scan returns records
// ordered by date. Each record gets a 24-character hex _id derived from its
// sequence number.
//
// scored keeps the MongoDB semantics: absent or null means never
// reconciled, and UpdateScored counts only records whose value changed.
package badgerstore
