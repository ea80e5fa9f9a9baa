// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package validation checks untrusted request input: query parameters
// (dates, game identifiers) and the JSON bodies of the upload and backfill
// endpoints.
//
// Every failure carries a fixed client-facing message. Clients and tests
// match these strings verbatim, so they must not change.
//
// Checks are fail-fast and ordered: the first violation found is the one
// reported. Structural rules are expressed with go-playground/validator and
// the custom "yyyymmdd" tag; the remaining checks reproduce the loose typing
// rules the API has always applied to JSON bodies (for example, a null
// required field counts as missing but an empty string does not).
package validation
