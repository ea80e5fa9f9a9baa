// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

/*
Package api provides the SmartScore HTTP routes and handlers using the chi
router.

# Request Pipeline

Every request passes through the same middleware chain before routing:

	RequestID -> PrometheusMetrics -> CORS -> Recoverer -> Auth -> route

CORS headers are attached to every response and OPTIONS on any path is
answered with 204 before authentication. Every path except /health requires
"Authorization: Bearer <API_AUTH_TOKEN>"; failures get a plain-text 401.

# Routes

	GET    /                 "Hello World" (text/plain)
	GET    /health           "ok" (text/plain, unauthenticated)
	GET    /players?date=    players for one date
	POST   /players          bulk upload
	GET    /all-players      every player, base64-encoded JSON
	GET    /unscored-dates   dates with unreconciled records
	DELETE /game?date=&home=&away=
	POST   /backfill-scored  reconcile the scored flag for a date

Unknown paths and wrong methods get a plain-text 404 "Not Found". JSON error
bodies are {"error": "..."}.

Handlers depend only on database.PlayerStore, so tests run against an
in-memory fake.
*/
package api
