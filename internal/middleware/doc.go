// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

/*
Package middleware provides the HTTP middleware shared by every route.

Key Components:

  - CORS: fixed method and header allowances plus an origin allow-list;
    answers every OPTIONS request with 204
  - Request ID: X-Request-ID propagation and logging context
  - Prometheus Metrics: request counts, latency and in-flight gauge
  - Recoverer: converts handler panics into a plain-text 500

Middleware Stack:

The API router installs them in this order, outermost first:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(authn.Middleware("/health"))

CORS sits outside authentication so that 401, 404 and 500 responses all
carry CORS headers, and preflight requests never need a token.
*/
package middleware
