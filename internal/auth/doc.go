// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

/*
Package auth implements shared-secret bearer authentication.

Every route except /health requires an Authorization header carrying the
configured API token, either bare or with a "Bearer " prefix:

	Authorization: Bearer s3cret
	Authorization: s3cret

A request is authenticated only when the extracted token is non-empty and
equal to the configured secret. Failures get a plain-text 401 with the body
"Unauthorized". There are no identities, scopes or sessions.

Usage:

	authn, err := auth.New(cfg.Security.APIAuthToken)
	if err != nil {
		return err
	}
	r.Use(authn.Middleware("/health"))
*/
package auth
