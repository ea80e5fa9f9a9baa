// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
)

// ErrEmptySecret is returned by New when no API token is configured.
var ErrEmptySecret = errors.New("auth: API auth token must not be empty")

// Authenticator checks requests against a single shared secret.
type Authenticator struct {
	secret []byte
}

// New creates an Authenticator for secret.
func New(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// RequireAuth reports whether r carries a non-empty token equal to the
// secret.
func (a *Authenticator) RequireAuth(r *http.Request) bool {
	token, ok := GetAuthToken(r)
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), a.secret) == 1
}
