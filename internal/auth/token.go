// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package auth

import (
	"net/http"
	"strings"
)

// BearerPrefix is stripped from the Authorization header when present.
const BearerPrefix = "Bearer "

// GetAuthToken extracts the token from the Authorization header. ok is false
// when the header is absent. The prefix match is case-sensitive and only
// one prefix is removed, so "Bearer Bearer x" yields "Bearer x".
func GetAuthToken(r *http.Request) (token string, ok bool) {
	values, present := r.Header["Authorization"]
	if !present || len(values) == 0 {
		return "", false
	}
	return strings.TrimPrefix(values[0], BearerPrefix), true
}
