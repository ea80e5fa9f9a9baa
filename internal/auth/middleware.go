// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package auth

import (
	"net/http"

	"github.com/nathanprobert/smartscore-api/internal/logging"
	"github.com/nathanprobert/smartscore-api/internal/metrics"
)

// UnauthorizedBody is written with every 401.
const UnauthorizedBody = "Unauthorized"

// Middleware rejects unauthenticated requests unless their path is one of
// exempt. Paths are matched exactly.
func (a *Authenticator) Middleware(exempt ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if !a.RequireAuth(r) {
				_, hasHeader := GetAuthToken(r)
				reason := "invalid_token"
				if !hasHeader {
					reason = "missing_token"
				}
				metrics.RecordAuthFailure(reason)
				logging.Ctx(r.Context()).Debug().
					Str("path", r.URL.Path).
					Str("reason", reason).
					Msg("Rejected unauthenticated request")

				WriteUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WriteUnauthorized writes the plain-text 401 response.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(UnauthorizedBody))
}
