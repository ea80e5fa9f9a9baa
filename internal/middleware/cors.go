// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package middleware

import "net/http"

// Fixed CORS allowances sent on every response.
const (
	CORSAllowMethods = "GET,POST,DELETE,OPTIONS"
	CORSAllowHeaders = "Authorization,Content-Type"
)

// CORSPolicy decides the Access-Control-* headers for a request.
//
// Allow-Origin echoes the request Origin when it is on the allow-list, is "*"
// when the request has no Origin (non-browser callers), and is omitted for
// any other origin.
type CORSPolicy struct {
	allowed map[string]struct{}
}

// NewCORSPolicy creates a policy allowing exactly the given origins.
func NewCORSPolicy(origins []string) *CORSPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &CORSPolicy{allowed: allowed}
}

// Apply sets the CORS headers on h for a request with the given Origin
// header value.
func (p *CORSPolicy) Apply(h http.Header, origin string) {
	h.Set("Access-Control-Allow-Methods", CORSAllowMethods)
	h.Set("Access-Control-Allow-Headers", CORSAllowHeaders)

	switch {
	case origin == "":
		h.Set("Access-Control-Allow-Origin", "*")
	case p.Allows(origin):
		h.Set("Access-Control-Allow-Origin", origin)
	}
}

// Headers returns the CORS headers for a request with the given Origin.
func (p *CORSPolicy) Headers(origin string) http.Header {
	h := make(http.Header, 3)
	p.Apply(h, origin)
	return h
}

// Allows reports whether origin is on the allow-list.
func (p *CORSPolicy) Allows(origin string) bool {
	_, ok := p.allowed[origin]
	return ok
}

// Middleware applies the policy to every response and answers OPTIONS on
// any path with 204 and no body, before authentication runs.
func (p *CORSPolicy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.Apply(w.Header(), r.Header.Get("Origin"))

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
