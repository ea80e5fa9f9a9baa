// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nathanprobert/smartscore-api/internal/auth"
	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/middleware"
)

// HealthPath is the only route served without authentication.
const HealthPath = "/health"

// Router wires the handlers to the chi mux behind the shared middleware.
type Router struct {
	handler *Handler
	authn   *auth.Authenticator
	cors    *middleware.CORSPolicy
}

// NewRouter creates a router serving store.
func NewRouter(store database.PlayerStore, authn *auth.Authenticator, cors *middleware.CORSPolicy) *Router {
	return &Router{
		handler: NewHandler(store),
		authn:   authn,
		cors:    cors,
	}
}

// SetupChi builds the HTTP handler with every route registered.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.cors.Middleware) // answers OPTIONS before auth
	r.Use(middleware.Recoverer)
	r.Use(router.authn.Middleware(HealthPath))

	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.NotFound)

	r.Get("/", router.handler.Hello)
	r.Get(HealthPath, router.handler.Health)

	r.Get("/players", router.handler.GetPlayers)
	r.Post("/players", router.handler.UploadPlayers)
	r.Get("/all-players", router.handler.AllPlayers)
	r.Get("/unscored-dates", router.handler.UnscoredDates)
	r.Delete("/game", router.handler.DeleteGame)
	r.Post("/backfill-scored", router.handler.BackfillScored)

	return r
}
