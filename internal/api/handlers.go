// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package api

import (
	"net/http"

	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/logging"
)

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	store database.PlayerStore
}

// NewHandler creates a handler backed by store.
func NewHandler(store database.PlayerStore) *Handler {
	return &Handler{store: store}
}

// Hello answers GET /.
func (h *Handler) Hello(w http.ResponseWriter, _ *http.Request) {
	respondText(w, http.StatusOK, "Hello World")
}

// Health answers GET /health. It does not touch the database.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondText(w, http.StatusOK, "ok")
}

// NotFound answers unmatched paths and wrong methods on known paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("No route matched")
	respondText(w, http.StatusNotFound, "Not Found")
}

// storeFailure logs a persistence error for the current request.
func storeFailure(r *http.Request, err error, msg string) {
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(msg)
}
