// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package api

import (
	"fmt"
	"net/http"

	"github.com/nathanprobert/smartscore-api/internal/models"
	"github.com/nathanprobert/smartscore-api/internal/validation"
)

// DeleteGameResponse is the DELETE /game success body.
type DeleteGameResponse struct {
	Date         string `json:"date"`
	Home         string `json:"home"`
	Away         string `json:"away"`
	DeletedCount int64  `json:"deletedCount"`
	Message      string `json:"message"`
}

// DeleteGame removes both teams' records for one date.
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	result := validation.ValidateGameParameters(r.URL.Query())
	if !result.Valid {
		respondError(w, http.StatusBadRequest, result.Error)
		return
	}

	game := models.GameKey{Date: result.Date, Home: result.Home, Away: result.Away}
	deleted, err := h.store.DeleteGame(r.Context(), game.Date, game.Teams())
	if err != nil {
		storeFailure(r, err, "Failed to delete game")
		respondError(w, http.StatusInternalServerError, "Failed to delete game from database")
		return
	}

	respondJSON(w, http.StatusOK, DeleteGameResponse{
		Date:         game.Date,
		Home:         game.Home,
		Away:         game.Away,
		DeletedCount: deleted,
		Message:      fmt.Sprintf("Deleted %d player(s) for game %s vs %s on %s", deleted, game.Home, game.Away, game.Date),
	})
}
