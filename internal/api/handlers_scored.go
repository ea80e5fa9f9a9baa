// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package api

import (
	"fmt"
	"net/http"

	"github.com/nathanprobert/smartscore-api/internal/validation"
)

// UnscoredDatesResponse is the GET /unscored-dates body.
type UnscoredDatesResponse struct {
	Dates []string `json:"dates"`
}

// BackfillResponse is the POST /backfill-scored success body.
type BackfillResponse struct {
	Date            string   `json:"date"`
	ScoredPlayerIDs []string `json:"scoredPlayerIds"`
	ScoredCount     int64    `json:"scoredCount"`
	UnscoredCount   int64    `json:"unscoredCount"`
	Message         string   `json:"message"`
}

// UnscoredDates lists dates that still have records with no scored value.
func (h *Handler) UnscoredDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.store.DistinctUnscoredDates(r.Context())
	if err != nil {
		storeFailure(r, err, "Failed to fetch unscored dates")
		respondError(w, http.StatusInternalServerError, "Failed to fetch unscored dates from database")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	respondJSON(w, http.StatusOK, UnscoredDatesResponse{Dates: dates})
}

// BackfillScored sets scored=true for the listed ids on a date and
// scored=false for every other record on that date.
func (h *Handler) BackfillScored(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, validation.MsgInvalidJSON)
		return
	}

	req, err := validation.ValidateBackfill(body)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.store.Backfill(r.Context(), req.Date, req.NumericIDs())
	if err != nil {
		storeFailure(r, err, "Failed to backfill scored status")
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to backfill scored status",
			Details: err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, BackfillResponse{
		Date:            req.Date,
		ScoredPlayerIDs: req.ScoredPlayerIDs,
		ScoredCount:     result.ScoredCount,
		UnscoredCount:   result.UnscoredCount,
		Message: fmt.Sprintf("Updated %d player(s) to scored=true and %d player(s) to scored=false for date %s",
			result.ScoredCount, result.UnscoredCount, req.Date),
	})
}
