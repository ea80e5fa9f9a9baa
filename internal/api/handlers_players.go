// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/models"
	"github.com/nathanprobert/smartscore-api/internal/validation"
)

// PlayersResponse is the GET /players body.
type PlayersResponse struct {
	Date    string          `json:"date"`
	Players []models.Player `json:"players"`
}

// AllPlayersResponse is the GET /all-players body. Data is the standard
// base64 encoding of {"players":[...]}.
type AllPlayersResponse struct {
	Data string `json:"data"`
}

// UploadResponse is the POST /players success body.
type UploadResponse struct {
	InsertedCount int64  `json:"insertedCount"`
	Message       string `json:"message"`
}

type exportPayload struct {
	Players []models.Player `json:"players"`
}

// GetPlayers returns every player record for ?date=YYYY-MM-DD.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	result := validation.ValidateDateParameter(r.URL.Query())
	if !result.Valid {
		respondError(w, http.StatusBadRequest, result.Error)
		return
	}

	players, err := h.store.FindByDate(r.Context(), result.Date)
	if err != nil {
		storeFailure(r, err, "Failed to fetch players")
		respondError(w, http.StatusInternalServerError, "Failed to fetch players from database")
		return
	}
	if players == nil {
		players = []models.Player{}
	}

	respondJSON(w, http.StatusOK, PlayersResponse{Date: result.Date, Players: players})
}

// AllPlayers returns every record, minus internal identifiers, as base64
// encoded JSON.
func (h *Handler) AllPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.FindAll(r.Context())
	if err != nil {
		storeFailure(r, err, "Failed to fetch all players")
		respondError(w, http.StatusInternalServerError, "Failed to fetch players from database")
		return
	}

	data, err := EncodeExport(players)
	if err != nil {
		storeFailure(r, err, "Failed to encode players")
		respondError(w, http.StatusInternalServerError, "Failed to fetch players from database")
		return
	}

	respondJSON(w, http.StatusOK, AllPlayersResponse{Data: data})
}

// EncodeExport strips the export-excluded fields from every record and
// returns base64(JSON({"players": [...]})).
func EncodeExport(players []models.Player) (string, error) {
	stripped := make([]models.Player, len(players))
	for i, p := range players {
		stripped[i] = p.Without(models.ExportExcludedFields...)
	}

	// MarshalNoEscape still escapes &, < and > inside map values.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(exportPayload{Players: stripped}); err != nil {
		return "", fmt.Errorf("encode players: %w", err)
	}
	raw := bytes.TrimRight(buf.Bytes(), "\n")
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeExport reverses EncodeExport.
func DecodeExport(data string) ([]models.Player, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	var payload exportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	if payload.Players == nil {
		payload.Players = []models.Player{}
	}
	return payload.Players, nil
}

// UploadPlayers validates and stores a batch of player records.
func (h *Handler) UploadPlayers(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, validation.MsgInvalidJSON)
		return
	}

	players, err := validation.ValidateUploadPlayers(body)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	docs := make([]models.Player, len(players))
	for i, p := range players {
		docs[i] = p.Without(models.UploadExcludedFields...)
	}

	inserted, err := h.store.InsertMany(r.Context(), docs)
	if err != nil {
		storeFailure(r, err, "Failed to upload players")
		respondError(w, http.StatusInternalServerError, "Failed to upload players to database")
		return
	}

	respondJSON(w, http.StatusCreated, UploadResponse{
		InsertedCount: inserted,
		Message:       fmt.Sprintf("Successfully uploaded %d player(s)", inserted),
	})
}

// writeValidationError writes a *validation.RequestError as a 400. Any
// other error is unexpected and becomes a 500.
func writeValidationError(w http.ResponseWriter, err error) {
	if reqErr, ok := validation.AsRequestError(err); ok {
		respondError(w, http.StatusBadRequest, reqErr.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, "Internal Server Error")
}
