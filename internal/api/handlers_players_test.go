// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package api

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

func TestGetPlayers(t *testing.T) {
	h := newTestServer(t, seededStore())

	rec := do(t, h, http.MethodGet, "/players?date=2024-01-15", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["date"] != "2024-01-15" {
		t.Errorf("date = %v", body["date"])
	}
	players, _ := body["players"].([]any)
	if len(players) != 3 {
		t.Errorf("players = %d, want 3", len(players))
	}
}

func TestGetPlayers_EmptyDate(t *testing.T) {
	h := newTestServer(t, seededStore())

	rec := do(t, h, http.MethodGet, "/players?date=1999-01-01", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"players":[]`) {
		t.Errorf("body = %s, want empty players array", rec.Body.String())
	}
}

func TestGetPlayers_Validation(t *testing.T) {
	h := newTestServer(t, seededStore())

	tests := []struct {
		query string
		want  string
	}{
		{"/players", "Date parameter is required"},
		{"/players?date=", "Date parameter is required"},
		{"/players?date=2024/01/15", "Invalid date format. Expected YYYY-MM-DD"},
		{"/players?date=24-01-15", "Invalid date format. Expected YYYY-MM-DD"},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodGet, tt.query, "", nil)
		assertJSONError(t, rec, http.StatusBadRequest, tt.want)
	}
}

func TestGetPlayers_StoreFailure(t *testing.T) {
	h := newTestServer(t, &fakeStore{err: errStore})
	rec := do(t, h, http.MethodGet, "/players?date=2024-01-15", "", nil)
	assertJSONError(t, rec, http.StatusInternalServerError, "Failed to fetch players from database")
}

func TestAllPlayers(t *testing.T) {
	h := newTestServer(t, seededStore())

	rec := do(t, h, http.MethodGet, "/all-players", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := decodeBody(t, rec)["data"].(string)
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.Fatalf("data is not standard base64: %v", err)
	}

	var decoded struct {
		Players []map[string]any `json:"players"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decoded data is not JSON: %v", err)
	}
	if len(decoded.Players) != 4 {
		t.Fatalf("players = %d, want 4", len(decoded.Players))
	}
	for _, p := range decoded.Players {
		for _, field := range models.ExportExcludedFields {
			if _, ok := p[field]; ok {
				t.Errorf("exported player still has %q: %v", field, p)
			}
		}
		if p["name"] == nil || p["team_name"] == nil {
			t.Errorf("exported player lost fields: %v", p)
		}
	}
}

func TestAllPlayers_StoreFailure(t *testing.T) {
	h := newTestServer(t, &fakeStore{err: errStore})
	rec := do(t, h, http.MethodGet, "/all-players", "", nil)
	assertJSONError(t, rec, http.StatusInternalServerError, "Failed to fetch players from database")
}

func TestEncodeExport_Empty(t *testing.T) {
	data, err := EncodeExport(nil)
	if err != nil {
		t.Fatalf("EncodeExport() error = %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(data)
	if string(raw) != `{"players":[]}` {
		t.Errorf("decoded = %s", raw)
	}
}

func TestEncodeExport_DoesNotEscapeHTML(t *testing.T) {
	data, err := EncodeExport([]models.Player{{"name": "A&B <C> Zoë"}})
	if err != nil {
		t.Fatalf("EncodeExport() error = %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(data)
	if want := `{"players":[{"name":"A&B <C> Zoë"}]}`; string(raw) != want {
		t.Errorf("decoded = %s, want %s", raw, want)
	}
}

func TestUploadPlayers(t *testing.T) {
	store := &fakeStore{}
	h := newTestServer(t, store)

	body := `{"players":[
		{"name":"A","id":1,"team_name":"Leafs","team_abbr":"TOR","date":"2024-01-15","stat":0.3,"gpg":0.5},
		{"name":"B","id":2,"team_name":"Leafs","team_abbr":"TOR","date":"2024-01-15"}
	]}`
	rec := do(t, h, http.MethodPost, "/players", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	if resp["insertedCount"] != float64(2) {
		t.Errorf("insertedCount = %v", resp["insertedCount"])
	}
	if resp["message"] != "Successfully uploaded 2 player(s)" {
		t.Errorf("message = %v", resp["message"])
	}

	if len(store.inserted) != 2 {
		t.Fatalf("inserted = %d", len(store.inserted))
	}
	if _, ok := store.inserted[0]["stat"]; ok {
		t.Error("stat should be stripped before insert")
	}
	if store.inserted[0]["gpg"] != 0.5 {
		t.Errorf("unknown fields should be kept: %v", store.inserted[0])
	}
}

func TestUploadPlayers_Validation(t *testing.T) {
	h := newTestServer(t, &fakeStore{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{players`, "Invalid JSON in request body"},
		{"empty body", ` `, "Invalid JSON in request body"},
		{"missing players", `{}`, "players field is required and must be an array"},
		{"players not array", `{"players":{}}`, "players field is required and must be an array"},
		{"top-level array", `[1]`, "players field is required and must be an array"},
		{"empty array", `{"players":[]}`, "players array cannot be empty"},
		{"element not object", `{"players":[1]}`, "Player at index 0 must be an object"},
		{"null element", `{"players":[null]}`, "Player at index 0 must be an object"},
		{"missing name", `{"players":[{"id":1,"team_name":"T"}]}`, "Player at index 0 is missing required field: name"},
		{"null id", `{"players":[{"name":"A","id":null,"team_name":"T"}]}`, "Player at index 0 is missing required field: id"},
		{"missing team", `{"players":[{"name":"A","id":1}]}`, "Player at index 0 is missing required field: team_name"},
		{"string id", `{"players":[{"name":"A","id":"1","team_name":"T"}]}`, "Player at index 0 has invalid id: must be a number"},
		{"second invalid", `{"players":[{"name":"A","id":1,"team_name":"T"},{"name":"B","team_name":"T"}]}`, "Player at index 1 is missing required field: id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/players", tt.body, nil)
			assertJSONError(t, rec, http.StatusBadRequest, tt.want)
		})
	}
}

func TestUploadPlayers_StoreFailure(t *testing.T) {
	h := newTestServer(t, &fakeStore{err: errStore})
	rec := do(t, h, http.MethodPost, "/players", `{"players":[{"name":"A","id":1,"team_name":"T"}]}`, nil)
	assertJSONError(t, rec, http.StatusInternalServerError, "Failed to upload players to database")
}
