// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/auth"
	"github.com/nathanprobert/smartscore-api/internal/middleware"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

const (
	testToken  = "test-token"
	testOrigin = "https://smartscore.nathanprobert.ca"
)

var errStore = errors.New("connection refused")

// fakeStore is an in-memory PlayerStore. Setting err makes every call fail.
type fakeStore struct {
	mu      sync.Mutex
	players []models.Player
	err     error
	panics  bool

	inserted    []models.Player
	deleteTeams []string
	backfillIDs []int64
}

func (f *fakeStore) FindByDate(_ context.Context, date string) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panics {
		panic("store exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Player{}
	for _, p := range f.players {
		if p.Date() == date {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindAll(context.Context) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Player{}, f.players...), nil
}

func (f *fakeStore) InsertMany(_ context.Context, players []models.Player) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.inserted = append(f.inserted, players...)
	f.players = append(f.players, players...)
	return int64(len(players)), nil
}

func (f *fakeStore) DeleteGame(_ context.Context, date string, teams []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.deleteTeams = teams
	var kept []models.Player
	var deleted int64
	for _, p := range f.players {
		if p.Date() == date && (p.TeamAbbr() == teams[0] || p.TeamAbbr() == teams[1]) {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	f.players = kept
	return deleted, nil
}

func (f *fakeStore) UpdateScored(_ context.Context, date string, ids []int64, inSet bool, value bool) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	var n int64
	for _, p := range f.players {
		if p.Date() != date {
			continue
		}
		id, _ := p.NumericID()
		if set[id] != inSet {
			continue
		}
		if cur, ok := p[models.FieldScored].(bool); ok && cur == value {
			continue
		}
		p[models.FieldScored] = value
		n++
	}
	return n, nil
}

func (f *fakeStore) Backfill(ctx context.Context, date string, ids []int64) (models.BackfillResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.backfillIDs = ids
	scored, err := f.UpdateScored(ctx, date, ids, true, true)
	if err != nil {
		return models.BackfillResult{}, err
	}
	unscored, err := f.UpdateScored(ctx, date, ids, false, false)
	if err != nil {
		return models.BackfillResult{ScoredCount: scored}, err
	}
	return models.BackfillResult{ScoredCount: scored, UnscoredCount: unscored}, nil
}

func (f *fakeStore) DistinctUnscoredDates(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]bool{}
	dates := []string{}
	for _, p := range f.players {
		if p.IsUnscored() && !seen[p.Date()] {
			seen[p.Date()] = true
			dates = append(dates, p.Date())
		}
	}
	return dates, nil
}

func newTestServer(t *testing.T, store *fakeStore) http.Handler {
	t.Helper()
	authn, err := auth.New(testToken)
	if err != nil {
		t.Fatalf("auth.New() error = %v", err)
	}
	cors := middleware.NewCORSPolicy([]string{testOrigin})
	return NewRouter(store, authn, cors).SetupChi()
}

// do sends an authenticated request unless headers override Authorization.
func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	for k, v := range headers {
		if v == "" {
			req.Header.Del(k)
			continue
		}
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func assertJSONError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if got := decodeBody(t, rec)["error"]; got != msg {
		t.Errorf("error = %v, want %q", got, msg)
	}
}

func assertText(t *testing.T, rec *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d", rec.Code, status)
	}
	if rec.Body.String() != body {
		t.Errorf("body = %q, want %q", rec.Body.String(), body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
}

func seededStore() *fakeStore {
	return &fakeStore{players: []models.Player{
		{"_id": "a1", "name": "A", "id": float64(1), "team_name": "Leafs", "team_abbr": "TOR", "date": "2024-01-15"},
		{"_id": "a2", "name": "B", "id": float64(2), "team_name": "Leafs", "team_abbr": "TOR", "date": "2024-01-15"},
		{"_id": "a3", "name": "C", "id": float64(3), "team_name": "Canadiens", "team_abbr": "MTL", "date": "2024-01-15"},
		{"_id": "a4", "name": "D", "id": float64(4), "team_name": "Bruins", "team_abbr": "BOS", "date": "2024-01-16", "scored": true},
	}}
}
