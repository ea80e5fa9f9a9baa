// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package client is a typed HTTP client for the SmartScore API, used by the
// smartscore operator CLI.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/api"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// DefaultTimeout applies when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("smartscore API %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("smartscore API %d: %s", e.StatusCode, e.Message)
}

// Client calls one SmartScore API deployment.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for baseURL authenticating with token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Hello calls GET /.
func (c *Client) Hello(ctx context.Context) (string, error) {
	return c.text(ctx, "/")
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (string, error) {
	return c.text(ctx, "/health")
}

// Players returns the records for one date.
func (c *Client) Players(ctx context.Context, date string) (*api.PlayersResponse, error) {
	var out api.PlayersResponse
	q := url.Values{"date": {date}}
	if err := c.do(ctx, http.MethodGet, "/players", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllPlayers returns the base64 export exactly as served.
func (c *Client) AllPlayers(ctx context.Context) (*api.AllPlayersResponse, error) {
	var out api.AllPlayersResponse
	if err := c.do(ctx, http.MethodGet, "/all-players", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllPlayersDecoded fetches and decodes the export.
func (c *Client) AllPlayersDecoded(ctx context.Context) ([]models.Player, error) {
	resp, err := c.AllPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return api.DecodeExport(resp.Data)
}

// UnscoredDates lists dates with unreconciled records.
func (c *Client) UnscoredDates(ctx context.Context) ([]string, error) {
	var out api.UnscoredDatesResponse
	if err := c.do(ctx, http.MethodGet, "/unscored-dates", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Dates, nil
}

// Upload posts a batch of players.
func (c *Client) Upload(ctx context.Context, players []models.Player) (*api.UploadResponse, error) {
	var out api.UploadResponse
	body := map[string]any{"players": players}
	if err := c.do(ctx, http.MethodPost, "/players", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGame removes both teams' records for the game's date.
func (c *Client) DeleteGame(ctx context.Context, game models.GameKey) (*api.DeleteGameResponse, error) {
	var out api.DeleteGameResponse
	q := url.Values{"date": {game.Date}, "home": {game.Home}, "away": {game.Away}}
	if err := c.do(ctx, http.MethodDelete, "/game", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Backfill reconciles the scored flag for date.
func (c *Client) Backfill(ctx context.Context, date string, scoredIDs []string) (*api.BackfillResponse, error) {
	if scoredIDs == nil {
		scoredIDs = []string{}
	}
	var out api.BackfillResponse
	body := map[string]any{"date": date, "scoredPlayerIds": scoredIDs}
	if err := c.do(ctx, http.MethodPost, "/backfill-scored", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return resp.StatusCode, data, parseAPIError(resp.StatusCode, data)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	_, data, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) text(ctx context.Context, path string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return "", err
	}
	_, data, err := c.send(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseAPIError reads {"error","details"} bodies and falls back to the raw
// text for plain-text responses such as 401 and 404.
func parseAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(data))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
