// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package database

import (
	"context"
	"errors"
	"sync"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

// fakeConnector records session lifecycle and lets tests inject failures.
type fakeConnector struct {
	mu       sync.Mutex
	opened   int
	closed   int
	openErr  error
	closeErr error

	players []models.Player

	// failUpdate makes the nth UpdateScored call (1-based) fail.
	failUpdate  int
	updateCalls int
	opErr       error
}

func (c *fakeConnector) Open(context.Context) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openErr != nil {
		return nil, c.openErr
	}
	c.opened++
	return &fakeSession{c: c}, nil
}

func (c *fakeConnector) Close(context.Context) error { return nil }

func (c *fakeConnector) Backend() string { return "fake" }

func (c *fakeConnector) sessions() (opened, closed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened, c.closed
}

type fakeSession struct {
	c *fakeConnector
}

func (s *fakeSession) FindByDate(_ context.Context, date string) ([]models.Player, error) {
	if s.c.opErr != nil {
		return nil, s.c.opErr
	}
	var out []models.Player
	for _, p := range s.c.players {
		if p.Date() == date {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeSession) FindAll(context.Context) ([]models.Player, error) {
	if s.c.opErr != nil {
		return nil, s.c.opErr
	}
	return s.c.players, nil
}

func (s *fakeSession) InsertMany(_ context.Context, players []models.Player) (int64, error) {
	if s.c.opErr != nil {
		return 0, s.c.opErr
	}
	s.c.players = append(s.c.players, players...)
	return int64(len(players)), nil
}

func (s *fakeSession) DeleteGame(_ context.Context, date string, teams []string) (int64, error) {
	if s.c.opErr != nil {
		return 0, s.c.opErr
	}
	var kept []models.Player
	var n int64
	for _, p := range s.c.players {
		if p.Date() == date && (p.TeamAbbr() == teams[0] || p.TeamAbbr() == teams[1]) {
			n++
			continue
		}
		kept = append(kept, p)
	}
	s.c.players = kept
	return n, nil
}

func (s *fakeSession) UpdateScored(_ context.Context, date string, ids []int64, inSet bool, value bool) (int64, error) {
	s.c.updateCalls++
	if s.c.failUpdate == s.c.updateCalls {
		return 0, errors.New("update failed")
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	var n int64
	for _, p := range s.c.players {
		id, _ := p.NumericID()
		if p.Date() != date || set[id] != inSet {
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

func (s *fakeSession) DistinctUnscoredDates(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.c.players {
		if p.IsUnscored() && !seen[p.Date()] {
			seen[p.Date()] = true
			out = append(out, p.Date())
		}
	}
	return out, nil
}

func (s *fakeSession) Close(context.Context) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.closed++
	return s.c.closeErr
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ChangeEvent
	err    error
}

func (p *recordingPublisher) PublishChange(_ context.Context, e models.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) published() []models.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ChangeEvent(nil), p.events...)
}
