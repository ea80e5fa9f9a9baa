// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package database

import (
	"context"
	"errors"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

// Supported backend names for database.backend.
const (
	BackendMongoDB = "mongodb"
	BackendBadger  = "badger"
)

var (
	// ErrUnknownBackend is returned when database.backend names no known store.
	ErrUnknownBackend = errors.New("unknown database backend")

	// ErrConnectorClosed is returned by Open after the connector was closed.
	ErrConnectorClosed = errors.New("database connector is closed")
)

// PlayerStore is the persistence surface used by the HTTP handlers.
type PlayerStore interface {
	// FindByDate returns every record whose date equals date.
	FindByDate(ctx context.Context, date string) ([]models.Player, error)

	// FindAll returns every record.
	FindAll(ctx context.Context) ([]models.Player, error)

	// InsertMany stores the records as given and returns how many were inserted.
	InsertMany(ctx context.Context, players []models.Player) (int64, error)

	// DeleteGame removes records on date whose team_abbr is one of teams.
	DeleteGame(ctx context.Context, date string, teams []string) (int64, error)

	// UpdateScored sets scored=value on records for date whose id is in ids
	// (inSet) or not in ids (!inSet). It returns the number of records whose
	// value actually changed.
	UpdateScored(ctx context.Context, date string, ids []int64, inSet bool, value bool) (int64, error)

	// Backfill marks ids as scored and every other record on date as not
	// scored. The two updates are not atomic.
	Backfill(ctx context.Context, date string, ids []int64) (models.BackfillResult, error)

	// DistinctUnscoredDates returns each date having a record whose scored
	// field is null or absent.
	DistinctUnscoredDates(ctx context.Context) ([]string, error)
}

// Session is one unit of backend access. It is not safe for concurrent use
// and must be closed exactly once.
type Session interface {
	FindByDate(ctx context.Context, date string) ([]models.Player, error)
	FindAll(ctx context.Context) ([]models.Player, error)
	InsertMany(ctx context.Context, players []models.Player) (int64, error)
	DeleteGame(ctx context.Context, date string, teams []string) (int64, error)
	UpdateScored(ctx context.Context, date string, ids []int64, inSet bool, value bool) (int64, error)
	DistinctUnscoredDates(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}

// Connector opens sessions against a backend. Implementations own any
// pooled resources and release them in Close.
type Connector interface {
	Open(ctx context.Context) (Session, error)
	Close(ctx context.Context) error
	// Backend names the implementation for logs.
	Backend() string
}

// Pinger is implemented by connectors that can check backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
