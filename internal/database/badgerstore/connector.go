// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/logging"
)

const (
	playerPrefix = "player/"
	sequenceKey  = "seq/player"

	// sequenceBandwidth is how many ids are leased from disk at a time.
	sequenceBandwidth = 1000
)

// Config selects where Badger keeps its files.
type Config struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
}

// Connector implements database.Connector over one Badger database.
type Connector struct {
	db  *badger.DB
	seq *badger.Sequence

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the Badger database.
func Open(cfg Config) (*Connector, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerstore: path is required unless in-memory")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("lease player sequence: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Badger player store opened")

	return &Connector{db: db, seq: seq}, nil
}

// Open implements database.Connector.
func (c *Connector) Open(_ context.Context) (database.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, database.ErrConnectorClosed
	}
	return &Session{c: c}, nil
}

// Close releases the sequence lease and closes the database.
func (c *Connector) Close(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	return errors.Join(c.seq.Release(), c.db.Close())
}

// Ping reports whether the database is open.
func (c *Connector) Ping(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.db.IsClosed() {
		return database.ErrConnectorClosed
	}
	return nil
}

// Backend implements database.Connector.
func (c *Connector) Backend() string {
	return database.BackendBadger
}

var _ database.Connector = (*Connector)(nil)
var _ database.Pinger = (*Connector)(nil)
