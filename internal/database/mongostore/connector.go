// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/logging"
)

// DefaultConnectTimeout bounds the initial connection and ping.
const DefaultConnectTimeout = 10 * time.Second

// Config holds MongoDB connection settings.
type Config struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	AppName        string
}

// Validate checks required fields.
func (c Config) Validate() error {
	switch {
	case c.URI == "":
		return errors.New("mongostore: URI is required")
	case c.Database == "":
		return errors.New("mongostore: database is required")
	case c.Collection == "":
		return errors.New("mongostore: collection is required")
	}
	return nil
}

// Connector implements database.Connector for MongoDB.
type Connector struct {
	client     *mongo.Client
	collection *mongo.Collection
	cfg        Config
	closed     atomic.Bool
}

// Connect dials MongoDB and pings the primary. It fails fast when the
// server is unreachable within the connect timeout.
func Connect(ctx context.Context, cfg Config) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.AppName == "" {
		cfg.AppName = "smartscore-api"
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	c := &Connector{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		cfg:        cfg,
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	logging.Info().
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Msg("Connected to MongoDB")

	return c, nil
}

// Open starts a logical session bound to the configured collection.
func (c *Connector) Open(_ context.Context) (database.Session, error) {
	if c.closed.Load() {
		return nil, database.ErrConnectorClosed
	}
	sess, err := c.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &Session{sess: sess, coll: c.collection}, nil
}

// Close disconnects the client. Later Open calls fail.
func (c *Connector) Close(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect MongoDB: %w", err)
	}
	return nil
}

// Ping checks that the primary is reachable.
func (c *Connector) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Backend implements database.Connector.
func (c *Connector) Backend() string {
	return database.BackendMongoDB
}

// CollectionName returns the collection players are read from and written to.
func (c *Connector) CollectionName() string {
	return c.cfg.Collection
}

// CopyCollection copies every document from src to dst in the connector's
// database, optionally deleting dst's documents first. It returns the
// number of documents inserted. Document _id values are preserved.
func (c *Connector) CopyCollection(ctx context.Context, src, dst string, clear bool) (int64, error) {
	if src == dst {
		return 0, fmt.Errorf("source and destination collection are both %q", src)
	}
	db := c.client.Database(c.cfg.Database)

	cursor, err := db.Collection(src).Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", src, err)
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", src, err)
	}

	target := db.Collection(dst)
	if clear {
		res, err := target.DeleteMany(ctx, bson.M{})
		if err != nil {
			return 0, fmt.Errorf("clear %s: %w", dst, err)
		}
		logging.Info().Str("collection", dst).Int64("deleted", res.DeletedCount).Msg("Cleared destination collection")
	}

	if len(docs) == 0 {
		return 0, nil
	}

	batch := make([]interface{}, len(docs))
	for i, d := range docs {
		batch[i] = d
	}
	res, err := target.InsertMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", dst, err)
	}
	return int64(len(res.InsertedIDs)), nil
}

var _ database.Connector = (*Connector)(nil)
var _ database.Pinger = (*Connector)(nil)
