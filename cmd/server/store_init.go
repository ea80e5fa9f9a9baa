// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package main

import (
	"context"
	"fmt"

	"github.com/nathanprobert/smartscore-api/internal/config"
	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/database/badgerstore"
	"github.com/nathanprobert/smartscore-api/internal/database/mongostore"
)

// appName is reported to MongoDB and in app_info.
const appName = "smartscore-api"

// openConnector opens the backend selected by database.backend.
func openConnector(ctx context.Context, cfg *config.Config) (database.Connector, error) {
	switch cfg.Database.Backend {
	case database.BackendMongoDB:
		return mongostore.Connect(ctx, mongostore.Config{
			URI:            cfg.Database.MongoDBURI,
			Database:       cfg.Database.Database,
			Collection:     cfg.Database.CollectionName(cfg.Server),
			ConnectTimeout: cfg.Database.ConnectTimeout,
			AppName:        appName,
		})
	case database.BackendBadger:
		return badgerstore.Open(badgerstore.Config{
			Path:     cfg.Database.BadgerPath,
			InMemory: cfg.Database.BadgerInMemory,
		})
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnknownBackend, cfg.Database.Backend)
	}
}
