// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

/*
Package database defines the player persistence contract and the
instrumented store the HTTP handlers talk to.

# Layers

  - PlayerStore: what handlers call. Seven operations, no backend types.
  - Connector and Session: what a backend implements. A Connector hands out
    short-lived Sessions; every PlayerStore call runs inside exactly one.
  - WithSession: scoped acquisition. The session is closed on every exit
    path, including errors and panics.
  - Store: PlayerStore on top of a Connector. Records Prometheus timings,
    logs failures and publishes change events after successful mutations.

Backends live in sub-packages:

  - mongostore: MongoDB (production)
  - badgerstore: embedded Badger (local development and tests)

# Usage

	conn, err := mongostore.Connect(ctx, mongostore.Config{URI: uri, Database: "players", Collection: "SmartScoreDev"})
	if err != nil {
		return err
	}
	store := database.NewStore(conn, database.WithPublisher(publisher))
	players, err := store.FindByDate(ctx, "2024-01-15")

Nothing is retried. A failed call surfaces its error to the handler, which
maps it to a fixed 500 message.
*/
package database
