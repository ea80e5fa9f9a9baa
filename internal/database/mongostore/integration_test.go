// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

//go:build integration

package mongostore

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/models"
	"github.com/nathanprobert/smartscore-api/internal/testinfra"
)

func setupConnector(t *testing.T) (*Connector, context.Context) {
	t.Helper()
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	mongo, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() { testinfra.CleanupContainer(t, context.Background(), mongo.Container) })

	conn, err := Connect(ctx, Config{URI: mongo.URI, Database: "players", Collection: "SmartScoreDev"})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(context.Background()) })

	return conn, ctx
}

func seed(t *testing.T, ctx context.Context, store *database.Store) {
	t.Helper()
	players := []models.Player{
		{"name": "A", "id": float64(1), "team_name": "Leafs", "team_abbr": "TOR", "date": "2024-01-15"},
		{"name": "B", "id": float64(2), "team_name": "Leafs", "team_abbr": "TOR", "date": "2024-01-15"},
		{"name": "C", "id": float64(3), "team_name": "Canadiens", "team_abbr": "MTL", "date": "2024-01-15"},
		{"name": "D", "id": float64(4), "team_name": "Bruins", "team_abbr": "BOS", "date": "2024-01-15"},
		{"name": "E", "id": float64(1), "team_name": "Leafs", "team_abbr": "TOR", "date": "2024-01-16", "scored": nil},
		{"name": "F", "id": float64(5), "team_name": "Oilers", "team_abbr": "EDM", "date": "2024-01-14", "scored": true},
	}
	n, err := store.InsertMany(ctx, players)
	if err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	if n != int64(len(players)) {
		t.Fatalf("inserted = %d, want %d", n, len(players))
	}
}

func TestMongoStore_Integration(t *testing.T) {
	conn, ctx := setupConnector(t)
	store := database.NewStore(conn)
	seed(t, ctx, store)

	t.Run("find by date", func(t *testing.T) {
		players, err := store.FindByDate(ctx, "2024-01-15")
		if err != nil {
			t.Fatalf("FindByDate() error = %v", err)
		}
		if len(players) != 4 {
			t.Errorf("len = %d, want 4", len(players))
		}
		if _, ok := players[0][models.FieldMongoID]; !ok {
			t.Error("stored records should carry _id")
		}
	})

	t.Run("distinct unscored dates", func(t *testing.T) {
		dates, err := store.DistinctUnscoredDates(ctx)
		if err != nil {
			t.Fatalf("DistinctUnscoredDates() error = %v", err)
		}
		sort.Strings(dates)
		if len(dates) != 2 || dates[0] != "2024-01-15" || dates[1] != "2024-01-16" {
			t.Errorf("dates = %v", dates)
		}
	})

	t.Run("backfill", func(t *testing.T) {
		res, err := store.Backfill(ctx, "2024-01-15", []int64{1, 3})
		if err != nil {
			t.Fatalf("Backfill() error = %v", err)
		}
		if res.ScoredCount != 2 || res.UnscoredCount != 2 {
			t.Errorf("result = %+v, want 2/2", res)
		}

		again, err := store.Backfill(ctx, "2024-01-15", []int64{1, 3})
		if err != nil {
			t.Fatalf("second Backfill() error = %v", err)
		}
		if again.ScoredCount != 0 || again.UnscoredCount != 0 {
			t.Errorf("repeat result = %+v, want 0/0", again)
		}
	})

	t.Run("backfill with no ids unscores the date", func(t *testing.T) {
		res, err := store.Backfill(ctx, "2024-01-16", nil)
		if err != nil {
			t.Fatalf("Backfill() error = %v", err)
		}
		if res.ScoredCount != 0 || res.UnscoredCount != 1 {
			t.Errorf("result = %+v, want 0/1", res)
		}
	})

	t.Run("delete game", func(t *testing.T) {
		n, err := store.DeleteGame(ctx, "2024-01-15", []string{"TOR", "MTL"})
		if err != nil {
			t.Fatalf("DeleteGame() error = %v", err)
		}
		if n != 3 {
			t.Errorf("deleted = %d, want 3", n)
		}
		all, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(all) != 3 {
			t.Errorf("remaining = %d, want 3", len(all))
		}
	})
}

func TestMongoStore_CopyCollection(t *testing.T) {
	conn, ctx := setupConnector(t)
	store := database.NewStore(conn)
	seed(t, ctx, store)

	n, err := conn.CopyCollection(ctx, "SmartScoreDev", "SmartScoreCopy", false)
	if err != nil {
		t.Fatalf("CopyCollection() error = %v", err)
	}
	if n != 6 {
		t.Errorf("copied = %d, want 6", n)
	}

	n, err = conn.CopyCollection(ctx, "SmartScoreDev", "SmartScoreCopy", true)
	if err != nil {
		t.Fatalf("CopyCollection(clear) error = %v", err)
	}
	if n != 6 {
		t.Errorf("copied after clear = %d, want 6", n)
	}

	count, err := conn.client.Database("players").Collection("SmartScoreCopy").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if count != 6 {
		t.Errorf("destination count = %d, want 6", count)
	}

	if _, err := conn.CopyCollection(ctx, "SmartScoreDev", "SmartScoreDev", false); err == nil {
		t.Error("copying a collection onto itself should fail")
	}
}

func TestMongoStore_ClosedConnector(t *testing.T) {
	conn, ctx := setupConnector(t)
	if err := conn.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := conn.Open(ctx); !errors.Is(err, database.ErrConnectorClosed) {
		t.Errorf("Open() after Close error = %v, want ErrConnectorClosed", err)
	}
}
