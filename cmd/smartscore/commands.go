// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/config"
	"github.com/nathanprobert/smartscore-api/internal/database/mongostore"
	"github.com/nathanprobert/smartscore-api/internal/logging"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

func cmdHealth(ctx context.Context, a *app, args []string) error {
	if err := parse(a.subcommand("health"), args); err != nil {
		return err
	}
	body, err := a.client().Health(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, body)
	return err
}

func cmdHello(ctx context.Context, a *app, args []string) error {
	if err := parse(a.subcommand("hello"), args); err != nil {
		return err
	}
	body, err := a.client().Hello(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, body)
	return err
}

func cmdPlayers(ctx context.Context, a *app, args []string) error {
	fs := a.subcommand("players")
	date := fs.String("date", a.today(), "game date, YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return err
	}

	resp, err := a.client().Players(ctx, *date)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func cmdAllPlayers(ctx context.Context, a *app, args []string) error {
	fs := a.subcommand("all-players")
	noDecode := fs.Bool("no-decode", false, "print the base64 payload as served")
	if err := parse(fs, args); err != nil {
		return err
	}

	c := a.client()
	if *noDecode {
		resp, err := c.AllPlayers(ctx)
		if err != nil {
			return err
		}
		return a.writeJSON(resp)
	}

	players, err := c.AllPlayersDecoded(ctx)
	if err != nil {
		return err
	}
	return a.writeJSON(map[string]any{"count": len(players), "players": players})
}

func cmdUnscoredDates(ctx context.Context, a *app, args []string) error {
	if err := parse(a.subcommand("unscored-dates"), args); err != nil {
		return err
	}
	dates, err := a.client().UnscoredDates(ctx)
	if err != nil {
		return err
	}
	return a.writeJSON(map[string]any{"dates": dates})
}

func cmdUpload(ctx context.Context, a *app, args []string) error {
	fs := a.subcommand("upload")
	file := fs.String("file", "", "JSON file holding an array of players or {\"players\": [...]}")
	date := fs.String("date", "", "stamp every record with this date")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("upload: --file is required")
	}

	players, err := readPlayersFile(*file)
	if err != nil {
		return err
	}
	if *date != "" {
		for _, p := range players {
			p[models.FieldDate] = *date
		}
	}

	resp, err := a.client().Upload(ctx, players)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

// readPlayersFile accepts either a bare array or an upload body.
func readPlayersFile(path string) ([]models.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var players []models.Player
	if err := json.Unmarshal(data, &players); err == nil {
		return players, nil
	}

	var body struct {
		Players []models.Player `json:"players"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if body.Players == nil {
		return nil, fmt.Errorf("parse %s: no players array found", path)
	}
	return body.Players, nil
}

func cmdDeleteGame(ctx context.Context, a *app, args []string) error {
	fs := a.subcommand("delete-game")
	date := fs.String("date", "", "game date, YYYY-MM-DD")
	home := fs.String("home", "", "home team abbreviation")
	away := fs.String("away", "", "away team abbreviation")
	confirm := confirmFlag(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *date == "" || *home == "" || *away == "" {
		return errors.New("delete-game: --date, --home and --away are required")
	}

	game := models.GameKey{Date: *date, Home: *home, Away: *away}
	fmt.Fprintf(a.stderr, "About to delete every %s and %s record on %s from %s\n", game.Home, game.Away, game.Date, a.baseURL)
	if !*confirm {
		return errConfirmationRequired
	}

	resp, err := a.client().DeleteGame(ctx, game)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func cmdBackfill(ctx context.Context, a *app, args []string) error {
	fs := a.subcommand("backfill")
	date := fs.String("date", "", "game date, YYYY-MM-DD")
	scored := fs.String("scored-ids", "", "comma separated ids of players who scored")
	confirm := confirmFlag(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *date == "" {
		return errors.New("backfill: --date is required")
	}
	ids := splitIDs(*scored)

	fmt.Fprintf(a.stderr, "About to mark %d player(s) scored and every other record on %s not scored on %s\n", len(ids), *date, a.baseURL)
	if !*confirm {
		return errConfirmationRequired
	}

	resp, err := a.client().Backfill(ctx, *date, ids)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func cmdExportCSV(ctx context.Context, a *app, args []string) error {
	fs := a.subcommand("export-csv")
	out := fs.String("out", "data.csv", "output file, - for stdout")
	if err := parse(fs, args); err != nil {
		return err
	}

	players, err := a.client().AllPlayersDecoded(ctx)
	if err != nil {
		return err
	}

	if *out == "-" {
		return writeCSV(a.stdout, players)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	if err := writeCSV(f, players); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", *out, err)
	}
	fmt.Fprintf(a.stderr, "Wrote %d player(s) to %s\n", len(players), *out)
	return nil
}

func cmdCopyCollection(ctx context.Context, a *app, args []string) error {
	fs := a.subcommand("copy-collection")
	clearFirst := fs.Bool("clear", false, "delete every document in the destination first")
	confirm := confirmFlag(fs)
	if err := parse(fs, args); err != nil {
		return err
	}

	uri := a.getenv("MONGODB_URI")
	if uri == "" {
		return errors.New("copy-collection: MONGODB_URI is required")
	}
	database := a.getenv("MONGODB_DATABASE")
	if database == "" {
		database = "players"
	}

	if *clearFirst {
		fmt.Fprintf(a.stderr, "About to clear %s and copy %s into it\n", config.DevCollection, config.ProdCollection)
	} else {
		fmt.Fprintf(a.stderr, "About to copy %s into %s; existing documents with the same _id will fail\n", config.ProdCollection, config.DevCollection)
	}
	if !*confirm {
		return errConfirmationRequired
	}

	conn, err := mongostore.Connect(ctx, mongostore.Config{
		URI:        uri,
		Database:   database,
		Collection: config.ProdCollection,
		AppName:    "smartscore-cli",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
			logging.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	n, err := conn.CopyCollection(ctx, config.ProdCollection, config.DevCollection, *clearFirst)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "Copied %d document(s) from %s to %s\n", n, config.ProdCollection, config.DevCollection)
	return err
}
