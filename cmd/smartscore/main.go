// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

// Package main is the smartscore operator CLI. It talks to a deployed API
// (or a local server) with the shared bearer token and covers the routine
// maintenance tasks: inspecting data, uploading a batch, deleting a game,
// reconciling the scored flag, exporting to CSV and copying the production
// collection into the dev collection.
//
//	smartscore --env=dev players --date=2026-02-05
//	smartscore --env=prod backfill --date=2026-02-05 --scored-ids=8477934,8484145 --confirm
//	smartscore export-csv --out=lib/data.csv
//
// The token is read from --token, API_AUTH_TOKEN or AUTH_TOKEN; a .env file
// in the working directory is loaded first.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nathanprobert/smartscore-api/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// initLogging sends CLI logs to stderr in console format.
func initLogging(stderr io.Writer, verbose bool) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Config{
		Level:  level,
		Format: "console",
		Output: stderr,
	})
}
