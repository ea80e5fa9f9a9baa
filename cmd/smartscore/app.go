// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/client"
	"github.com/nathanprobert/smartscore-api/internal/logging"
)

// Deployments selectable with --env.
var apiURLs = map[string]string{
	"dev":   "https://smartscore-api-dev.nathanprobert.workers.dev",
	"prod":  "https://smartscore-api-prod.nathanprobert.workers.dev",
	"local": "http://localhost:8787",
}

var (
	// errUsage means usage was already printed.
	errUsage = errors.New("usage")

	errConfirmationRequired = errors.New("refusing to run without --confirm")
	errMissingToken         = errors.New("no API token: pass --token or set API_AUTH_TOKEN")
)

// app is the state shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	now    func() time.Time

	env        string
	baseURL    string
	token      string
	httpClient *http.Client
}

type command struct {
	summary string
	// needsToken is false for commands that work without the bearer token.
	needsToken bool
	run        func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"health":          {"check GET /health", false, cmdHealth},
	"hello":           {"call GET /", true, cmdHello},
	"players":         {"list records for --date", true, cmdPlayers},
	"all-players":     {"fetch the full export (decoded unless --no-decode)", true, cmdAllPlayers},
	"unscored-dates":  {"list dates with unreconciled records", true, cmdUnscoredDates},
	"upload":          {"upload players from a JSON --file", true, cmdUpload},
	"delete-game":     {"delete a game's records (destructive)", true, cmdDeleteGame},
	"backfill":        {"set scored for --date from --scored-ids (destructive)", true, cmdBackfill},
	"export-csv":      {"write the decoded export as CSV to --out", true, cmdExportCSV},
	"copy-collection": {"copy SmartScore into SmartScoreDev in MongoDB (destructive)", false, cmdCopyCollection},
}

// run parses global flags and dispatches to a subcommand.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	a := &app{stdout: stdout, stderr: stderr, getenv: getenv, now: time.Now}

	fs := flag.NewFlagSet("smartscore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	defaultEnv := getenv("API_ENV")
	if defaultEnv == "" {
		defaultEnv = "local"
	}
	fs.StringVar(&a.env, "env", defaultEnv, "target deployment: dev, prod or local")
	fs.StringVar(&a.baseURL, "url", "", "API base URL (overrides --env)")
	fs.StringVar(&a.token, "token", "", "bearer token (default $API_AUTH_TOKEN or $AUTH_TOKEN)")
	verbose := fs.Bool("verbose", false, "log debug output to stderr")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	initLogging(stderr, *verbose)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		fs.Usage()
		return errUsage
	}

	if err := a.resolve(cmd.needsToken); err != nil {
		return err
	}
	logging.Debug().Str("command", rest[0]).Str("url", a.baseURL).Msg("Running command")
	return cmd.run(ctx, a, rest[1:])
}

// resolve fills in the base URL and token from --env and the environment.
func (a *app) resolve(needsToken bool) error {
	if a.baseURL == "" {
		u, ok := apiURLs[a.env]
		if !ok {
			return fmt.Errorf("unknown --env %q: want dev, prod or local", a.env)
		}
		a.baseURL = u
	}
	if a.token == "" {
		a.token = a.getenv("API_AUTH_TOKEN")
	}
	if a.token == "" {
		a.token = a.getenv("AUTH_TOKEN")
	}
	if needsToken && a.token == "" {
		return errMissingToken
	}
	return nil
}

func (a *app) client() *client.Client {
	return client.New(a.baseURL, a.token, client.WithHTTPClient(a.httpClient))
}

// writeJSON pretty-prints v to stdout.
func (a *app) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}

// today is the default --date, in UTC.
func (a *app) today() string {
	return a.now().UTC().Format(time.DateOnly)
}

// subcommand returns a flag set for name whose errors go to stderr.
func (a *app) subcommand(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("smartscore "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// confirmFlag registers --confirm with its --yes and -y aliases.
func confirmFlag(fs *flag.FlagSet) *bool {
	confirm := new(bool)
	fs.BoolVar(confirm, "confirm", false, "perform the destructive operation")
	fs.BoolVar(confirm, "yes", false, "alias for --confirm")
	fs.BoolVar(confirm, "y", false, "alias for --confirm")
	return confirm
}

// parse parses a subcommand's flags. The flag package has already printed
// the problem (or the help text) when it fails.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: smartscore [global flags] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fs.PrintDefaults()
}

// splitIDs splits a comma separated id list, dropping blanks.
func splitIDs(s string) []string {
	ids := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
