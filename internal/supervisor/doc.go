// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

/*
Package supervisor runs the server's long-lived services under a suture v4
supervisor tree.

The tree has two layers so a failing event consumer never takes the API
down:

	RootSupervisor ("smartscore")
	├── EventsSupervisor ("events-layer")
	│   └── EventAuditService (if EVENTS_ENABLED)
	└── APISupervisor ("api-layer")
	    ├── HTTPServerService ("http-server")
	    └── HTTPServerService ("metrics-server", if METRICS_ENABLED)

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog using the zerolog-backed slog logger from internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService("http-server", srv, 10*time.Second))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
