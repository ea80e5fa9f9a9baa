// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package database

import (
	"context"
	"fmt"
)

// WithSession opens a session, runs fn and closes the session on every exit
// path. A close failure is reported only when fn itself succeeded; otherwise
// fn's error is returned unchanged.
//
//	players, err := database.WithSession(ctx, conn, func(s database.Session) ([]models.Player, error) {
//		return s.FindByDate(ctx, date)
//	})
func WithSession[T any](ctx context.Context, c Connector, fn func(Session) (T, error)) (result T, err error) {
	session, err := c.Open(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("open %s session: %w", c.Backend(), err)
	}

	defer func() {
		closeErr := session.Close(context.WithoutCancel(ctx))
		if closeErr != nil && err == nil {
			err = fmt.Errorf("close %s session: %w", c.Backend(), closeErr)
		}
	}()

	return fn(session)
}
