// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package database

import (
	"context"
	"time"

	"github.com/nathanprobert/smartscore-api/internal/logging"
	"github.com/nathanprobert/smartscore-api/internal/metrics"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// Operation names used in metrics and logs.
const (
	OpFindByDate            = "find_by_date"
	OpFindAll               = "find_all"
	OpInsertMany            = "insert_many"
	OpDeleteGame            = "delete_game"
	OpUpdateScored          = "update_scored"
	OpBackfill              = "backfill"
	OpDistinctUnscoredDates = "distinct_unscored_dates"
)

// Store implements PlayerStore on top of a Connector.
type Store struct {
	connector Connector
	publisher ChangePublisher
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher publishes change events after successful mutations.
func WithPublisher(p ChangePublisher) Option {
	return func(s *Store) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore wraps connector.
func NewStore(connector Connector, opts ...Option) *Store {
	s := &Store{
		connector: connector,
		publisher: noopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend names the underlying connector.
func (s *Store) Backend() string {
	return s.connector.Backend()
}

// Ping checks backend reachability when the connector supports it.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.connector.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the connector.
func (s *Store) Close(ctx context.Context) error {
	return s.connector.Close(ctx)
}

// run executes fn in a fresh session and records its timing and outcome.
func run[T any](ctx context.Context, s *Store, op string, fn func(Session) (T, error)) (T, error) {
	start := time.Now()
	result, err := WithSession(ctx, s.connector, fn)
	duration := time.Since(start)

	metrics.RecordDBQuery(op, duration, err)
	if err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Str("operation", op).
			Str("backend", s.connector.Backend()).
			Dur("duration", duration).
			Msg("Player store operation failed")
	}
	return result, err
}

// FindByDate implements PlayerStore.
func (s *Store) FindByDate(ctx context.Context, date string) ([]models.Player, error) {
	return run(ctx, s, OpFindByDate, func(sess Session) ([]models.Player, error) {
		return sess.FindByDate(ctx, date)
	})
}

// FindAll implements PlayerStore.
func (s *Store) FindAll(ctx context.Context) ([]models.Player, error) {
	return run(ctx, s, OpFindAll, func(sess Session) ([]models.Player, error) {
		return sess.FindAll(ctx)
	})
}

// InsertMany implements PlayerStore.
func (s *Store) InsertMany(ctx context.Context, players []models.Player) (int64, error) {
	n, err := run(ctx, s, OpInsertMany, func(sess Session) (int64, error) {
		return sess.InsertMany(ctx, players)
	})
	if err != nil {
		return 0, err
	}

	metrics.RecordRecordsAffected("inserted", n)
	if n == 0 {
		return n, nil
	}
	s.publishChange(ctx, models.ChangeEvent{
		Type:  models.ChangePlayersUploaded,
		Date:  commonDate(players),
		Count: n,
	})
	return n, nil
}

// DeleteGame implements PlayerStore.
func (s *Store) DeleteGame(ctx context.Context, date string, teams []string) (int64, error) {
	n, err := run(ctx, s, OpDeleteGame, func(sess Session) (int64, error) {
		return sess.DeleteGame(ctx, date, teams)
	})
	if err != nil {
		return 0, err
	}

	metrics.RecordRecordsAffected("deleted", n)
	if n == 0 {
		return n, nil
	}
	s.publishChange(ctx, models.ChangeEvent{
		Type:  models.ChangeGameDeleted,
		Date:  date,
		Teams: teams,
		Count: n,
	})
	return n, nil
}

// UpdateScored implements PlayerStore. It publishes no event; Backfill does.
func (s *Store) UpdateScored(ctx context.Context, date string, ids []int64, inSet bool, value bool) (int64, error) {
	return run(ctx, s, OpUpdateScored, func(sess Session) (int64, error) {
		return sess.UpdateScored(ctx, date, ids, inSet, value)
	})
}

// Backfill implements PlayerStore. Both updates share one session and the
// second is skipped when the first fails.
func (s *Store) Backfill(ctx context.Context, date string, ids []int64) (models.BackfillResult, error) {
	result, err := run(ctx, s, OpBackfill, func(sess Session) (models.BackfillResult, error) {
		var res models.BackfillResult

		scored, err := sess.UpdateScored(ctx, date, ids, true, true)
		if err != nil {
			return res, err
		}
		res.ScoredCount = scored

		unscored, err := sess.UpdateScored(ctx, date, ids, false, false)
		if err != nil {
			return res, err
		}
		res.UnscoredCount = unscored

		return res, nil
	})
	if err != nil {
		return models.BackfillResult{}, err
	}

	metrics.RecordRecordsAffected("scored", result.ScoredCount)
	metrics.RecordRecordsAffected("unscored", result.UnscoredCount)
	if result.ScoredCount == 0 && result.UnscoredCount == 0 {
		return result, nil
	}
	s.publishChange(ctx, models.ChangeEvent{
		Type:     models.ChangeScoredBackfill,
		Date:     date,
		Count:    result.ScoredCount,
		Unscored: result.UnscoredCount,
	})
	return result, nil
}

// DistinctUnscoredDates implements PlayerStore.
func (s *Store) DistinctUnscoredDates(ctx context.Context) ([]string, error) {
	return run(ctx, s, OpDistinctUnscoredDates, func(sess Session) ([]string, error) {
		return sess.DistinctUnscoredDates(ctx)
	})
}

var _ PlayerStore = (*Store)(nil)
