// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// Session implements database.Session over a mongo.Session.
type Session struct {
	sess mongo.Session
	coll *mongo.Collection
}

func (s *Session) ctx(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, s.sess)
}

// FindByDate implements database.Session.
func (s *Session) FindByDate(ctx context.Context, date string) ([]models.Player, error) {
	return s.find(ctx, bson.M{models.FieldDate: date})
}

// FindAll implements database.Session.
func (s *Session) FindAll(ctx context.Context) ([]models.Player, error) {
	return s.find(ctx, bson.M{})
}

func (s *Session) find(ctx context.Context, filter bson.M) ([]models.Player, error) {
	sctx := s.ctx(ctx)
	cursor, err := s.coll.Find(sctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}

	var docs []bson.M
	if err := cursor.All(sctx, &docs); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}

	players := make([]models.Player, len(docs))
	for i, d := range docs {
		players[i] = models.Player(d)
	}
	return players, nil
}

// InsertMany implements database.Session.
func (s *Session) InsertMany(ctx context.Context, players []models.Player) (int64, error) {
	if len(players) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(players))
	for i, p := range players {
		docs[i] = bson.M(p)
	}

	res, err := s.coll.InsertMany(s.ctx(ctx), docs)
	if err != nil {
		return 0, fmt.Errorf("insert players: %w", err)
	}
	return int64(len(res.InsertedIDs)), nil
}

// DeleteGame implements database.Session.
func (s *Session) DeleteGame(ctx context.Context, date string, teams []string) (int64, error) {
	filter := bson.M{
		models.FieldDate:     date,
		models.FieldTeamAbbr: bson.M{"$in": nonNil(teams)},
	}
	res, err := s.coll.DeleteMany(s.ctx(ctx), filter)
	if err != nil {
		return 0, fmt.Errorf("delete game: %w", err)
	}
	return res.DeletedCount, nil
}

// UpdateScored implements database.Session.
func (s *Session) UpdateScored(ctx context.Context, date string, ids []int64, inSet bool, value bool) (int64, error) {
	op := "$nin"
	if inSet {
		op = "$in"
	}
	filter := bson.M{
		models.FieldDate: date,
		models.FieldID:   bson.M{op: nonNil(ids)},
	}
	update := bson.M{"$set": bson.M{models.FieldScored: value}}

	res, err := s.coll.UpdateMany(s.ctx(ctx), filter, update)
	if err != nil {
		return 0, fmt.Errorf("update scored=%t: %w", value, err)
	}
	return res.ModifiedCount, nil
}

// DistinctUnscoredDates implements database.Session.
func (s *Session) DistinctUnscoredDates(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(s.ctx(ctx), models.FieldDate, bson.M{models.FieldScored: nil})
	if err != nil {
		return nil, fmt.Errorf("distinct unscored dates: %w", err)
	}

	dates := make([]string, 0, len(values))
	for _, v := range values {
		if d, ok := v.(string); ok {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// Close ends the logical session.
func (s *Session) Close(ctx context.Context) error {
	s.sess.EndSession(ctx)
	return nil
}

// nonNil keeps $in and $nin operands encoded as arrays; a nil slice would
// encode as null and be rejected by the server.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var _ database.Session = (*Session)(nil)
