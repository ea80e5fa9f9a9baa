// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package badgerstore

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/database"
	"github.com/nathanprobert/smartscore-api/internal/models"
)

// Session implements database.Session. Each operation runs in its own
// Badger transaction.
type Session struct {
	c *Connector
}

func dateKeyPrefix(date string) []byte {
	return []byte(playerPrefix + date + "/")
}

func recordKey(date string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", playerPrefix, date, seq))
}

// record is a decoded player with the key it is stored under.
type record struct {
	key    []byte
	player models.Player
}

// scan decodes every record under prefix.
func scan(ctx context.Context, txn *badger.Txn, prefix []byte) ([]record, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var out []record
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := it.Item()
		var p models.Player
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		}); err != nil {
			return nil, fmt.Errorf("decode %s: %w", item.Key(), err)
		}
		out = append(out, record{key: item.KeyCopy(nil), player: p})
	}
	return out, nil
}

// scanDate is scan restricted to records whose date field equals date. Dates
// containing "/" would otherwise leak into a shorter date's prefix.
func scanDate(ctx context.Context, txn *badger.Txn, date string) ([]record, error) {
	records, err := scan(ctx, txn, dateKeyPrefix(date))
	if err != nil {
		return nil, err
	}
	out := records[:0]
	for _, r := range records {
		if r.player.Date() == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Session) read(ctx context.Context, load func(*badger.Txn) ([]record, error)) ([]models.Player, error) {
	var players []models.Player
	err := s.c.db.View(func(txn *badger.Txn) error {
		records, err := load(txn)
		if err != nil {
			return err
		}
		players = make([]models.Player, len(records))
		for i, r := range records {
			players[i] = r.player
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

// FindByDate implements database.Session.
func (s *Session) FindByDate(ctx context.Context, date string) ([]models.Player, error) {
	return s.read(ctx, func(txn *badger.Txn) ([]record, error) {
		return scanDate(ctx, txn, date)
	})
}

// FindAll implements database.Session.
func (s *Session) FindAll(ctx context.Context) ([]models.Player, error) {
	return s.read(ctx, func(txn *badger.Txn) ([]record, error) {
		return scan(ctx, txn, []byte(playerPrefix))
	})
}

// InsertMany implements database.Session. The batch is written atomically
// from the caller's point of view only when it fits in one write batch
// flush; a failed flush may leave a prefix of the batch stored.
func (s *Session) InsertMany(ctx context.Context, players []models.Player) (int64, error) {
	wb := s.c.db.NewWriteBatch()
	defer wb.Cancel()

	for _, p := range players {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		seq, err := s.c.seq.Next()
		if err != nil {
			return 0, fmt.Errorf("next player sequence: %w", err)
		}

		doc := p.Without()
		doc[models.FieldMongoID] = fmt.Sprintf("%024x", seq)

		val, err := json.Marshal(doc)
		if err != nil {
			return 0, fmt.Errorf("encode player: %w", err)
		}
		if err := wb.Set(recordKey(p.Date(), seq), val); err != nil {
			return 0, fmt.Errorf("stage player: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("write players: %w", err)
	}
	return int64(len(players)), nil
}

// DeleteGame implements database.Session.
func (s *Session) DeleteGame(ctx context.Context, date string, teams []string) (int64, error) {
	match := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		match[t] = struct{}{}
	}

	var deleted int64
	err := s.c.db.Update(func(txn *badger.Txn) error {
		records, err := scanDate(ctx, txn, date)
		if err != nil {
			return err
		}
		for _, r := range records {
			abbr, isString := r.player[models.FieldTeamAbbr].(string)
			if !isString {
				continue
			}
			if _, ok := match[abbr]; !ok {
				continue
			}
			if err := txn.Delete(r.key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete game: %w", err)
	}
	return deleted, nil
}

// UpdateScored implements database.Session. Records without a numeric id
// never match the in-set and always match the not-in-set update.
func (s *Session) UpdateScored(ctx context.Context, date string, ids []int64, inSet bool, value bool) (int64, error) {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	var modified int64
	err := s.c.db.Update(func(txn *badger.Txn) error {
		records, err := scanDate(ctx, txn, date)
		if err != nil {
			return err
		}
		for _, r := range records {
			member := false
			if id, ok := r.player.NumericID(); ok {
				_, member = set[id]
			}
			if member != inSet {
				continue
			}
			if current, ok := r.player[models.FieldScored].(bool); ok && current == value {
				continue
			}

			r.player[models.FieldScored] = value
			val, err := json.Marshal(r.player)
			if err != nil {
				return fmt.Errorf("encode player: %w", err)
			}
			if err := txn.Set(r.key, val); err != nil {
				return err
			}
			modified++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("update scored=%t: %w", value, err)
	}
	return modified, nil
}

// DistinctUnscoredDates implements database.Session. Dates come back in
// ascending order.
func (s *Session) DistinctUnscoredDates(ctx context.Context) ([]string, error) {
	dates := []string{}
	err := s.c.db.View(func(txn *badger.Txn) error {
		records, err := scan(ctx, txn, []byte(playerPrefix))
		if err != nil {
			return err
		}
		seen := make(map[string]struct{})
		for _, r := range records {
			if !r.player.IsUnscored() {
				continue
			}
			date, isString := r.player[models.FieldDate].(string)
			if !isString {
				continue
			}
			if _, dup := seen[date]; dup {
				continue
			}
			seen[date] = struct{}{}
			dates = append(dates, date)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("distinct unscored dates: %w", err)
	}
	return dates, nil
}

// Close implements database.Session. Badger sessions hold no resources.
func (s *Session) Close(context.Context) error {
	return nil
}

var _ database.Session = (*Session)(nil)
