// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package models

// Player record field names used by the server.
const (
	FieldMongoID  = "_id"
	FieldID       = "id"
	FieldName     = "name"
	FieldTeamName = "team_name"
	FieldTeamAbbr = "team_abbr"
	FieldDate     = "date"
	FieldScored   = "scored"
	FieldStat     = "stat"
)

// RequiredPlayerFields are checked in this order on upload.
var RequiredPlayerFields = []string{FieldName, FieldID, FieldTeamName}

// UploadExcludedFields are dropped before a record is stored.
var UploadExcludedFields = []string{FieldStat}

// ExportExcludedFields are dropped from every record in the bulk export.
var ExportExcludedFields = []string{FieldMongoID, FieldID, FieldTeamAbbr}

// Player is a single player's stat line for one date.
//
// Known keys: name, id, team_name, team_abbr, date, home, injury_status,
// injury_desc, scored and the float metrics gpg, hgpg, five_gpg, hppg, tgpg,
// otga, otshga, tims. scored is tri-state: true, false, or absent/null
// meaning the record has never been reconciled.
type Player map[string]any

// Without returns a shallow copy of p with the given keys removed.
func (p Player) Without(keys ...string) Player {
	out := make(Player, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Date returns the record's date string, or "" when absent or not a string.
func (p Player) Date() string {
	s, _ := p[FieldDate].(string)
	return s
}

// TeamAbbr returns the record's team abbreviation, or "".
func (p Player) TeamAbbr() string {
	s, _ := p[FieldTeamAbbr].(string)
	return s
}

// NumericID returns the record's id as an int64. Stored ids may come back
// from a backend as int32, int64 or float64 depending on how they were
// decoded; non-integral or non-numeric ids report false.
func (p Player) NumericID() (int64, bool) {
	switch v := p[FieldID].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case float32:
		if v != float32(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// IsUnscored reports whether scored is absent or null.
func (p Player) IsUnscored() bool {
	v, ok := p[FieldScored]
	return !ok || v == nil
}

// GameKey identifies a game: a date and the two team identifiers whose
// records belong to it. It is never stored.
type GameKey struct {
	Date string
	Home string
	Away string
}

// Teams returns the two team identifiers matched by a game delete.
func (g GameKey) Teams() []string {
	return []string{g.Home, g.Away}
}

// BackfillResult reports how many records each half of a backfill changed.
type BackfillResult struct {
	ScoredCount   int64 `json:"scoredCount"`
	UnscoredCount int64 `json:"unscoredCount"`
}
