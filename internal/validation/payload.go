// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

// BackfillRequest is a validated POST /backfill-scored body.
type BackfillRequest struct {
	Date            string   `json:"date" validate:"yyyymmdd"`
	ScoredPlayerIDs []string `json:"scoredPlayerIds" validate:"dive,required"`
}

// NumericIDs converts ScoredPlayerIDs to the numeric form stored in player
// records. IDs with no leading integer are dropped since they cannot match
// any record.
func (b *BackfillRequest) NumericIDs() []int64 {
	ids := make([]int64, 0, len(b.ScoredPlayerIDs))
	for _, raw := range b.ScoredPlayerIDs {
		if id, ok := ParsePlayerID(raw); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// ValidateUploadPlayers decodes and validates a POST /players body. Players
// are checked in index order and the first failure is returned as a
// *RequestError.
func ValidateUploadPlayers(body []byte) ([]models.Player, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, reject(MsgInvalidJSON)
	}

	obj, _ := payload.(map[string]any)
	rawPlayers, ok := obj["players"].([]any)
	if !ok {
		return nil, reject(MsgPlayersRequired)
	}
	if len(rawPlayers) == 0 {
		return nil, reject(MsgPlayersEmpty)
	}

	players := make([]models.Player, 0, len(rawPlayers))
	for i, raw := range rawPlayers {
		player, err := validatePlayer(i, raw)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

func validatePlayer(index int, raw any) (models.Player, error) {
	var fields map[string]any
	switch v := raw.(type) {
	case map[string]any:
		fields = v
	case []any:
		// Arrays pass the object check and then fail on the first required field.
		fields = map[string]any{}
	default:
		return nil, reject(fmt.Sprintf("Player at index %d must be an object", index))
	}

	// null counts as missing; an empty string does not.
	for _, field := range models.RequiredPlayerFields {
		if v, present := fields[field]; !present || v == nil {
			return nil, reject(fmt.Sprintf("Player at index %d is missing required field: %s", index, field))
		}
	}

	if _, isNumber := fields[models.FieldID].(float64); !isNumber {
		return nil, reject(fmt.Sprintf("Player at index %d has invalid id: must be a number", index))
	}

	return models.Player(fields), nil
}

// ValidateBackfill decodes and validates a POST /backfill-scored body.
// Checks run in this order: JSON syntax, date presence, scoredPlayerIds is
// an array, date format, every ID a non-empty string.
func ValidateBackfill(body []byte) (*BackfillRequest, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, reject(MsgInvalidJSON)
	}

	obj, _ := payload.(map[string]any)
	rawDate := obj["date"]
	if isFalsy(rawDate) {
		return nil, reject(MsgDateFieldRequired)
	}

	rawIDs, ok := obj["scoredPlayerIds"].([]any)
	if !ok {
		return nil, reject(MsgScoredIDsRequired)
	}

	// A non-string date is present but can never match the format.
	date, _ := rawDate.(string)
	if err := GetValidator().Var(date, DateFormatTag); err != nil {
		return nil, reject(MsgInvalidDateFormat)
	}

	ids := make([]string, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, isString := raw.(string)
		if !isString {
			return nil, reject(MsgScoredIDsInvalid)
		}
		ids = append(ids, id)
	}

	req := &BackfillRequest{Date: date, ScoredPlayerIDs: ids}
	if err := GetValidator().Struct(req); err != nil {
		if fe := firstFieldError(err, DateFormatTag); fe != nil && fe.Tag() == DateFormatTag {
			return nil, reject(MsgInvalidDateFormat)
		}
		return nil, reject(MsgScoredIDsInvalid)
	}

	return req, nil
}

// isFalsy reports whether a decoded JSON value counts as not provided:
// null, "", false or 0.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	default:
		return false
	}
}

// ParsePlayerID reads the leading base-10 integer of s. Leading whitespace
// and a single sign are accepted and parsing stops at the first non-digit,
// so "12abc" is 12. It reports false when s has no leading digits.
func ParsePlayerID(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}
