// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package validation

import "net/url"

// Result is the outcome of validating query parameters. Callers must check
// Valid before reading the extracted fields; on failure only Error is set.
type Result struct {
	Valid bool
	Date  string
	Home  string
	Away  string
	Error string
}

func invalid(msg string) Result {
	return Result{Valid: false, Error: msg}
}

type dateParams struct {
	Date string `validate:"required,yyyymmdd"`
}

type gameParams struct {
	Date string `validate:"required,yyyymmdd"`
	Home string `validate:"required"`
	Away string `validate:"required"`
}

// paramMessages is keyed by "<Field>.<tag>".
var paramMessages = map[string]string{
	"Date.required": MsgDateParamRequired,
	"Home.required": MsgHomeParamRequired,
	"Away.required": MsgAwayParamRequired,
	"Date.yyyymmdd": MsgInvalidDateFormat,
}

// ValidateDateParameter validates the date query parameter.
func ValidateDateParameter(q url.Values) Result {
	params := dateParams{Date: q.Get("date")}
	if err := GetValidator().Struct(params); err != nil {
		return invalid(paramMessage(err))
	}
	return Result{Valid: true, Date: params.Date}
}

// ValidateGameParameters validates the date, home and away query parameters.
// Presence is checked first in that order, then the date format.
func ValidateGameParameters(q url.Values) Result {
	params := gameParams{
		Date: q.Get("date"),
		Home: q.Get("home"),
		Away: q.Get("away"),
	}
	if err := GetValidator().Struct(params); err != nil {
		return invalid(paramMessage(err))
	}
	return Result{Valid: true, Date: params.Date, Home: params.Home, Away: params.Away}
}

func paramMessage(err error) string {
	fe := firstFieldError(err, "required")
	if fe == nil {
		return err.Error()
	}
	if msg, ok := paramMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Error()
}
