// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package validation

import (
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Client-facing validation messages.
const (
	MsgDateParamRequired = "Date parameter is required"
	MsgHomeParamRequired = "Home parameter is required"
	MsgAwayParamRequired = "Away parameter is required"
	MsgInvalidDateFormat = "Invalid date format. Expected YYYY-MM-DD"
	MsgInvalidJSON       = "Invalid JSON in request body"
	MsgPlayersRequired   = "players field is required and must be an array"
	MsgPlayersEmpty      = "players array cannot be empty"
	MsgDateFieldRequired = "Date field is required"
	MsgScoredIDsRequired = "scoredPlayerIds field is required and must be an array"
	MsgScoredIDsInvalid  = "All player IDs must be non-empty strings"
)

// DateFormatTag is the validator tag for YYYY-MM-DD strings.
const DateFormatTag = "yyyymmdd"

// dateRegex is syntactic only: 2024-02-30 matches.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// RequestError is a client input error. Message is returned to the caller
// as-is in the JSON error envelope.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func reject(msg string) *RequestError {
	return &RequestError{Message: msg}
}

// AsRequestError unwraps err into a *RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// GetValidator returns the shared validator with the yyyymmdd tag registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation(DateFormatTag, func(fl validator.FieldLevel) bool {
			return IsValidDateFormat(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	})
	return validate
}

// IsValidDateFormat reports whether date is four digits, a dash, two digits,
// a dash and two digits with nothing else. No calendar check is made.
func IsValidDateFormat(date string) bool {
	return dateRegex.MatchString(date)
}

// firstFieldError returns the first error whose tag is in priority order,
// falling back to the first error reported.
func firstFieldError(err error, priority ...string) validator.FieldError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return nil
	}
	for _, tag := range priority {
		for _, fe := range fieldErrs {
			if fe.Tag() == tag {
				return fe
			}
		}
	}
	return fieldErrs[0]
}
