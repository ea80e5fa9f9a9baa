// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/nathanprobert/smartscore-api/internal/models"
)

// Marshal validates and encodes an event.
func Marshal(event models.ChangeEvent) ([]byte, error) {
	if err := validateEvent(event); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes an event.
func Unmarshal(data []byte) (models.ChangeEvent, error) {
	var event models.ChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return models.ChangeEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := validateEvent(event); err != nil {
		return models.ChangeEvent{}, fmt.Errorf("validate event: %w", err)
	}
	return event, nil
}

func validateEvent(event models.ChangeEvent) error {
	if event.EventID == "" {
		return errors.New("event_id is required")
	}
	if event.Type == "" {
		return errors.New("type is required")
	}
	return nil
}
