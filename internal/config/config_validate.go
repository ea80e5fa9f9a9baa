// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingAuthToken is returned when API_AUTH_TOKEN is not configured.
// The server refuses to start rather than serve every request as 401.
var ErrMissingAuthToken = errors.New("API_AUTH_TOKEN is required")

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch strings.ToLower(c.Server.Environment) {
	case EnvironmentDev, "development", EnvironmentProd, "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be dev or prod, got %q", c.Server.Environment)
	}
}

func (c *Config) validateSecurity() error {
	if c.Security.APIAuthToken == "" {
		return ErrMissingAuthToken
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return errors.New("CORS_ORIGINS must list exact origins, wildcard is not allowed")
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Backend {
	case "mongodb":
		if c.Database.MongoDBURI == "" {
			return errors.New("MONGODB_URI is required when DATABASE_BACKEND=mongodb")
		}
		u, err := url.Parse(c.Database.MongoDBURI)
		if err != nil {
			return fmt.Errorf("MONGODB_URI failed to parse: %w", err)
		}
		if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
			return fmt.Errorf("MONGODB_URI scheme must be mongodb or mongodb+srv, got: %s", u.Scheme)
		}
		if c.Database.Database == "" {
			return errors.New("MONGODB_DATABASE must not be empty")
		}
	case "badger":
		if !c.Database.BadgerInMemory && c.Database.BadgerPath == "" {
			return errors.New("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
		}
	default:
		return fmt.Errorf("DATABASE_BACKEND must be mongodb or badger, got %q", c.Database.Backend)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	switch c.Events.Transport {
	case "gochannel":
	case "nats":
		if !c.Events.EmbeddedServer && c.Events.NATSURL == "" {
			return errors.New("NATS_URL is required when EVENTS_TRANSPORT=nats without an embedded server")
		}
	default:
		return fmt.Errorf("EVENTS_TRANSPORT must be gochannel or nats, got %q", c.Events.Transport)
	}
	if c.Events.TopicPrefix == "" {
		return errors.New("EVENTS_TOPIC_PREFIX must not be empty")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL is invalid: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
