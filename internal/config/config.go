// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Environment names accepted in server.environment.
const (
	EnvironmentDev  = "dev"
	EnvironmentProd = "prod"
)

// Collection names used when database.collection is not set explicitly.
const (
	ProdCollection = "SmartScore"
	DevCollection  = "SmartScoreDev"
)

// Config holds all server configuration.
//
// Values are resolved in three layers (see LoadWithKoanf):
//  1. Built-in defaults
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/smartscore/config.yaml)
//  3. Environment variables
//
// Config is immutable after Load and is passed explicitly to the components
// that need it; nothing reads configuration from package-level state.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Database DatabaseConfig `koanf:"database"`
	Events   EventsConfig   `koanf:"events"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// Environment is "dev" or "prod" (aliases "development" and "production").
	// It selects the default player collection.
	Environment string `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs against production data.
func (s ServerConfig) IsProduction() bool {
	switch strings.ToLower(s.Environment) {
	case EnvironmentProd, "production":
		return true
	default:
		return false
	}
}

// SecurityConfig holds the bearer token and the CORS allow-list.
type SecurityConfig struct {
	// APIAuthToken is the single shared secret every authenticated request
	// must present as "Authorization: Bearer <token>".
	APIAuthToken string `koanf:"api_auth_token"`

	// CORSOrigins lists browser origins that may read responses.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig selects and configures the player store backend.
type DatabaseConfig struct {
	// Backend is "mongodb" (default) or "badger".
	Backend string `koanf:"backend"`

	MongoDBURI     string        `koanf:"mongodb_uri"`
	Database       string        `koanf:"database"`
	Collection     string        `koanf:"collection"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`

	BadgerPath     string `koanf:"badger_path"`
	BadgerInMemory bool   `koanf:"badger_in_memory"`
}

// CollectionName resolves the player collection for the given server
// settings: the explicit collection wins, otherwise production data lives in
// SmartScore and everything else in SmartScoreDev.
func (d DatabaseConfig) CollectionName(server ServerConfig) string {
	if d.Collection != "" {
		return d.Collection
	}
	if server.IsProduction() {
		return ProdCollection
	}
	return DevCollection
}

// EventsConfig configures player change-event publishing.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// Transport is "gochannel" (in-process) or "nats" (JetStream).
	Transport   string `koanf:"transport"`
	TopicPrefix string `koanf:"topic_prefix"`

	NATSURL        string `koanf:"nats_url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	StoreDir       string `koanf:"store_dir"`

	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
}

// MetricsConfig configures the Prometheus listener. It runs on its own
// address so the API route table is unaffected.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	Path    string `koanf:"path"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// String renders the configuration for startup logs with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"server=%s env=%s backend=%s database=%s collection=%s events=%t/%s metrics=%t auth_token=%s",
		c.Server.Addr(),
		c.Server.Environment,
		c.Database.Backend,
		c.Database.Database,
		c.Database.CollectionName(c.Server),
		c.Events.Enabled,
		c.Events.Transport,
		c.Metrics.Enabled,
		maskSecret(c.Security.APIAuthToken),
	)
}

func maskSecret(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "****"
}
