// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/smartscore/config.yaml",
	"/etc/smartscore/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultCORSOrigin is the production frontend.
const DefaultCORSOrigin = "https://smartscore.nathanprobert.ca"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8787,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     EnvironmentDev,
		},
		Security: SecurityConfig{
			APIAuthToken: "",
			CORSOrigins:  []string{DefaultCORSOrigin},
		},
		Database: DatabaseConfig{
			Backend:        "mongodb",
			MongoDBURI:     "",
			Database:       "players",
			Collection:     "", // derived from server.environment
			ConnectTimeout: 10 * time.Second,
			BadgerPath:     "/data/smartscore",
			BadgerInMemory: false,
		},
		Events: EventsConfig{
			Enabled:                 false,
			Transport:               "gochannel",
			TopicPrefix:             "smartscore.players",
			NATSURL:                 "nats://127.0.0.1:4222",
			EmbeddedServer:          false,
			StoreDir:                "/data/nats",
			BreakerFailureThreshold: 5,
			BreakerTimeout:          30 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":9090",
			Path:    "/metrics",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// API_AUTH_TOKEN -> security.api_auth_token, MONGODB_URI -> database.mongodb_uri, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security
	"api_auth_token": "security.api_auth_token",
	"cors_origins":   "security.cors_origins",

	// Database
	"database_backend":   "database.backend",
	"mongodb_uri":        "database.mongodb_uri",
	"mongodb_database":   "database.database",
	"mongodb_collection": "database.collection",
	"mongodb_timeout":    "database.connect_timeout",
	"badger_path":        "database.badger_path",
	"badger_in_memory":   "database.badger_in_memory",

	// Events
	"events_enabled":           "events.enabled",
	"events_transport":         "events.transport",
	"events_topic_prefix":      "events.topic_prefix",
	"events_breaker_threshold": "events.breaker_failure_threshold",
	"events_breaker_timeout":   "events.breaker_timeout",
	"nats_url":                 "events.nats_url",
	"nats_embedded":            "events.embedded_server",
	"nats_store_dir":           "events.store_dir",

	// Metrics
	"metrics_enabled": "metrics.enabled",
	"metrics_addr":    "metrics.addr",
	"metrics_path":    "metrics.path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths. Unmapped
// variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
