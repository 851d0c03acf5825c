// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the reference backend. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings such as the log destination.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backend: the local
	// SQLite file on the client, the PostgreSQL DSN on the server.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and timeout settings for the reference
	// backend.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the backend address and timeout used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Connectivity holds health probe and platform signal settings.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Workers holds configuration for client background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-wide settings.
type App struct {
	// LogLevel is the minimum zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is the client log file path. Empty means "logs" next to the
	// executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN is a SQLite file path on the client or a PostgreSQL connection
	// string on the server.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the reference backend.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's outbound transport settings.
type Adapter struct {
	// HTTPAddress is the backend base address, with or without scheme.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every remote entity read and write.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Connectivity holds settings of the connectivity monitor.
type Connectivity struct {
	// ProbeInterval is the period of active health probes while the platform
	// reports online.
	// Env: CONNECTIVITY_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ProbeTimeout bounds a single health probe.
	// Env: CONNECTIVITY_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`

	// HealthPath is the liveness path appended to the backend base URL.
	// Env: CONNECTIVITY_HEALTH_PATH
	HealthPath string `env:"HEALTH_PATH"`

	// PlatformPollInterval is how often host network interfaces are checked.
	// Env: CONNECTIVITY_PLATFORM_POLL_INTERVAL
	PlatformPollInterval time.Duration `env:"PLATFORM_POLL_INTERVAL"`
}

// Workers holds configuration for client background workers.
type Workers struct {
	// SyncInterval is the period of the scheduled sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// MetricsAddress, when set, exposes client metrics over HTTP.
	// Env: WORKERS_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`
}

// Defaults applied to client settings left unset by every source.
const (
	DefaultProbeInterval        = 30 * time.Second
	DefaultProbeTimeout         = 5 * time.Second
	DefaultHealthPath           = "/api/health"
	DefaultPlatformPollInterval = 2 * time.Second
	DefaultSyncInterval         = 5 * time.Minute
	DefaultRequestTimeout       = 15 * time.Second
)

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
