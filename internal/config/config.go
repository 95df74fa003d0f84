// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package config

import (
	"fmt"
	"time"
)

// Config holds all service configuration.
//
// Loading order (Koanf v2): defaults, then optional YAML file, then
// environment variables. See LoadWithKoanf.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Recommend RecommendConfig `koanf:"recommend"`
	Store     StoreConfig     `koanf:"store"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Events    EventsConfig    `koanf:"events"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestTimeout bounds the work done for a single API request.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// Environment: "development", "staging", "production".
	Environment string `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// SimilarityPath is the CSV file holding the listing similarity matrix.
	SimilarityPath string `koanf:"similarity_path"`

	// InteractionsPath is an optional CSV (user_id,listing_id,like,views)
	// replayed into the interaction store at startup.
	InteractionsPath string `koanf:"interactions_path"`

	DefaultTopK  int     `koanf:"default_top_k"`
	DefaultAlpha float64 `koanf:"default_alpha"`
}

// Store backend names.
const (
	StoreBackendMemory = "memory"
	StoreBackendBadger = "badger"
	StoreBackendRedis  = "redis"
)

// StoreConfig selects and configures the interaction store backend.
type StoreConfig struct {
	Backend string `koanf:"backend"`

	// Shards is the number of lock shards for the memory backend.
	Shards int `koanf:"shards"`

	BadgerPath string `koanf:"badger_path"`

	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	RedisPrefix   string        `koanf:"redis_prefix"`
	RedisTimeout  time.Duration `koanf:"redis_timeout"`
}

// CatalogConfig holds the DuckDB listings catalog settings.
type CatalogConfig struct {
	Enabled      bool   `koanf:"enabled"`
	ListingsPath string `koanf:"listings_path"`

	// DuckDBPath is ":memory:" unless the catalog should persist between runs.
	DuckDBPath string `koanf:"duckdb_path"`
	MaxMemory  string `koanf:"max_memory"`
	Threads    int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// EventsConfig holds NATS event publication settings.
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	URL     string `koanf:"url"`
	Topic   string `koanf:"topic"`

	// Embedded starts an in-process NATS server instead of dialing an
	// external one. URL is ignored when set.
	Embedded     bool   `koanf:"embedded"`
	EmbeddedHost string `koanf:"embedded_host"`
	EmbeddedPort int    `koanf:"embedded_port"`

	// PublishRate is the sustained events-per-second budget; bursts above it
	// are dropped and counted rather than queued.
	PublishRate  float64 `koanf:"publish_rate"`
	PublishBurst int     `koanf:"publish_burst"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	Caller bool `koanf:"caller"`
}
