// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package config

import (
	"fmt"
	"math"
	"time"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour

	maxStoreShards = 1024
	maxRedisDB     = 15
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validStoreBackends = map[string]bool{
	StoreBackendMemory: true,
	StoreBackendBadger: true,
	StoreBackendRedis:  true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateRecommend,
		c.validateStore,
		c.validateCatalog,
		c.validateEvents,
		c.validateRateLimits,
		c.validateLogging,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.SimilarityPath == "" {
		return fmt.Errorf("SIMILARITY_PATH is required")
	}
	if c.Recommend.DefaultTopK < 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_K must be non-negative")
	}
	alpha := c.Recommend.DefaultAlpha
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_ALPHA must be a finite non-negative number")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !validStoreBackends[c.Store.Backend] {
		return fmt.Errorf("STORE_BACKEND must be one of: memory, badger, redis")
	}

	switch c.Store.Backend {
	case StoreBackendMemory:
		if c.Store.Shards < 1 || c.Store.Shards > maxStoreShards {
			return fmt.Errorf("STORE_SHARDS must be between 1 and %d", maxStoreShards)
		}
	case StoreBackendBadger:
		if c.Store.BadgerPath == "" {
			return fmt.Errorf("STORE_BADGER_PATH is required when STORE_BACKEND=badger")
		}
	case StoreBackendRedis:
		return c.validateRedis()
	}
	return nil
}

func (c *Config) validateRedis() error {
	if err := validateHostPort(c.Store.RedisAddr); err != nil {
		return fmt.Errorf("REDIS_ADDR is invalid: %w", err)
	}
	if c.Store.RedisDB < 0 || c.Store.RedisDB > maxRedisDB {
		return fmt.Errorf("REDIS_DB must be between 0 and %d", maxRedisDB)
	}
	if c.Store.RedisTimeout <= 0 {
		return fmt.Errorf("REDIS_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if !c.Catalog.Enabled {
		return nil
	}
	if c.Catalog.ListingsPath == "" {
		return fmt.Errorf("LISTINGS_PATH is required when CATALOG_ENABLED=true")
	}
	if c.Catalog.DuckDBPath == "" {
		return fmt.Errorf("DUCKDB_PATH is required when CATALOG_ENABLED=true")
	}
	if c.Catalog.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when EVENTS_ENABLED=true")
	}
	if c.Events.Embedded {
		if c.Events.EmbeddedPort < 1 || c.Events.EmbeddedPort > 65535 {
			return fmt.Errorf("NATS_EMBEDDED_PORT must be between 1 and 65535")
		}
	} else if err := validateNATSURL(c.Events.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if c.Events.PublishRate <= 0 {
		return fmt.Errorf("EVENTS_PUBLISH_RATE must be positive")
	}
	if c.Events.PublishBurst < 1 {
		return fmt.Errorf("EVENTS_PUBLISH_BURST must be at least 1")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ShouldWarnAboutCORS reports a wildcard CORS origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
