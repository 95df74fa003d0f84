// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

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

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/rental-recommend/config.yaml",
	"/etc/rental-recommend/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           7860,
			Host:           "0.0.0.0",
			Timeout:        30 * time.Second,
			RequestTimeout: 10 * time.Second,
			Environment:    "development",
		},
		Recommend: RecommendConfig{
			SimilarityPath:   "./data/cosine_similarity.csv",
			InteractionsPath: "",
			DefaultTopK:      10,
			DefaultAlpha:     2.0,
		},
		Store: StoreConfig{
			Backend:      StoreBackendMemory,
			Shards:       32,
			BadgerPath:   "./data/interactions",
			RedisAddr:    "127.0.0.1:6379",
			RedisDB:      0,
			RedisPrefix:  "interactions:",
			RedisTimeout: 3 * time.Second,
		},
		Catalog: CatalogConfig{
			Enabled:      true,
			ListingsPath: "./data/listings.csv",
			DuckDBPath:   ":memory:",
			MaxMemory:    "1GB",
			Threads:      0,
		},
		Events: EventsConfig{
			Enabled:      false,
			URL:          "nats://127.0.0.1:4222",
			Topic:        "interactions.replaced",
			Embedded:     false,
			EmbeddedHost: "127.0.0.1",
			EmbeddedPort: 4222,
			PublishRate:  100,
			PublishBurst: 200,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// environment variables (highest priority), then validates the result.
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

	// SIMILARITY_PATH -> recommend.similarity_path, STORE_BACKEND -> store.backend
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

// findConfigFile returns the first existing config file, or "".
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

// sliceConfigPaths are parsed from comma-separated strings when set by env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values into slices.
// Values already loaded as lists from YAML are left alone.
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
	"http_host":       "server.host",
	"http_port":       "server.port",
	"http_timeout":    "server.timeout",
	"request_timeout": "server.request_timeout",
	"environment":     "server.environment",

	// Recommendation engine
	"similarity_path":         "recommend.similarity_path",
	"interactions_path":       "recommend.interactions_path",
	"recommend_default_top_k": "recommend.default_top_k",
	"recommend_default_alpha": "recommend.default_alpha",

	// Interaction store
	"store_backend":     "store.backend",
	"store_shards":      "store.shards",
	"store_badger_path": "store.badger_path",
	"redis_addr":        "store.redis_addr",
	"redis_password":    "store.redis_password",
	"redis_db":          "store.redis_db",
	"redis_prefix":      "store.redis_prefix",
	"redis_timeout":     "store.redis_timeout",

	// Catalog
	"catalog_enabled":   "catalog.enabled",
	"listings_path":     "catalog.listings_path",
	"duckdb_path":       "catalog.duckdb_path",
	"duckdb_max_memory": "catalog.max_memory",
	"duckdb_threads":    "catalog.threads",

	// Events
	"events_enabled":       "events.enabled",
	"nats_url":             "events.url",
	"events_topic":         "events.topic",
	"nats_embedded":        "events.embedded",
	"nats_embedded_host":   "events.embedded_host",
	"nats_embedded_port":   "events.embedded_port",
	"events_publish_rate":  "events.publish_rate",
	"events_publish_burst": "events.publish_burst",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped names return "" and are skipped by the provider.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
