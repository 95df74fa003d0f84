// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package config provides layered configuration for the recommendation service.

Configuration is loaded with Koanf v2 in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, or the first of DefaultConfigPaths
 3. Environment variables, mapped explicitly in envTransformFunc

Unmapped environment variables are ignored so that unrelated process
environment never leaks into the configuration.

# Sections

  - server: HTTP bind address, timeouts, environment name
  - recommend: similarity matrix path, seed interactions, default top_k and alpha
  - store: interaction store backend (memory, badger, redis) and its settings
  - catalog: DuckDB-backed listings catalog used for map enrichment and radius search
  - events: optional NATS publication of interaction replacements
  - security: CORS origins and rate limiting
  - logging: level, format, caller

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, REQUEST_TIMEOUT, ENVIRONMENT

Recommendation:
  - SIMILARITY_PATH: similarity matrix CSV (default: ./data/cosine_similarity.csv)
  - INTERACTIONS_PATH: optional seed interactions CSV
  - RECOMMEND_DEFAULT_TOP_K (default: 10), RECOMMEND_DEFAULT_ALPHA (default: 2.0)

Interaction store:
  - STORE_BACKEND: memory, badger or redis (default: memory)
  - STORE_SHARDS, STORE_BADGER_PATH
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_PREFIX, REDIS_TIMEOUT

Catalog:
  - CATALOG_ENABLED, LISTINGS_PATH, DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS

Events:
  - EVENTS_ENABLED, NATS_URL, EVENTS_TOPIC
  - NATS_EMBEDDED, NATS_EMBEDDED_HOST, NATS_EMBEDDED_PORT
  - EVENTS_PUBLISH_RATE, EVENTS_PUBLISH_BURST

Security:
  - CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Config is immutable after loading and safe for concurrent reads.
*/
package config
