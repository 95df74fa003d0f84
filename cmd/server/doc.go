// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package main is the entry point for the listing recommendation server.

The server loads a listing-to-listing cosine similarity matrix, keeps each
user's latest batch of interactions (likes and views) in a pluggable store,
and answers recommendation requests over HTTP.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("listing-recommender")
	├── MessagingSupervisor ("messaging-layer")
	│   └── Embedded NATS server (optional)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Similarity matrix and listings catalog, loaded concurrently
 4. Interaction store: memory, BadgerDB or Redis (STORE_BACKEND)
 5. Engine, then the optional interaction seed file
 6. Event publication to NATS (optional, EVENTS_ENABLED)
 7. HTTP server

# Configuration

Common environment variables:

	SIMILARITY_PATH=./data/cosine_similarity.csv
	INTERACTIONS_PATH=./data/interactions.csv   # optional seed
	LISTINGS_PATH=./data/listings.csv
	STORE_BACKEND=memory|badger|redis
	HTTP_PORT=7860

# Signal Handling

SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
in-flight requests for up to 10 seconds before the store, catalog and
publisher are closed.
*/
package main
