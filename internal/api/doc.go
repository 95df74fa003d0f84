// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package api provides the HTTP interface of the recommendation service.

Routing uses the Chi router with the go-chi middleware ecosystem:

	/api/v1/health         health summary
	/api/v1/health/live    liveness probe
	/api/v1/health/ready   readiness probe
	/api/v1/recommend      POST: replace interactions, then recommend
	/api/v1/recommend      GET:  recommend from stored interactions
	/api/v1/recommend/map  GET:  recommend, joined with catalog rows
	/api/v1/stats          engine counters and endpoint latencies
	/metrics               Prometheus exposition

The unversioned paths /recommend and /recommend_map are kept as aliases for
existing frontends.

Every JSON response uses the models.APIResponse envelope. Errors carry a
stable code (VALIDATION_ERROR, INVALID_TOP_K, INVALID_ALPHA, STORE_ERROR,
CATALOG_ERROR, CATALOG_UNAVAILABLE, RECOMMENDATION_ERROR) and a message safe
to show a client. Empty outcomes such as a user without interactions are
successful responses with count 0 and an explanatory message.

Middleware order (global): request ID with logging context, RealIP,
Recoverer, CORS, gzip compression. API routes add IP rate limiting, security
headers, a per-request timeout, Prometheus metrics and the performance
monitor.
*/
package api
