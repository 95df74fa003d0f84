// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: X-Request-ID propagation with logging context
  - PrometheusMetrics: request count, latency and in-flight gauges
  - PerformanceMonitor: sliding window of request latencies with
    per-endpoint percentiles, served by the stats endpoint

Endpoint labels use the chi route pattern (for example
"/api/v1/recommend/map") when one is available, so query strings and
path parameters never create new label values.

Middleware written as func(http.HandlerFunc) http.HandlerFunc is adapted to
chi with the api package's chiMiddleware helper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(perfMon.Middleware)
*/
package middleware
