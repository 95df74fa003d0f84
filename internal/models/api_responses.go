// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"user_id": "42", "count": 2, "recommendations": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 3
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "interactions must be a non-empty list",
//	    "details": {"field": "interactions"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid request body or query parameter
//   - INVALID_TOP_K / INVALID_ALPHA: Bad numeric parameter
//   - STORE_ERROR: Interaction store failure
//   - CATALOG_ERROR / CATALOG_UNAVAILABLE: Property catalog failure or absence
//   - RECOMMENDATION_ERROR: Scoring failure
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	MatrixRows    int    `json:"matrix_rows,omitempty"`
	MatrixColumns int    `json:"matrix_columns,omitempty"`
	StoreBackend  string `json:"store_backend,omitempty"`
	StoreHealthy  bool   `json:"store_healthy"`

	CatalogEnabled  bool `json:"catalog_enabled"`
	CatalogHealthy  bool `json:"catalog_healthy"`
	CatalogListings int  `json:"catalog_listings,omitempty"`

	EventsEnabled bool   `json:"events_enabled"`
	EventsBreaker string `json:"events_breaker,omitempty"`
}
