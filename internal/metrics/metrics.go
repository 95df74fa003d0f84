// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeNoInteractions = "no_interactions"
	OutcomeAllInvalid     = "all_invalid"
	OutcomeRejected       = "rejected"
	OutcomeError          = "error"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent scoring a recommendation request",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of listings returned per recommendation",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 500},
		},
	)

	RecommendInvalidIDs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_invalid_listing_ids_total",
			Help: "Total number of interacted listing ids absent from the similarity matrix",
		},
	)

	SimilarityMatrixListings = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "similarity_matrix_listings",
			Help: "Number of listings in the loaded similarity matrix",
		},
		[]string{"axis"}, // "rows", "columns"
	)

	// Ingestion Metrics
	InteractionIngestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_ingest_total",
			Help: "Total number of interaction batch submissions by result",
		},
		[]string{"result"}, // "success", "rejected", "error"
	)

	InteractionRecordsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interaction_records_ingested_total",
			Help: "Total number of interaction records stored after de-duplication",
		},
	)

	InteractionDuplicatesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interaction_duplicates_dropped_total",
			Help: "Total number of interaction tuples superseded by a later tuple for the same listing",
		},
	)

	// Interaction Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interaction_store_operation_duration_seconds",
			Help:    "Interaction store operation latency",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_store_errors_total",
			Help: "Total number of failed interaction store operations",
		},
		[]string{"backend", "operation"},
	)

	// Catalog Metrics
	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of DuckDB catalog queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CatalogQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_query_errors_total",
			Help: "Total number of failed catalog queries",
		},
		[]string{"operation"},
	)

	CatalogListings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_listings",
			Help: "Number of listings loaded into the catalog",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to NATS",
		},
		[]string{"topic"},
	)

	EventsPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_publish_failures_total",
			Help: "Total number of events that could not be published",
		},
		[]string{"topic", "reason"}, // reason: "rate_limited", "circuit_open", "error", "marshal"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one scored recommendation request.
func RecordRecommendation(outcome string, duration time.Duration, resultSize, invalidIDs int) {
	RecommendRequestsTotal.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if outcome != OutcomeRejected && outcome != OutcomeError {
		RecommendResultSize.Observe(float64(resultSize))
	}
	if invalidIDs > 0 {
		RecommendInvalidIDs.Add(float64(invalidIDs))
	}
}

// SetSimilarityMatrixSize publishes the loaded matrix dimensions.
func SetSimilarityMatrixSize(rows, columns int) {
	SimilarityMatrixListings.WithLabelValues("rows").Set(float64(rows))
	SimilarityMatrixListings.WithLabelValues("columns").Set(float64(columns))
}

// RecordIngest records an interaction batch submission.
func RecordIngest(result string, stored, duplicates int) {
	InteractionIngestTotal.WithLabelValues(result).Inc()
	if stored > 0 {
		InteractionRecordsIngested.Add(float64(stored))
	}
	if duplicates > 0 {
		InteractionDuplicatesDropped.Add(float64(duplicates))
	}
}

// RecordStoreOperation records an interaction store call.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordCatalogQuery records a catalog query.
func RecordCatalogQuery(operation string, duration time.Duration, err error) {
	CatalogQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		CatalogQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordEventPublished records a successfully published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventPublishFailure records an event that was not published.
func RecordEventPublishFailure(topic, reason string) {
	EventsPublishFailures.WithLabelValues(topic, reason).Inc()
}
