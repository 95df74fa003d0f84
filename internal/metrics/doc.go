// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package metrics defines the Prometheus metrics exported by the recommendation
service and small Record helpers used by the rest of the code.

Metrics are registered with the default registry through promauto and served
at /metrics:

	curl http://localhost:7860/metrics

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendation:
  - recommend_requests_total{outcome}: success, no_interactions, all_invalid, rejected, error
  - recommend_duration_seconds
  - recommend_result_size
  - recommend_invalid_listing_ids_total
  - similarity_matrix_listings{axis}: rows, columns

Ingestion:
  - interaction_ingest_total{result}: success, rejected, error
  - interaction_records_ingested_total
  - interaction_duplicates_dropped_total

Interaction store and catalog:
  - interaction_store_operation_duration_seconds{backend,operation}
  - interaction_store_errors_total{backend,operation}
  - catalog_query_duration_seconds{operation}
  - catalog_query_errors_total{operation}
  - catalog_listings

Circuit breaker (Redis store, event publisher):
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Events:
  - events_published_total{topic}
  - events_publish_failures_total{topic,reason}
*/
package metrics
