// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package models defines data structures shared across the service.

Key Components:

  - APIResponse: Standardized API response wrapper used by every endpoint
  - APIError: Machine-readable error code with message and details
  - Metadata: Response timestamp and query timing
  - Listing: One row of the property catalog
  - MapRecommendation: A recommendation joined with its catalog row
  - MapResult: Payload of the map-enriched recommendation endpoint
  - Location: A radius search centre and distance

The models carry JSON tags only; decoding rules for request bodies live with
the handlers that accept them.
*/
package models
