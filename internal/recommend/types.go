// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import "context"

// Result messages.
const (
	MessageSuccess        = "success"
	MessageNoInteractions = "No interactions found for this user."
	MessageAllInvalid     = "All listing_id are invalid - cannot generate recommendation."
	MessageNoneInRadius   = "No listings found within the requested radius."
)

// InteractionRecord is a user's current signal for one listing.
// At most one record exists per (UserID, ListingID).
type InteractionRecord struct {
	UserID    string `json:"user_id"`
	ListingID string `json:"listing_id"`
	Like      int    `json:"like"`  // 0 or 1
	Views     int    `json:"views"` // >= 0
}

// Weight returns the interest weight alpha*like + views.
func (r InteractionRecord) Weight(alpha float64) float64 {
	return alpha*float64(r.Like) + float64(r.Views)
}

// RawInteraction is one submitted interaction tuple before coercion. Values
// are whatever the JSON decoder produced (string, float64, json.Number,
// bool or nil).
type RawInteraction map[string]any

// Recommendation is one ranked listing.
type Recommendation struct {
	ListingID      string  `json:"listing_id"`
	RecommendScore float64 `json:"recommend_score"`
	Seen           bool    `json:"seen"`
}

// Result is the outcome of a recommendation request. Empty outcomes (no
// interactions, all ids invalid) are results, not errors; Message tells them
// apart.
type Result struct {
	UserID          string           `json:"user_id"`
	Count           int              `json:"count"`
	Recommendations []Recommendation `json:"recommendations"`
	InvalidIDs      []string         `json:"invalid_ids"`
	Message         string           `json:"message"`
}

// Request describes a recommendation query.
type Request struct {
	UserID string

	// TopK and Alpha fall back to the engine defaults when nil.
	TopK  *int
	Alpha *float64

	IncludeSeen bool

	// Scope restricts the ranked output to these listing ids. Empty means
	// no restriction.
	Scope []string

	// RequestID is attached to log lines. Generated when empty.
	RequestID string
}

// InteractionStore holds each user's current interaction records.
//
// Replace must be atomic per user: a concurrent Get for the same user sees
// either the complete old set or the complete new set.
type InteractionStore interface {
	// Replace drops every stored record for userID and stores records.
	Replace(ctx context.Context, userID string, records []InteractionRecord) error

	// Get returns the user's records in submission order, or an empty slice.
	Get(ctx context.Context, userID string) ([]InteractionRecord, error)

	// Backend names the implementation for logs and metrics.
	Backend() string

	Close() error
}

// ReplaceListener is notified after a user's interactions were replaced.
// Implementations must not block; failures are theirs to log.
type ReplaceListener interface {
	InteractionsReplaced(ctx context.Context, userID string, records []InteractionRecord)
}
