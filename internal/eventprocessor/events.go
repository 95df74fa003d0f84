// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

// EventTypeInteractionsReplaced identifies InteractionsReplaced payloads.
const EventTypeInteractionsReplaced = "interactions.replaced"

// InteractionsReplaced records that a user's interaction set was replaced.
type InteractionsReplaced struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	ListingIDs []string  `json:"listing_ids"`
	Likes      int       `json:"likes"`
	Views      int       `json:"views"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewInteractionsReplaced builds an event for the records now stored for
// userID.
func NewInteractionsReplaced(userID string, records []recommend.InteractionRecord) *InteractionsReplaced {
	ids := make([]string, len(records))
	likes, views := 0, 0
	for i, r := range records {
		ids[i] = r.ListingID
		likes += r.Like
		views += r.Views
	}
	return &InteractionsReplaced{
		EventID:    uuid.New().String(),
		EventType:  EventTypeInteractionsReplaced,
		UserID:     userID,
		ListingIDs: ids,
		Likes:      likes,
		Views:      views,
		Count:      len(records),
		OccurredAt: time.Now().UTC(),
	}
}

// Validate checks required fields.
func (e *InteractionsReplaced) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidEvent)
	}
	if e.Count != len(e.ListingIDs) {
		return fmt.Errorf("%w: count %d does not match %d listing ids", ErrInvalidEvent, e.Count, len(e.ListingIDs))
	}
	return nil
}
