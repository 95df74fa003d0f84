// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import "errors"

// Validation errors. Callers map these to 4xx responses with errors.Is.
var (
	ErrEmptyUserID       = errors.New("user_id is required")
	ErrEmptyInteractions = errors.New("interactions must be a non-empty list")
	ErrMissingField      = errors.New("each interaction must contain listing_id, like and views")
	ErrInvalidListingID  = errors.New("listing_id must be a string or number")
	ErrInvalidTopK       = errors.New("top_k must be a non-negative integer")
	ErrInvalidAlpha      = errors.New("alpha must be a finite non-negative number")
)

// ErrStore marks failures of the interaction store backend.
var ErrStore = errors.New("interaction store unavailable")

// Similarity matrix load errors.
var (
	ErrEmptyMatrix      = errors.New("similarity matrix has no listings")
	ErrDuplicateListing = errors.New("duplicate listing id in similarity matrix")
	ErrRaggedRow        = errors.New("similarity matrix row has wrong number of values")
)

// IsValidationError reports whether err was caused by bad caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyUserID) ||
		errors.Is(err, ErrEmptyInteractions) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidListingID) ||
		errors.Is(err, ErrInvalidTopK) ||
		errors.Is(err, ErrInvalidAlpha)
}
