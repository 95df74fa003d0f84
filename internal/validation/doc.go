// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

// Package validation provides struct validation using go-playground/validator v10.
//
// The package holds a thread-safe singleton validator and translates field
// errors into the API's VALIDATION_ERROR format. Field names in messages are
// the JSON (or query parameter) names, so a client sees "top_k must be
// greater than or equal to 0" rather than a Go field name.
//
// # Custom tags
//
//   - finite: float fields must not be NaN or ±Inf
//   - listingid: string must be a non-blank listing id without control
//     characters
//
// # Usage
//
//	type recommendQuery struct {
//	    UserID string   `json:"user_id" validate:"required"`
//	    TopK   *int     `json:"top_k" validate:"omitempty,gte=0"`
//	    Alpha  *float64 `json:"alpha" validate:"omitempty,finite,gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
