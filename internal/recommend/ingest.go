// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Interaction tuple keys.
const (
	FieldListingID = "listing_id"
	FieldLike      = "like"
	FieldViews     = "views"
)

// NormalizeInteractions validates and coerces a submitted batch.
//
// Every tuple must contain the keys listing_id, like and views; values are
// coerced rather than rejected (see CoerceLike and CoerceViews). When a
// listing appears more than once the last tuple wins and takes the position
// of that last occurrence. The number of dropped duplicates is returned.
func NormalizeInteractions(userID string, raw []RawInteraction) ([]InteractionRecord, int, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, 0, ErrEmptyUserID
	}
	if len(raw) == 0 {
		return nil, 0, ErrEmptyInteractions
	}

	parsed := make([]InteractionRecord, 0, len(raw))
	for i, tuple := range raw {
		for _, field := range [...]string{FieldListingID, FieldLike, FieldViews} {
			if _, ok := tuple[field]; !ok {
				return nil, 0, fmt.Errorf("interaction %d missing %q: %w", i, field, ErrMissingField)
			}
		}

		listingID, ok := CoerceID(tuple[FieldListingID])
		if !ok {
			return nil, 0, fmt.Errorf("interaction %d: %w", i, ErrInvalidListingID)
		}

		parsed = append(parsed, InteractionRecord{
			UserID:    userID,
			ListingID: listingID,
			Like:      CoerceLike(tuple[FieldLike]),
			Views:     CoerceViews(tuple[FieldViews]),
		})
	}

	records := DedupLastWins(parsed)
	return records, len(parsed) - len(records), nil
}

// DedupLastWins keeps the last record per listing id, preserving the order
// of those last occurrences.
func DedupLastWins(records []InteractionRecord) []InteractionRecord {
	last := make(map[string]int, len(records))
	for i, r := range records {
		last[r.ListingID] = i
	}
	if len(last) == len(records) {
		return records
	}

	out := make([]InteractionRecord, 0, len(last))
	for i, r := range records {
		if last[r.ListingID] == i {
			out = append(out, r)
		}
	}
	return out
}

// CoerceID turns a JSON string or number into a canonical id. Integral
// numbers render without a fractional part (101.0 -> "101"); strings are
// trimmed. Empty strings, booleans, nil and other types are rejected.
func CoerceID(v any) (string, bool) {
	var id string
	switch val := v.(type) {
	case string:
		id = strings.TrimSpace(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			id = strings.TrimSpace(val.String())
			break
		}
		if i, err := val.Int64(); err == nil {
			id = strconv.FormatInt(i, 10)
			break
		}
		id = formatNumber(f)
	case float64:
		id = formatNumber(val)
	case float32:
		id = formatNumber(float64(val))
	case int:
		id = strconv.Itoa(val)
	case int64:
		id = strconv.FormatInt(val, 10)
	default:
		return "", false
	}
	return id, id != ""
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e18 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CoerceLike returns 1 when v is true or a finite number (or numeric string)
// whose integer part is positive, otherwise 0.
func CoerceLike(v any) int {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	if toNonNegativeInt(v) > 0 {
		return 1
	}
	return 0
}

// CoerceViews returns the integer part of a numeric value or numeric string.
// Missing, malformed, non-finite and negative values become 0; finite values
// above math.MaxInt32 are clamped to it.
func CoerceViews(v any) int {
	if _, ok := v.(bool); ok {
		return 0
	}
	return toNonNegativeInt(v)
}

func toNonNegativeInt(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= float64(math.MaxInt32) {
		return math.MaxInt32
	}
	return int(f)
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ParseBool reads the boolean spellings accepted in query strings and JSON
// bodies: 1/true/t/yes/y and 0/false/f/no/n, case-insensitively. Anything
// else returns def.
func ParseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y":
		return true
	case "0", "false", "f", "no", "n":
		return false
	default:
		return def
	}
}

// CoerceScope converts a list of ids to canonical form. An entry CoerceID
// rejects fails the whole list with ErrInvalidListingID.
func CoerceScope(values []any) ([]string, error) {
	scope := make([]string, 0, len(values))
	for i, v := range values {
		id, ok := CoerceID(v)
		if !ok {
			return nil, fmt.Errorf("listing_id_queries[%d]: %w", i, ErrInvalidListingID)
		}
		scope = append(scope, id)
	}
	return scope, nil
}
