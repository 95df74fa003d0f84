// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/models"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

// maxIntParam bounds integer parameters before conversion to int.
const maxIntParam = 1 << 31

// recommendBody is the POST payload as decoded. Loosely typed fields accept
// JSON strings and numbers alike.
type recommendBody struct {
	UserID           any              `json:"user_id"`
	Interactions     any              `json:"interactions"`
	TopK             any              `json:"top_k"`
	Alpha            any              `json:"alpha"`
	IncludeSeen      any              `json:"include_seen"`
	ListingIDQueries any              `json:"listing_id_queries"`
	Location         *models.Location `json:"location"`
}

// recommendParams is the validated form shared by every recommend endpoint.
type recommendParams struct {
	UserID      string           `json:"user_id" validate:"required"`
	TopK        *int             `json:"top_k" validate:"omitempty,gte=0"`
	Alpha       *float64         `json:"alpha" validate:"omitempty,finite,gte=0"`
	IncludeSeen bool             `json:"include_seen"`
	Scope       []string         `json:"listing_id_queries" validate:"omitempty,dive,listingid"`
	Location    *models.Location `json:"location" validate:"omitempty"`
}

func (p recommendParams) request() recommend.Request {
	return recommend.Request{
		UserID:      p.UserID,
		TopK:        p.TopK,
		Alpha:       p.Alpha,
		IncludeSeen: p.IncludeSeen,
		Scope:       p.Scope,
	}
}

func validationError(format string, args ...interface{}) *models.APIError {
	return &models.APIError{Code: CodeValidationError, Message: fmt.Sprintf(format, args...)}
}

// decodeRecommendBody reads and checks a POST body. The returned raw
// interactions still need recommend.NormalizeInteractions.
func decodeRecommendBody(w http.ResponseWriter, r *http.Request) (recommendParams, []recommend.RawInteraction, *models.APIError) {
	var body recommendBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return recommendParams{}, nil, validationError("Invalid JSON body")
	}

	params := recommendParams{Location: body.Location}

	if body.UserID != nil {
		id, ok := recommend.CoerceID(body.UserID)
		if !ok {
			return params, nil, validationError("user_id must be a non-empty string or number")
		}
		params.UserID = id
	}
	if params.UserID == "" {
		return params, nil, validationError("user_id is required")
	}

	raw, apiErr := parseInteractions(body.Interactions)
	if apiErr != nil {
		return params, nil, apiErr
	}
	if params.Scope, apiErr = parseScope(body.ListingIDQueries); apiErr != nil {
		return params, nil, apiErr
	}

	if apiErr := parseCommon(&params, body.TopK, body.Alpha); apiErr != nil {
		return params, nil, apiErr
	}
	params.IncludeSeen = parseBoolParam(body.IncludeSeen)

	if apiErr := validateRequest(&params); apiErr != nil {
		return params, nil, apiErr
	}
	if params.Location != nil {
		if apiErr := validateRequest(params.Location); apiErr != nil {
			return params, nil, apiErr
		}
	}
	return params, raw, nil
}

func parseInteractions(v any) ([]recommend.RawInteraction, *models.APIError) {
	list, ok := v.([]any)
	switch {
	case v == nil:
		return nil, validationError("interactions is required")
	case !ok:
		return nil, validationError("interactions must be a list")
	case len(list) == 0:
		return nil, validationError("interactions must be a non-empty list")
	}

	raw := make([]recommend.RawInteraction, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, validationError("interactions[%d] must be an object", i)
		}
		raw[i] = obj
	}
	return raw, nil
}

// parseScope reads listing_id_queries. An absent list means no scope; a list
// with any entry that is not a listing id is rejected as a whole.
func parseScope(v any) ([]string, *models.APIError) {
	switch q := v.(type) {
	case nil:
		return nil, nil
	case []any:
		scope, err := recommend.CoerceScope(q)
		if err != nil {
			return nil, validationError("%s", err.Error())
		}
		return scope, nil
	default:
		return nil, validationError("listing_id_queries must be a list of listing ids")
	}
}

// parseRecommendQuery reads the GET parameters user_id, top_k, alpha and
// include_seen.
func parseRecommendQuery(r *http.Request) (recommendParams, *models.APIError) {
	q := r.URL.Query()
	params := recommendParams{
		UserID:      strings.TrimSpace(q.Get("user_id")),
		IncludeSeen: recommend.ParseBool(q.Get("include_seen"), false),
	}

	if apiErr := parseCommon(&params, queryValue(q.Get("top_k")), queryValue(q.Get("alpha"))); apiErr != nil {
		return params, apiErr
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		return params, apiErr
	}
	return params, nil
}

// queryValue maps an absent or blank parameter to nil.
func queryValue(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func parseCommon(params *recommendParams, topK, alpha any) *models.APIError {
	k, ok := parseIntParam(topK)
	if !ok {
		return &models.APIError{Code: CodeInvalidTopK, Message: "top_k must be a non-negative integer"}
	}
	params.TopK = k

	a, ok := parseFloatParam(alpha)
	if !ok {
		return &models.APIError{Code: CodeInvalidAlpha, Message: "alpha must be a finite non-negative number"}
	}
	params.Alpha = a
	return nil
}

// parseIntParam accepts integers given as JSON numbers or strings. A
// fractional part of zero is allowed ("5.0"); anything else fails.
func parseIntParam(v any) (*int, bool) {
	var f float64
	switch val := v.(type) {
	case nil:
		return nil, true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return boundedInt(float64(i))
		}
		parsed, err := val.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(val)
		if i, err := strconv.Atoi(s); err == nil {
			return boundedInt(float64(i))
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	case float64:
		f = val
	default:
		return nil, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	return boundedInt(f)
}

func boundedInt(f float64) (*int, bool) {
	if math.Abs(f) >= maxIntParam {
		return nil, false
	}
	i := int(f)
	return &i, true
}

// parseFloatParam accepts numbers given as JSON numbers or strings.
// Range checks are left to validation.
func parseFloatParam(v any) (*float64, bool) {
	var f float64
	switch val := v.(type) {
	case nil:
		return nil, true
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	case float64:
		f = val
	default:
		return nil, false
	}
	return &f, true
}

// parseBoolParam reads include_seen from a JSON body: booleans, the strings
// understood by recommend.ParseBool, or numbers (non-zero is true).
func parseBoolParam(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return recommend.ParseBool(val, false)
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case float64:
		return val != 0
	default:
		return false
	}
}
