// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/database"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/logging"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/middleware"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/models"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

// RecommendPost replaces the user's stored interactions with the submitted
// batch, then returns recommendations computed from it.
//
// Body: user_id, interactions, and optionally top_k, alpha, include_seen,
// listing_id_queries and location {latitude, longitude, distance}. With a
// location, candidates are limited to catalog listings within distance km,
// further narrowed by listing_id_queries when both are given.
func (h *Handler) RecommendPost(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	params, raw, apiErr := decodeRecommendBody(w, r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	var radius []string
	if loc := params.Location; loc != nil {
		if h.catalog == nil {
			respondError(w, r, http.StatusServiceUnavailable, CodeCatalogUnavailable,
				"Location search requires the listings catalog", nil)
			return
		}
		ids, err := h.catalog.FindWithinRadius(ctx, loc.Latitude, loc.Longitude, loc.Distance)
		if err != nil {
			h.respondCatalogError(w, r, err)
			return
		}
		radius = ids
	}

	records, err := h.engine.Ingest(ctx, params.UserID, raw)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	logging.Ctx(ctx).Debug().
		Str("user_id", params.UserID).
		Int("stored", len(records)).
		Msg("interactions replaced")

	req := params.request()
	req.RequestID = middleware.GetRequestID(ctx)
	if params.Location != nil {
		req.Scope = intersectScope(radius, params.Scope)
		if len(req.Scope) == 0 {
			respondSuccess(w, r, start, noneInRadius(params.UserID))
			return
		}
	}

	result, err := h.engine.Recommend(ctx, req)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, result)
}

// RecommendGet returns recommendations from the user's stored interactions.
//
// Query: user_id (required), top_k, alpha, include_seen.
func (h *Handler) RecommendGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, apiErr := parseRecommendQuery(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := params.request()
	req.RequestID = middleware.GetRequestID(r.Context())

	result, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, result)
}

// RecommendMap runs the GET recommendation and joins each recommended id with
// its catalog row for map display. Ids without a usable catalog row are
// reported in missing, in recommendation order.
func (h *Handler) RecommendMap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	if h.catalog == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeCatalogUnavailable,
			"Map recommendations require the listings catalog", nil)
		return
	}

	params, apiErr := parseRecommendQuery(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := params.request()
	req.RequestID = middleware.GetRequestID(ctx)

	result, err := h.engine.Recommend(ctx, req)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	mapResult := &models.MapResult{
		UserID:          result.UserID,
		Missing:         []string{},
		Recommendations: []models.MapRecommendation{},
		Message:         result.Message,
	}
	if result.Count == 0 {
		respondSuccess(w, r, start, mapResult)
		return
	}

	ids := make([]string, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		ids[i] = rec.ListingID
	}

	listings, err := h.catalog.GetListings(ctx, ids)
	if err != nil {
		h.respondCatalogError(w, r, err)
		return
	}

	for _, rec := range result.Recommendations {
		listing, ok := listings[rec.ListingID]
		if !ok {
			mapResult.Missing = append(mapResult.Missing, rec.ListingID)
			continue
		}
		mapResult.Recommendations = append(mapResult.Recommendations, models.MapRecommendation{
			Listing:        listing,
			RecommendScore: rec.RecommendScore,
			Seen:           rec.Seen,
		})
	}
	mapResult.Count = len(mapResult.Recommendations)

	respondSuccess(w, r, start, mapResult)
}

// intersectScope keeps the radius ids that are also requested, in request
// order. With no requested ids the radius ids are the scope.
func intersectScope(radius, requested []string) []string {
	if len(requested) == 0 {
		return radius
	}
	inRadius := make(map[string]struct{}, len(radius))
	for _, id := range radius {
		inRadius[id] = struct{}{}
	}
	scope := make([]string, 0, len(requested))
	for _, id := range requested {
		if _, ok := inRadius[id]; ok {
			scope = append(scope, id)
		}
	}
	return scope
}

func noneInRadius(userID string) *recommend.Result {
	return &recommend.Result{
		UserID:          userID,
		Count:           0,
		Recommendations: []recommend.Recommendation{},
		InvalidIDs:      []string{},
		Message:         recommend.MessageNoneInRadius,
	}
}

// respondEngineError maps engine errors to responses: bad input is 400,
// store failures 500 STORE_ERROR, an expired request context 504.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case recommend.IsValidationError(err):
		code := CodeValidationError
		switch {
		case errors.Is(err, recommend.ErrInvalidTopK):
			code = CodeInvalidTopK
		case errors.Is(err, recommend.ErrInvalidAlpha):
			code = CodeInvalidAlpha
		}
		respondError(w, r, http.StatusBadRequest, code, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, r, http.StatusGatewayTimeout, CodeTimeout, "Request timed out", err)
	case errors.Is(err, recommend.ErrStore):
		respondError(w, r, http.StatusInternalServerError, CodeStoreError, "Interaction store is unavailable", err)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeRecommendationError, "Failed to generate recommendations", err)
	}
}

func (h *Handler) respondCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, database.ErrInvalidRadius):
		respondError(w, r, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, r, http.StatusGatewayTimeout, CodeTimeout, "Request timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeCatalogError, "Listings catalog query failed", err)
	}
}
