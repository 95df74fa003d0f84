// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/middleware"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/models"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 2 * time.Second

// Health status values.
const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
	statusReady    = "ready"
	statusNotReady = "not_ready"
	statusAlive    = "alive"
)

// Health reports matrix dimensions, store backend, catalog size and event
// publisher state. It always answers 200; Status is "degraded" when a
// dependency check fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	matrix := h.engine.Matrix()
	status := models.HealthStatus{
		Status:        statusHealthy,
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		MatrixRows:    matrix.NumRows(),
		MatrixColumns: matrix.NumColumns(),
		StoreBackend:  h.engine.Store().Backend(),
		StoreHealthy:  h.storeHealthy(ctx),
	}

	if h.catalog != nil {
		status.CatalogEnabled = true
		status.CatalogHealthy = h.catalogHealthy(ctx)
		if status.CatalogHealthy {
			cctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			if n, err := h.catalog.Count(cctx); err == nil {
				status.CatalogListings = n
			}
			cancel()
		}
	}

	if h.events != nil {
		status.EventsEnabled = true
		status.EventsBreaker = h.events.BreakerState()
	}

	if !status.StoreHealthy || (status.CatalogEnabled && !status.CatalogHealthy) {
		status.Status = statusDegraded
	}

	respondSuccess(w, r, start, status)
}

// HealthLive handles liveness probes. It answers 200 while the process
// serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, time.Time{}, map[string]interface{}{
		"status": statusAlive,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes. It answers 200 only when the
// matrix is loaded, the store answers and, if configured, the catalog pings.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	matrixLoaded := h.engine.Matrix().NumRows() > 0
	storeHealthy := h.storeHealthy(ctx)
	catalogHealthy := h.catalog == nil || h.catalogHealthy(ctx)
	ready := matrixLoaded && storeHealthy && catalogHealthy

	statusCode := http.StatusOK
	status := statusReady
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = statusNotReady
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"matrix_loaded":   matrixLoaded,
			"store_healthy":   storeHealthy,
			"catalog_healthy": catalogHealthy,
			"ready_to_serve":  ready,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: newMetadata(r, time.Time{}),
	})
}

// StatsResponse is the payload of the stats endpoint.
type StatsResponse struct {
	Engine    recommend.Stats            `json:"engine"`
	Endpoints []middleware.EndpointStats `json:"endpoints"`
}

// Stats returns engine counters and per-endpoint latency percentiles over
// the most recent requests.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, start, StatsResponse{
		Engine:    h.engine.Stats(),
		Endpoints: h.perfMon.GetStats(),
	})
}

func (h *Handler) storeHealthy(ctx context.Context) bool {
	p, ok := h.engine.Store().(pinger)
	if !ok {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return p.Ping(ctx) == nil
}

func (h *Handler) catalogHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return h.catalog.Ping(ctx) == nil
}
