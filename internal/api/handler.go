// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package api

import (
	"context"
	"time"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/middleware"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/models"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 1 << 20

// Catalog is the listings lookup used for map enrichment and radius search.
// Implemented by *database.Catalog.
type Catalog interface {
	GetListings(ctx context.Context, ids []string) (map[string]models.Listing, error)
	FindWithinRadius(ctx context.Context, lat, lon, km float64) ([]string, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// EventsStatus reports the state of the interaction event publisher.
type EventsStatus interface {
	BreakerState() string
}

// pinger is implemented by stores that can check their backend.
type pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the recommendation API.
type Handler struct {
	engine    *recommend.Engine
	catalog   Catalog      // nil when the catalog is disabled
	events    EventsStatus // nil when events are disabled
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
	version   string
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithCatalog enables map enrichment and location-scoped recommendations.
func WithCatalog(c Catalog) HandlerOption {
	return func(h *Handler) { h.catalog = c }
}

// WithEvents reports publisher state in health responses.
func WithEvents(e EventsStatus) HandlerOption {
	return func(h *Handler) { h.events = e }
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates an API handler over a ready engine.
func NewHandler(engine *recommend.Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PerformanceMonitor returns the monitor fed by the router.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
