// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/middleware"
)

func TestRouterNotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/nope", "")
	expectError(t, rec, env, http.StatusNotFound, CodeNotFound)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodDelete, "/api/v1/recommend", "")
	expectError(t, rec, env, http.StatusMethodNotAllowed, CodeMethodNotAllowed)
}

func TestRouterAliases(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, WithCatalog(newFakeCatalog("102")))

	rec, env := s.do(t, http.MethodPost, "/recommend", likedOne+`, "top_k": 1}`)
	if rec.Code != http.StatusOK || strings.Join(recommendationIDs(decodeResult(t, env)), ",") != "102" {
		t.Fatalf("POST /recommend: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = s.do(t, http.MethodGet, "/recommend?user_id=U1&top_k=1", "")
	if rec.Code != http.StatusOK || decodeResult(t, env).Count != 1 {
		t.Errorf("GET /recommend: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = s.do(t, http.MethodGet, "/recommend_map?user_id=U1&top_k=1", "")
	if rec.Code != http.StatusOK || decodeMapResult(t, env).Count != 1 {
		t.Errorf("GET /recommend_map: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouterRequestID(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommend?user_id=U1", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-id-7")
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "client-id-7" {
		t.Errorf("request id header = %q", got)
	}
	if !strings.Contains(rec.Body.String(), `"request_id":"client-id-7"`) {
		t.Errorf("metadata missing request id: %s", rec.Body.String())
	}
}

func TestRouterSecurityHeaders(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/recommend?user_id=U1", "/api/v1/health/live"} {
		rec, _ := s.do(t, http.MethodGet, path, "")
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" || rec.Header().Get("X-Frame-Options") != "DENY" {
			t.Errorf("%s: security headers missing: %v", path, rec.Header())
		}
		if rec.Header().Get("Strict-Transport-Security") != "" {
			t.Errorf("%s: HSTS set on plain HTTP", path)
		}
	}
}

func TestRouterRateLimit(t *testing.T) {
	t.Parallel()
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitRequests = 2
	mc.RateLimitWindow = time.Minute
	s := newTestServerWith(t, serverOptions{middleware: mc})

	for i := 0; i < 2; i++ {
		if rec, _ := s.do(t, http.MethodGet, "/api/v1/recommend?user_id=U1", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/recommend?user_id=U1", "")
	expectError(t, rec, env, http.StatusTooManyRequests, CodeRateLimited)

	// Health probes have their own limit.
	if rec, _ := s.do(t, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health after API limit: status = %d", rec.Code)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	t.Parallel()
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitDisabled = true
	mc.CORSAllowedOrigins = []string{"http://localhost:8501"}
	s := newTestServerWith(t, serverOptions{middleware: mc})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8501" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouterMetrics(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/v1/recommend?user_id=U1", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}
