// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestPerformanceMonitor_RingBuffer(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3)
	for i := int64(1); i <= 5; i++ {
		pm.Record(RequestSample{Endpoint: "/a", Method: "GET", DurationMS: i * 10, StatusCode: 200})
	}

	if pm.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", pm.Len())
	}

	stats := pm.GetStats()
	if len(stats) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(stats))
	}
	s := stats[0]
	if s.RequestCount != 3 || s.MinDuration != 30 || s.MaxDuration != 50 {
		t.Errorf("stats = %+v, want the three newest samples (30..50)", s)
	}
	if s.AvgDuration != 40 {
		t.Errorf("AvgDuration = %v, want 40", s.AvgDuration)
	}
}

func TestPerformanceMonitor_GetStatsOrdering(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100)
	pm.Record(RequestSample{Endpoint: "/b", Method: "GET", DurationMS: 5, StatusCode: 200})
	pm.Record(RequestSample{Endpoint: "/a", Method: "GET", DurationMS: 5, StatusCode: 500})
	pm.Record(RequestSample{Endpoint: "/a", Method: "GET", DurationMS: 7, StatusCode: 200})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(stats))
	}
	if stats[0].Endpoint != "GET /a" || stats[0].RequestCount != 2 || stats[0].ErrorCount != 1 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Endpoint != "GET /b" {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestPerformanceMonitor_EmptyStats(t *testing.T) {
	t.Parallel()

	stats := NewPerformanceMonitor(0).GetStats()
	if stats == nil || len(stats) != 0 {
		t.Errorf("GetStats() = %v, want empty non-nil", stats)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(10)
	pm.SetSlowThreshold(0)

	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	stats := pm.GetStats()
	if len(stats) != 1 || stats[0].Endpoint != "GET /users/{id}" {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestPerformanceMonitor_Concurrent(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				pm.Record(RequestSample{Endpoint: "/x", Method: "GET", DurationMS: 1, Timestamp: time.Now()})
				_ = pm.GetStats()
			}
		}()
	}
	wg.Wait()

	if pm.Len() != 50 {
		t.Errorf("Len() = %d, want 50", pm.Len())
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	sorted := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := percentile(sorted, 0.5); got != 5 {
		t.Errorf("p50 = %d, want 5", got)
	}
	if got := percentile(sorted, 0.99); got != 9 {
		t.Errorf("p99 = %d, want 9", got)
	}
	if got := percentile(nil, 0.5); got != 0 {
		t.Errorf("percentile(nil) = %d", got)
	}
}
