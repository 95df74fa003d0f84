// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/logging"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/models"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend/storage"
)

var errBackendDown = errors.New("backend down")

// testMatrix: 101..104 are rows and columns.
//
//	     101  102  103  104
//	101  1.0  0.8  0.2  0.1
//	102  0.8  1.0  0.5  0.3
//	103  0.2  0.5  1.0  0.6
//	104  0.1  0.3  0.6  1.0
func testMatrix(t *testing.T) *recommend.SimilarityMatrix {
	t.Helper()
	ids := []string{"101", "102", "103", "104"}
	m, err := recommend.NewSimilarityMatrix(ids, ids, [][]float64{
		{1.0, 0.8, 0.2, 0.1},
		{0.8, 1.0, 0.5, 0.3},
		{0.2, 0.5, 1.0, 0.6},
		{0.1, 0.3, 0.6, 1.0},
	})
	if err != nil {
		t.Fatalf("NewSimilarityMatrix() error = %v", err)
	}
	return m
}

type testServer struct {
	handler *Handler
	http    http.Handler
	store   recommend.InteractionStore
}

type serverOptions struct {
	store      recommend.InteractionStore
	middleware *ChiMiddlewareConfig
	handler    []HandlerOption
}

func newTestServer(t *testing.T, opts ...HandlerOption) *testServer {
	t.Helper()
	return newTestServerWith(t, serverOptions{handler: opts})
}

func newTestServerWith(t *testing.T, so serverOptions) *testServer {
	t.Helper()

	store := so.store
	if store == nil {
		store = storage.NewMemoryStore(4)
	}
	engine, err := recommend.NewEngine(nil, testMatrix(t), store, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	mc := so.middleware
	if mc == nil {
		mc = DefaultChiMiddlewareConfig()
		mc.RateLimitDisabled = true
	}

	h := NewHandler(engine, so.handler...)
	return &testServer{
		handler: h,
		http:    NewRouter(h, mc).SetupChi(),
		store:   store,
	}
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeResult(t *testing.T, env envelope) recommend.Result {
	t.Helper()
	var res recommend.Result
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result %s: %v", env.Data, err)
	}
	return res
}

func decodeMapResult(t *testing.T, env envelope) models.MapResult {
	t.Helper()
	var res models.MapResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode map result %s: %v", env.Data, err)
	}
	return res
}

func recommendationIDs(res recommend.Result) []string {
	ids := make([]string, len(res.Recommendations))
	for i, r := range res.Recommendations {
		ids[i] = r.ListingID
	}
	return ids
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if env.Status != models.StatusError || env.Error == nil {
		t.Fatalf("want error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q (%s)", env.Error.Code, code, env.Error.Message)
	}
}

// fakeCatalog is an in-memory Catalog.
type fakeCatalog struct {
	mu        sync.Mutex
	listings  map[string]models.Listing
	radius    []string
	radiusErr error
	getErr    error
	pingErr   error

	lastRadius [3]float64
}

func newFakeCatalog(ids ...string) *fakeCatalog {
	c := &fakeCatalog{listings: make(map[string]models.Listing), radius: []string{}}
	for _, id := range ids {
		c.listings[id] = models.Listing{
			ID:        id,
			Name:      "Listing " + id,
			Latitude:  1.3,
			Longitude: 103.8,
			Price:     100,
			Region:    "Central Region",
		}
	}
	return c
}

func (c *fakeCatalog) GetListings(_ context.Context, ids []string) (map[string]models.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := make(map[string]models.Listing)
	for _, id := range ids {
		if l, ok := c.listings[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

func (c *fakeCatalog) FindWithinRadius(_ context.Context, lat, lon, km float64) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastRadius = [3]float64{lat, lon, km}
	if c.radiusErr != nil {
		return nil, c.radiusErr
	}
	return append([]string{}, c.radius...), nil
}

func (c *fakeCatalog) Count(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listings), nil
}

func (c *fakeCatalog) Ping(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pingErr
}

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Replace(context.Context, string, []recommend.InteractionRecord) error {
	return errBackendDown
}

func (failingStore) Get(context.Context, string) ([]recommend.InteractionRecord, error) {
	return nil, errBackendDown
}

func (failingStore) Ping(context.Context) error { return errBackendDown }

func (failingStore) Backend() string { return "failing" }

func (failingStore) Close() error { return nil }

// blockingStore holds every read until the request context ends.
type blockingStore struct{ failingStore }

func (blockingStore) Get(ctx context.Context, _ string) ([]recommend.InteractionRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type fixedEvents string

func (e fixedEvents) BreakerState() string { return string(e) }
