// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// memStore implements InteractionStore for testing.
type memStore struct {
	mu       sync.RWMutex
	data     map[string][]InteractionRecord
	getErr   error
	replErr  error
	replaces int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]InteractionRecord)}
}

func (s *memStore) Replace(_ context.Context, userID string, records []InteractionRecord) error {
	if s.replErr != nil {
		return s.replErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = append([]InteractionRecord(nil), records...)
	s.replaces++
	return nil
}

func (s *memStore) Get(_ context.Context, userID string) ([]InteractionRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]InteractionRecord{}, s.data[userID]...), nil
}

func (s *memStore) Backend() string { return "test" }

func (s *memStore) Close() error { return nil }

// recordingListener implements ReplaceListener for testing.
type recordingListener struct {
	mu    sync.Mutex
	calls []string
}

func (l *recordingListener) InteractionsReplaced(_ context.Context, userID string, _ []InteractionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, userID)
}

var errStoreDown = errors.New("store down")

// testMatrix returns a symmetric matrix over listings A, B and C.
func testMatrix(t *testing.T) *SimilarityMatrix {
	t.Helper()
	m, err := NewSimilarityMatrix(
		[]string{"A", "B", "C"},
		[]string{"A", "B", "C"},
		[][]float64{
			{1.0, 0.8, 0.2},
			{0.8, 1.0, 0.5},
			{0.2, 0.5, 1.0},
		},
	)
	if err != nil {
		t.Fatalf("NewSimilarityMatrix() error = %v", err)
	}
	return m
}

func newTestEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	e, err := NewEngine(DefaultConfig(), testMatrix(t), store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e, store
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func listingIDs(recs []Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ListingID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
