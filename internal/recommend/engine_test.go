// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func ingest(t *testing.T, e *Engine, userID string, raw ...RawInteraction) {
	t.Helper()
	if _, err := e.Ingest(context.Background(), userID, raw); err != nil {
		t.Fatalf("Ingest(%s) error = %v", userID, err)
	}
}

func TestNewEngineValidation(t *testing.T) {
	m := testMatrix(t)
	store := newMemStore()

	if _, err := NewEngine(nil, m, store, zerolog.Nop()); err != nil {
		t.Errorf("nil config should use defaults, got %v", err)
	}
	if _, err := NewEngine(&Config{DefaultTopK: -1, DefaultAlpha: 2}, m, store, zerolog.Nop()); err == nil {
		t.Error("expected error for negative default top_k")
	}
	if _, err := NewEngine(DefaultConfig(), nil, store, zerolog.Nop()); err == nil {
		t.Error("expected error for nil matrix")
	}
	if _, err := NewEngine(DefaultConfig(), m, nil, zerolog.Nop()); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestRecommendSingleInteraction(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U", RawInteraction{"listing_id": "A", "like": 1, "views": 2})

	res, err := e.Recommend(context.Background(), Request{UserID: "U", Alpha: floatPtr(2.0)})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Message != MessageSuccess {
		t.Errorf("Message = %q", res.Message)
	}
	if !equalStrings(listingIDs(res.Recommendations), []string{"B", "C"}) {
		t.Fatalf("recommendations = %v, want [B C]", listingIDs(res.Recommendations))
	}
	if !approxEqual(res.Recommendations[0].RecommendScore, 0.8) {
		t.Errorf("score(B) = %v, want 0.8", res.Recommendations[0].RecommendScore)
	}
	if !approxEqual(res.Recommendations[1].RecommendScore, 0.2) {
		t.Errorf("score(C) = %v, want 0.2", res.Recommendations[1].RecommendScore)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}
	if res.InvalidIDs == nil || len(res.InvalidIDs) != 0 {
		t.Errorf("InvalidIDs = %v, want empty non-nil", res.InvalidIDs)
	}

	res, err = e.Recommend(context.Background(), Request{UserID: "U", IncludeSeen: true})
	if err != nil {
		t.Fatalf("Recommend(include_seen) error = %v", err)
	}
	if !equalStrings(listingIDs(res.Recommendations), []string{"A", "B", "C"}) {
		t.Fatalf("recommendations = %v, want [A B C]", listingIDs(res.Recommendations))
	}
	if !res.Recommendations[0].Seen || res.Recommendations[1].Seen {
		t.Errorf("seen flags = %+v", res.Recommendations)
	}
	if !approxEqual(res.Recommendations[0].RecommendScore, 1.0) {
		t.Errorf("score(A) = %v, want 1.0", res.Recommendations[0].RecommendScore)
	}
}

func TestRecommendWeightedAverage(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U",
		RawInteraction{"listing_id": "A", "like": 1, "views": 0},
		RawInteraction{"listing_id": "B", "like": 0, "views": 2},
	)

	res, err := e.Recommend(context.Background(), Request{UserID: "U", IncludeSeen: true})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// weights 2 and 2: A=(2*1+2*0.8)/4, B=(2*0.8+2*1)/4, C=(2*0.2+2*0.5)/4
	want := []struct {
		id    string
		score float64
	}{{"A", 0.9}, {"B", 0.9}, {"C", 0.35}}
	if len(res.Recommendations) != len(want) {
		t.Fatalf("got %d recommendations", len(res.Recommendations))
	}
	for i, w := range want {
		got := res.Recommendations[i]
		if got.ListingID != w.id || !approxEqual(got.RecommendScore, w.score) {
			t.Errorf("rec[%d] = %+v, want %s %.2f", i, got, w.id, w.score)
		}
	}
}

func TestRecommendAlphaOverride(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U",
		RawInteraction{"listing_id": "A", "like": 1, "views": 0},
		RawInteraction{"listing_id": "C", "like": 0, "views": 1},
	)

	// alpha=0 leaves only C's view weight: score(B) = sim(C,B).
	res, err := e.Recommend(context.Background(), Request{UserID: "U", Alpha: floatPtr(0)})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Recommendations) != 1 || !approxEqual(res.Recommendations[0].RecommendScore, 0.5) {
		t.Errorf("recommendations = %+v, want B=0.5", res.Recommendations)
	}
}

func TestRecommendZeroWeights(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U", RawInteraction{"listing_id": "A", "like": 0, "views": 0})

	res, err := e.Recommend(context.Background(), Request{UserID: "U"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Message != MessageSuccess {
		t.Errorf("Message = %q", res.Message)
	}
	if !equalStrings(listingIDs(res.Recommendations), []string{"B", "C"}) {
		t.Errorf("recommendations = %v, want column order [B C]", listingIDs(res.Recommendations))
	}
	for _, r := range res.Recommendations {
		if r.RecommendScore != 0 {
			t.Errorf("score(%s) = %v, want 0", r.ListingID, r.RecommendScore)
		}
	}
}

func TestRecommendUserIsolation(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U1", RawInteraction{"listing_id": "A", "like": 1, "views": 1})
	ingest(t, e, "U2", RawInteraction{"listing_id": "C", "like": 1, "views": 1})

	r1, err := e.Recommend(context.Background(), Request{UserID: "U1"})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := e.Recommend(context.Background(), Request{UserID: "U2"})
	if err != nil {
		t.Fatal(err)
	}

	if !equalStrings(listingIDs(r1.Recommendations), []string{"B", "C"}) {
		t.Errorf("U1 = %v", listingIDs(r1.Recommendations))
	}
	if !equalStrings(listingIDs(r2.Recommendations), []string{"B", "A"}) {
		t.Errorf("U2 = %v", listingIDs(r2.Recommendations))
	}
}

func TestRecommendReplaceSemantics(t *testing.T) {
	e, store := newTestEngine(t)
	ingest(t, e, "U", RawInteraction{"listing_id": "A", "like": 1, "views": 1})
	ingest(t, e, "U", RawInteraction{"listing_id": "B", "like": 1, "views": 1})

	if got, _ := store.Get(context.Background(), "U"); len(got) != 1 || got[0].ListingID != "B" {
		t.Fatalf("stored = %+v, want only B", got)
	}

	res, err := e.Recommend(context.Background(), Request{UserID: "U"})
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(listingIDs(res.Recommendations), []string{"A", "C"}) {
		t.Errorf("recommendations = %v, want [A C]", listingIDs(res.Recommendations))
	}
}

func TestRecommendTopK(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U", RawInteraction{"listing_id": "A", "like": 1, "views": 1})

	tests := []struct {
		name string
		topK int
		want []string
	}{
		{"zero", 0, []string{}},
		{"one", 1, []string{"B"}},
		{"larger than candidates", 50, []string{"B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Recommend(context.Background(), Request{UserID: "U", TopK: intPtr(tt.topK)})
			if err != nil {
				t.Fatal(err)
			}
			if !equalStrings(listingIDs(res.Recommendations), tt.want) {
				t.Errorf("recommendations = %v, want %v", listingIDs(res.Recommendations), tt.want)
			}
			if res.Count != len(tt.want) {
				t.Errorf("Count = %d", res.Count)
			}
		})
	}
}

func TestRecommendScopeKeepsRankOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U", RawInteraction{"listing_id": "A", "like": 1, "views": 1})

	res, err := e.Recommend(context.Background(), Request{
		UserID: "U",
		Scope:  []string{"C", "B", "Z"},
		TopK:   intPtr(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(listingIDs(res.Recommendations), []string{"B"}) {
		t.Errorf("recommendations = %v, want [B]", listingIDs(res.Recommendations))
	}

	res, err = e.Recommend(context.Background(), Request{UserID: "U", Scope: []string{"C"}})
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(listingIDs(res.Recommendations), []string{"C"}) {
		t.Errorf("recommendations = %v, want [C]", listingIDs(res.Recommendations))
	}
}

func TestRecommendInvalidIDs(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U",
		RawInteraction{"listing_id": "X", "like": 1, "views": 5},
		RawInteraction{"listing_id": "A", "like": 1, "views": 2},
	)

	res, err := e.Recommend(context.Background(), Request{UserID: "U"})
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(res.InvalidIDs, []string{"X"}) {
		t.Errorf("InvalidIDs = %v, want [X]", res.InvalidIDs)
	}
	// X carries no weight because it is not a matrix row.
	if !approxEqual(res.Recommendations[0].RecommendScore, 0.8) {
		t.Errorf("score(B) = %v, want 0.8", res.Recommendations[0].RecommendScore)
	}
}

func TestRecommendAllInvalid(t *testing.T) {
	e, _ := newTestEngine(t)
	ingest(t, e, "U",
		RawInteraction{"listing_id": "X", "like": 1, "views": 1},
		RawInteraction{"listing_id": "Y", "like": 0, "views": 1},
	)

	res, err := e.Recommend(context.Background(), Request{UserID: "U"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != MessageAllInvalid {
		t.Errorf("Message = %q", res.Message)
	}
	if len(res.Recommendations) != 0 || res.Recommendations == nil {
		t.Errorf("Recommendations = %v, want empty non-nil", res.Recommendations)
	}
	if !equalStrings(res.InvalidIDs, []string{"X", "Y"}) {
		t.Errorf("InvalidIDs = %v", res.InvalidIDs)
	}
}

func TestRecommendNoInteractions(t *testing.T) {
	e, _ := newTestEngine(t)

	res, err := e.Recommend(context.Background(), Request{UserID: "nobody"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != MessageNoInteractions || res.Count != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestRecommendRejectsBadRequests(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"empty user", Request{}, ErrEmptyUserID},
		{"negative top_k", Request{UserID: "U", TopK: intPtr(-1)}, ErrInvalidTopK},
		{"negative alpha", Request{UserID: "U", Alpha: floatPtr(-0.5)}, ErrInvalidAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Recommend(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecommendStoreError(t *testing.T) {
	e, store := newTestEngine(t)
	store.getErr = errStoreDown

	_, err := e.Recommend(context.Background(), Request{UserID: "U"})
	if !errors.Is(err, errStoreDown) || !errors.Is(err, ErrStore) {
		t.Errorf("error = %v, want errStoreDown wrapped in ErrStore", err)
	}
	if e.Stats().Errors != 1 {
		t.Errorf("Errors = %d, want 1", e.Stats().Errors)
	}
}

func TestIngestNotifiesListener(t *testing.T) {
	e, store := newTestEngine(t)
	l := &recordingListener{}
	e.SetReplaceListener(l)

	ingest(t, e, "U", RawInteraction{"listing_id": "A", "like": 1, "views": 1})

	if len(l.calls) != 1 || l.calls[0] != "U" {
		t.Errorf("listener calls = %v", l.calls)
	}

	store.replErr = errStoreDown
	if _, err := e.Ingest(context.Background(), "U", []RawInteraction{{"listing_id": "B", "like": 1, "views": 1}}); !errors.Is(err, ErrStore) {
		t.Errorf("Ingest() error = %v, want ErrStore", err)
	}
	if len(l.calls) != 1 {
		t.Errorf("listener called after failed replace: %v", l.calls)
	}

	e.SetReplaceListener(nil)
	store.replErr = nil
	ingest(t, e, "U", RawInteraction{"listing_id": "B", "like": 1, "views": 1})
	if len(l.calls) != 1 {
		t.Errorf("listener called after removal: %v", l.calls)
	}
}

func TestEngineConcurrentAccess(t *testing.T) {
	e, _ := newTestEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := string(rune('a' + n))
			for j := 0; j < 50; j++ {
				_, _ = e.Ingest(context.Background(), user, []RawInteraction{{"listing_id": "A", "like": j % 2, "views": j}})
				_, _ = e.Recommend(context.Background(), Request{UserID: user})
			}
		}(i)
	}
	wg.Wait()

	stats := e.Stats()
	if stats.Ingests != 400 || stats.Requests != 400 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.StoreBackend != "test" || stats.MatrixRows != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
