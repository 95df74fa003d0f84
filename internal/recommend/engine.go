// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/metrics"
)

// Engine scores listings for users from their stored interactions.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	matrix *SimilarityMatrix
	store  InteractionStore

	listener atomic.Pointer[listenerHolder]

	requestCount atomic.Int64
	ingestCount  atomic.Int64
	errorCount   atomic.Int64
}

type listenerHolder struct {
	l ReplaceListener
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests      int64  `json:"requests"`
	Ingests       int64  `json:"ingests"`
	Errors        int64  `json:"errors"`
	MatrixRows    int    `json:"matrix_rows"`
	MatrixColumns int    `json:"matrix_columns"`
	StoreBackend  string `json:"store_backend"`
}

// NewEngine creates a recommendation engine over a loaded matrix and store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, matrix *SimilarityMatrix, store InteractionStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if matrix == nil {
		return nil, fmt.Errorf("similarity matrix is required")
	}
	if store == nil {
		return nil, fmt.Errorf("interaction store is required")
	}

	metrics.SetSimilarityMatrixSize(matrix.NumRows(), matrix.NumColumns())

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		matrix: matrix,
		store:  store,
	}, nil
}

// SetReplaceListener registers l to be told about every successful replace.
// Passing nil removes the listener.
func (e *Engine) SetReplaceListener(l ReplaceListener) {
	if l == nil {
		e.listener.Store(nil)
		return
	}
	e.listener.Store(&listenerHolder{l: l})
}

// Matrix returns the similarity matrix the engine scores against.
func (e *Engine) Matrix() *SimilarityMatrix {
	return e.matrix
}

// Store returns the interaction store.
func (e *Engine) Store() InteractionStore {
	return e.store
}

// Stats returns current counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:      e.requestCount.Load(),
		Ingests:       e.ingestCount.Load(),
		Errors:        e.errorCount.Load(),
		MatrixRows:    e.matrix.NumRows(),
		MatrixColumns: e.matrix.NumColumns(),
		StoreBackend:  e.store.Backend(),
	}
}

// Ingest coerces a submitted batch and replaces the user's interactions with
// it. The stored records are returned.
func (e *Engine) Ingest(ctx context.Context, userID string, raw []RawInteraction) ([]InteractionRecord, error) {
	records, duplicates, err := NormalizeInteractions(userID, raw)
	if err != nil {
		metrics.RecordIngest("rejected", 0, 0)
		return nil, err
	}

	if err := e.ReplaceInteractions(ctx, userID, records); err != nil {
		return nil, err
	}

	metrics.RecordIngest("success", len(records), duplicates)
	if duplicates > 0 {
		e.logger.Debug().
			Str("user_id", userID).
			Int("duplicates", duplicates).
			Msg("dropped superseded interaction tuples")
	}
	return records, nil
}

// ReplaceInteractions stores already normalized records for userID, dropping
// whatever was stored before.
func (e *Engine) ReplaceInteractions(ctx context.Context, userID string, records []InteractionRecord) error {
	if err := e.store.Replace(ctx, userID, records); err != nil {
		e.errorCount.Add(1)
		metrics.RecordIngest("error", 0, 0)
		return fmt.Errorf("replace interactions: %w: %w", ErrStore, err)
	}
	e.ingestCount.Add(1)

	if h := e.listener.Load(); h != nil {
		h.l.InteractionsReplaced(ctx, userID, records)
	}
	return nil
}

// Recommend ranks candidate listings for req.UserID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, topK, alpha, err := e.prepareRequest(req)
	if err != nil {
		metrics.RecordRecommendation(metrics.OutcomeRejected, time.Since(start), 0, 0)
		return nil, err
	}
	logger := e.createRequestLogger(req)

	records, err := e.store.Get(ctx, req.UserID)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeError, time.Since(start), 0, 0)
		return nil, fmt.Errorf("load interactions: %w: %w", ErrStore, err)
	}

	if len(records) == 0 {
		logger.Debug().Msg("no interactions for user")
		metrics.RecordRecommendation(metrics.OutcomeNoInteractions, time.Since(start), 0, 0)
		return emptyResult(req.UserID, nil, MessageNoInteractions), nil
	}

	valid, invalidIDs := e.partition(records)
	if len(valid) == 0 {
		logger.Debug().Strs("invalid_ids", invalidIDs).Msg("no interacted listing is in the similarity matrix")
		metrics.RecordRecommendation(metrics.OutcomeAllInvalid, time.Since(start), 0, len(invalidIDs))
		return emptyResult(req.UserID, invalidIDs, MessageAllInvalid), nil
	}

	scores, err := e.score(ctx, valid, alpha)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeError, time.Since(start), 0, len(invalidIDs))
		return nil, err
	}

	recs := e.rank(scores, seenSet(records), req.IncludeSeen, req.Scope, topK)

	result := &Result{
		UserID:          req.UserID,
		Count:           len(recs),
		Recommendations: recs,
		InvalidIDs:      invalidIDs,
		Message:         MessageSuccess,
	}

	metrics.RecordRecommendation(metrics.OutcomeSuccess, time.Since(start), result.Count, len(invalidIDs))
	logger.Debug().
		Int("interactions", len(records)).
		Int("valid", len(valid)).
		Int("invalid", len(invalidIDs)).
		Int("returned", result.Count).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return result, nil
}

// prepareRequest applies defaults, generates a request ID and validates
// numeric parameters.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, int, float64, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.UserID == "" {
		return req, 0, 0, ErrEmptyUserID
	}

	topK := e.config.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	if topK < 0 {
		return req, 0, 0, fmt.Errorf("top_k=%d: %w", topK, ErrInvalidTopK)
	}

	alpha := e.config.DefaultAlpha
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	if err := validateAlpha(alpha); err != nil {
		return req, 0, 0, fmt.Errorf("alpha=%v: %w", alpha, err)
	}

	return req, topK, alpha, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Bool("scoped", len(req.Scope) > 0).
		Logger()
}

// partition splits records into those whose listing is a matrix row and the
// ids of those that are not, both in submission order.
func (e *Engine) partition(records []InteractionRecord) ([]InteractionRecord, []string) {
	valid := make([]InteractionRecord, 0, len(records))
	invalid := []string{}
	for _, r := range records {
		if e.matrix.HasRow(r.ListingID) {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r.ListingID)
		}
	}
	return valid, invalid
}

// score computes the weight-normalized similarity of every column to the
// valid records. A zero total weight yields all-zero scores.
func (e *Engine) score(ctx context.Context, valid []InteractionRecord, alpha float64) ([]float64, error) {
	scores := make([]float64, e.matrix.NumColumns())

	var total float64
	for _, r := range valid {
		total += r.Weight(alpha)
	}
	if total == 0 {
		return scores, nil
	}

	for _, r := range valid {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scoring cancelled: %w", err)
		}
		w := r.Weight(alpha)
		if w == 0 {
			continue
		}
		row, _ := e.matrix.Row(r.ListingID)
		for j, sim := range row {
			scores[j] += w * sim
		}
	}

	for j := range scores {
		scores[j] /= total
	}
	return scores, nil
}

// rank drops seen listings unless includeSeen, sorts by score keeping column
// order on ties, applies scope and truncates to topK.
func (e *Engine) rank(scores []float64, seen map[string]struct{}, includeSeen bool, scope []string, topK int) []Recommendation {
	columns := e.matrix.Columns()

	candidates := make([]Recommendation, 0, len(columns))
	for j, id := range columns {
		_, isSeen := seen[id]
		if isSeen && !includeSeen {
			continue
		}
		candidates = append(candidates, Recommendation{
			ListingID:      id,
			RecommendScore: scores[j],
			Seen:           isSeen,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].RecommendScore > candidates[b].RecommendScore
	})

	if len(scope) > 0 {
		allowed := make(map[string]struct{}, len(scope))
		for _, id := range scope {
			allowed[id] = struct{}{}
		}
		scoped := candidates[:0]
		for _, c := range candidates {
			if _, ok := allowed[c.ListingID]; ok {
				scoped = append(scoped, c)
			}
		}
		candidates = scoped
	}

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

func seenSet(records []InteractionRecord) map[string]struct{} {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.ListingID] = struct{}{}
	}
	return seen
}

func emptyResult(userID string, invalidIDs []string, message string) *Result {
	if invalidIDs == nil {
		invalidIDs = []string{}
	}
	return &Result{
		UserID:          userID,
		Count:           0,
		Recommendations: []Recommendation{},
		InvalidIDs:      invalidIDs,
		Message:         message,
	}
}
