// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

// Package recommend implements content-based listing recommendations driven
// by a precomputed similarity matrix and per-user interaction history.
//
// # Model
//
// Every interaction record carries a like flag and a cumulative view count.
// The record's interest weight is
//
//	w = alpha*like + views
//
// so a like is worth alpha views (alpha defaults to 2.0). A candidate
// listing c scores
//
//	score(c) = Σ w_i * sim(i, c) / Σ w_i
//
// over the user's listings i that appear as rows of the matrix. When every
// weight is zero all scores are zero.
//
// # Ranking
//
// Listings the user has interacted with are marked seen and dropped unless
// IncludeSeen is set. The remaining candidates are stably sorted by score,
// ties keeping the matrix column order. A non-empty Scope is applied after
// sorting, so it re-ranks a caller supplied candidate set against the global
// ordering instead of scoring it in isolation. The result is cut to TopK.
//
// # Interactions
//
// Ingest coerces a raw batch (listing_id, like, views) into records, keeps
// the last tuple per listing and atomically replaces everything stored for
// the user. The InteractionStore interface is implemented by the storage
// subpackage (memory, BadgerDB, Redis).
//
// # Usage
//
//	matrix, err := recommend.LoadSimilarityMatrix(cfg.Recommend.SimilarityPath)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), matrix, store, logger)
//
//	_, err = engine.Ingest(ctx, "u1", []recommend.RawInteraction{
//	    {"listing_id": 101, "like": 1, "views": 3},
//	})
//	result, err := engine.Recommend(ctx, recommend.Request{UserID: "u1"})
//
// # Thread Safety
//
// The matrix is immutable after load and read without locking. Atomicity of
// per-user replacement is the store's responsibility. Engine is safe for
// concurrent use.
package recommend
