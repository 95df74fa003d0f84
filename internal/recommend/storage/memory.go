// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package storage

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/metrics"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

const (
	backendMemory = "memory"

	// DefaultShards is used when a non-positive shard count is requested.
	DefaultShards = 32
)

type memoryShard struct {
	mu    sync.RWMutex
	users map[string][]recommend.InteractionRecord
}

// MemoryStore keeps interactions in process memory.
type MemoryStore struct {
	shards []*memoryShard
}

// NewMemoryStore creates an empty store with the given number of lock shards.
func NewMemoryStore(shards int) *MemoryStore {
	if shards <= 0 {
		shards = DefaultShards
	}
	s := &MemoryStore{shards: make([]*memoryShard, shards)}
	for i := range s.shards {
		s.shards[i] = &memoryShard{users: make(map[string][]recommend.InteractionRecord)}
	}
	return s
}

func (s *MemoryStore) shard(userID string) *memoryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%uint32(len(s.shards))] //nolint:gosec // len is positive and small
}

// Replace swaps in a copy of records for userID.
func (s *MemoryStore) Replace(ctx context.Context, userID string, records []recommend.InteractionRecord) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		metrics.RecordStoreOperation(backendMemory, "replace", time.Since(start), err)
		return err
	}

	stored := copyRecords(records)
	sh := s.shard(userID)
	sh.mu.Lock()
	sh.users[userID] = stored
	sh.mu.Unlock()

	metrics.RecordStoreOperation(backendMemory, "replace", time.Since(start), nil)
	return nil
}

// Get returns a copy of the records for userID.
func (s *MemoryStore) Get(ctx context.Context, userID string) ([]recommend.InteractionRecord, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		metrics.RecordStoreOperation(backendMemory, "get", time.Since(start), err)
		return nil, err
	}

	sh := s.shard(userID)
	sh.mu.RLock()
	out := copyRecords(sh.users[userID])
	sh.mu.RUnlock()

	metrics.RecordStoreOperation(backendMemory, "get", time.Since(start), nil)
	return out, nil
}

// Users returns the number of users with stored interactions.
func (s *MemoryStore) Users() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.users)
		sh.mu.RUnlock()
	}
	return n
}

// Backend implements recommend.InteractionStore.
func (s *MemoryStore) Backend() string { return backendMemory }

// Close implements recommend.InteractionStore.
func (s *MemoryStore) Close() error { return nil }

var _ recommend.InteractionStore = (*MemoryStore)(nil)
