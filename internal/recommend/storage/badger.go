// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/metrics"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

const backendBadger = "badger"

// BadgerStore persists interactions in an embedded BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	if path == "" {
		return nil, fmt.Errorf("badger path is required")
	}

	opts := badger.DefaultOptions(path)
	opts.SyncWrites = true
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an already open database. Close leaves db open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func badgerKey(userID string) []byte {
	return []byte(badgerKeyPrefix + userID)
}

// Replace writes the full record list for userID in one transaction.
func (s *BadgerStore) Replace(ctx context.Context, userID string, records []recommend.InteractionRecord) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(backendBadger, "replace", time.Since(start), err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	if records == nil {
		records = []recommend.InteractionRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal interactions: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(badgerKey(userID), data); err != nil {
			return fmt.Errorf("set interactions: %w", err)
		}
		return nil
	})
}

// Get reads the record list for userID. A missing key is an empty list.
func (s *BadgerStore) Get(ctx context.Context, userID string) (records []recommend.InteractionRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(backendBadger, "get", time.Since(start), err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records = []recommend.InteractionRecord{}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get interactions: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &records)
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Backend implements recommend.InteractionStore.
func (s *BadgerStore) Backend() string { return backendBadger }

// Close closes the database if this store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

var _ recommend.InteractionStore = (*BadgerStore)(nil)
