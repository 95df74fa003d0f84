// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

// Package storage provides the per-user interaction stores behind
// recommend.InteractionStore.
//
// # Backends
//
//   - memory: a map sharded by FNV-1a hash of the user id, one RWMutex per
//     shard. Contents are lost on restart.
//   - badger: an embedded BadgerDB. Each user is one key holding the JSON
//     encoded record list, so a replace is a single transactional write.
//   - redis: one string key per user written with a single SET. Calls go
//     through a circuit breaker and carry a per-call timeout.
//
// Every backend replaces a user's records atomically: a concurrent Get sees
// either the old list or the new one, never a mix. Get returns a fresh slice
// the caller may modify.
//
// # Usage
//
//	store, err := storage.New(cfg.Store, logging.Logger())
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package storage
