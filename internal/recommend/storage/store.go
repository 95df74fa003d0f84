// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/config"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

// Key prefix used by the badger backend.
const badgerKeyPrefix = "interactions:"

// New opens the backend named by cfg.Backend.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg config.StoreConfig, logger zerolog.Logger) (recommend.InteractionStore, error) {
	switch cfg.Backend {
	case config.StoreBackendMemory, "":
		return NewMemoryStore(cfg.Shards), nil
	case config.StoreBackendBadger:
		return OpenBadgerStore(cfg.BadgerPath)
	case config.StoreBackendRedis:
		return NewRedisStore(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			Timeout:  cfg.RedisTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown interaction store backend %q", cfg.Backend)
	}
}

func copyRecords(records []recommend.InteractionRecord) []recommend.InteractionRecord {
	out := make([]recommend.InteractionRecord, len(records))
	copy(out, records)
	return out
}
