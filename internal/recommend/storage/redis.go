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

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/breaker"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/metrics"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
)

const (
	backendRedis = "redis"

	defaultRedisTimeout = 3 * time.Second
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to the user id to form the key.
	Prefix string

	// Timeout bounds each call, including the startup ping.
	Timeout time.Duration
}

// RedisStore keeps interactions in Redis, one string key per user.
type RedisStore struct {
	client  redis.UniversalClient
	breaker *breaker.Breaker
	prefix  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRedisStore(opts RedisOptions, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	s := NewRedisStoreWithClient(client, opts.Prefix, opts.Timeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	s.logger.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to redis")
	return s, nil
}

// NewRedisStoreWithClient wraps an existing client. Close closes client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string, timeout time.Duration, logger zerolog.Logger) *RedisStore {
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	return &RedisStore{
		client: client,
		breaker: breaker.NewWithSettings("redis-interactions", breaker.Settings{
			IsSuccessful: isRedisSuccess,
		}),
		prefix:  prefix,
		timeout: timeout,
		logger:  logger.With().Str("component", "interaction-store").Str("backend", backendRedis).Logger(),
	}
}

// isRedisSuccess keeps misses and caller cancellation from tripping the
// breaker.
func isRedisSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, redis.Nil) ||
		errors.Is(err, context.Canceled)
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}

// Replace overwrites the user's key with a single SET.
func (s *RedisStore) Replace(ctx context.Context, userID string, records []recommend.InteractionRecord) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(backendRedis, "replace", time.Since(start), err) }()

	if records == nil {
		records = []recommend.InteractionRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal interactions: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err = s.breaker.Run(func() error {
		return s.client.Set(ctx, s.key(userID), data, 0).Err()
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("redis replace failed")
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get reads the user's key. A missing key is an empty list.
func (s *RedisStore) Get(ctx context.Context, userID string) (records []recommend.InteractionRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(backendRedis, "get", time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var data []byte
	err = s.breaker.Run(func() error {
		var getErr error
		data, getErr = s.client.Get(ctx, s.key(userID)).Bytes()
		return getErr
	})
	if errors.Is(err, redis.Nil) {
		return []recommend.InteractionRecord{}, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("redis get failed")
		return nil, fmt.Errorf("redis get: %w", err)
	}

	records = []recommend.InteractionRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode interactions for %s: %w", userID, err)
	}
	return records, nil
}

// Ping checks connectivity for readiness probes.
func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// BreakerState reports the circuit breaker state.
func (s *RedisStore) BreakerState() string {
	return s.breaker.State()
}

// Backend implements recommend.InteractionStore.
func (s *RedisStore) Backend() string { return backendRedis }

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ recommend.InteractionStore = (*RedisStore)(nil)
