// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/config"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/logging"
)

const (
	inMemoryPath = ":memory:"

	// EarthRadiusKM is the sphere radius used for distance calculations.
	EarthRadiusKM = 6371.0
)

// Catalog wraps the DuckDB connection holding the listings table.
type Catalog struct {
	conn *sql.DB
	cfg  *config.CatalogConfig
}

// New opens the DuckDB database named by cfg.DuckDBPath and creates the
// listings table if needed.
func New(cfg *config.CatalogConfig) (*Catalog, error) {
	path := cfg.DuckDBPath
	if path == "" {
		path = inMemoryPath
	}

	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if path != inMemoryPath {
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network environments
	connStr := fmt.Sprintf("%s?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, numThreads)
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	c := &Catalog{conn: conn, cfg: cfg}
	c.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := c.createSchema(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().Str("path", path).Int("threads", numThreads).Msg("Catalog database opened")
	return c, nil
}

func (c *Catalog) configureConnectionPool() {
	c.conn.SetMaxOpenConns(runtime.NumCPU())
	c.conn.SetMaxIdleConns(2)
	c.conn.SetConnMaxLifetime(time.Hour)
	c.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping verifies the database answers.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.conn.PingContext(ctx)
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.conn.Close()
}

func closeQuietly(conn *sql.DB) {
	if conn != nil {
		_ = conn.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
