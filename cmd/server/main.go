// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/api"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/config"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/database"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/logging"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/recommend/storage"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/supervisor"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("store_backend", cfg.Store.Backend).
		Bool("catalog_enabled", cfg.Catalog.Enabled).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Starting listing recommendation service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	matrix, catalog, err := loadResources(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load recommendation data")
	}
	if catalog != nil {
		defer func() {
			if err := catalog.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing listings catalog")
			}
		}()
	}

	store, err := storage.New(cfg.Store, logging.WithComponent("store"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open interaction store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing interaction store")
		}
	}()
	logging.Info().Str("backend", store.Backend()).Msg("Interaction store ready")

	engine, err := recommend.NewEngine(&recommend.Config{
		DefaultTopK:  cfg.Recommend.DefaultTopK,
		DefaultAlpha: cfg.Recommend.DefaultAlpha,
	}, matrix, store, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	if path := cfg.Recommend.InteractionsPath; path != "" {
		users, err := engine.SeedFromFile(ctx, path)
		if err != nil {
			logging.Fatal().Err(err).Str("path", path).Msg("Failed to seed interactions")
		}
		logging.Info().Int("users", users).Str("path", path).Msg("Interactions seeded")
	}

	// Create structured logger for supervisor using our slog adapter
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handlerOpts := []api.HandlerOption{api.WithVersion(version)}
	if catalog != nil {
		handlerOpts = append(handlerOpts, api.WithCatalog(catalog))
	}

	events, err := initEvents(cfg, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event publication")
	}
	if events != nil {
		defer events.Close()
		engine.SetReplaceListener(events.publisher)
		handlerOpts = append(handlerOpts, api.WithEvents(events.publisher))
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}

	handler := api.NewHandler(engine, handlerOpts...)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromConfig(cfg))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
		stop()
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadResources reads the similarity matrix and, when enabled, the listings
// catalog concurrently.
func loadResources(ctx context.Context, cfg *config.Config) (*recommend.SimilarityMatrix, *database.Catalog, error) {
	var (
		matrix  *recommend.SimilarityMatrix
		catalog *database.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		m, err := recommend.LoadSimilarityMatrix(gctx, cfg.Recommend.SimilarityPath)
		if err != nil {
			return fmt.Errorf("similarity matrix: %w", err)
		}
		matrix = m
		logging.Info().
			Int("rows", m.NumRows()).
			Int("columns", m.NumColumns()).
			Dur("duration", time.Since(start)).
			Msg("Similarity matrix loaded")
		return nil
	})

	if cfg.Catalog.Enabled {
		g.Go(func() error {
			c, err := database.New(&cfg.Catalog)
			if err != nil {
				return fmt.Errorf("listings catalog: %w", err)
			}
			n, err := c.LoadListings(gctx, cfg.Catalog.ListingsPath)
			if err != nil {
				if closeErr := c.Close(); closeErr != nil {
					logging.Error().Err(closeErr).Msg("Error closing listings catalog")
				}
				return fmt.Errorf("listings catalog: %w", err)
			}
			catalog = c
			logging.Info().Int("listings", n).Str("path", cfg.Catalog.ListingsPath).Msg("Listings catalog loaded")
			return nil
		})
	} else {
		logging.Info().Msg("Listings catalog disabled (CATALOG_ENABLED=false); location and map requests will return 503")
	}

	if err := g.Wait(); err != nil {
		if catalog != nil {
			if closeErr := catalog.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing listings catalog")
			}
		}
		return nil, nil, err
	}
	return matrix, catalog, nil
}
