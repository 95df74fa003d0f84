// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

// Package logging provides the zerolog-based structured logger shared by the
// recommendation service.
//
// A single global logger is configured at startup from the logging section of
// the service configuration. Components derive child loggers from it rather
// than building their own:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("path", cfg.Recommend.SimilarityPath).Msg("Loading similarity matrix")
//
//	engineLogger := logging.WithComponent("recommend")
//	engineLogger.Debug().Int("candidates", n).Msg("Scored candidates")
//
// # Request Context
//
// HTTP middleware stores the chi request ID in the request context. Handlers
// log through Ctx so every line carries request_id (and correlation_id when
// one was attached):
//
//	logging.Ctx(r.Context()).Warn().Str("user_id", userID).Msg("No interactions")
//
// # slog Bridge
//
// Suture (via sutureslog) and Watermill both accept a *slog.Logger.
// NewSlogLogger returns one whose records are written by the zerolog backend,
// so supervisor and messaging output lands in the same stream with the same
// field names.
//
// # Environment
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  include caller file:line (default: false)
//
// Setting FUZZ_MODE=1 lowers the default level to fatal before Init runs.
package logging
