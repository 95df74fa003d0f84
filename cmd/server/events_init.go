// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/config"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/eventprocessor"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/logging"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/supervisor"
	"github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System/internal/supervisor/services"
)

const natsHealthInterval = 5 * time.Second

// eventComponents holds the interaction event publisher and, in embedded
// mode, the in-process NATS server it publishes to.
type eventComponents struct {
	publisher *eventprocessor.Publisher
	server    *eventprocessor.EmbeddedServer
}

// initEvents wires interaction events to NATS. It returns nil, nil when
// events are disabled.
//
// An embedded server is started before the publisher connects and is then
// handed to the supervisor tree's messaging layer.
func initEvents(cfg *config.Config, tree *supervisor.SupervisorTree) (*eventComponents, error) {
	if !cfg.Events.Enabled {
		logging.Info().Msg("Event publication disabled (EVENTS_ENABLED=false)")
		return nil, nil
	}

	ec := &eventComponents{}
	url := cfg.Events.URL

	if cfg.Events.Embedded {
		srv, err := eventprocessor.NewEmbeddedServer(eventprocessor.ServerConfig{
			Host: cfg.Events.EmbeddedHost,
			Port: cfg.Events.EmbeddedPort,
		})
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS: %w", err)
		}
		ec.server = srv
		url = srv.ClientURL()
		tree.AddMessagingService(services.NewNATSServerService(srv, natsHealthInterval, shutdownTimeout))
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	}

	pubCfg := eventprocessor.DefaultPublisherConfig()
	pubCfg.URL = url
	pubCfg.Topic = cfg.Events.Topic
	pubCfg.Rate = cfg.Events.PublishRate
	pubCfg.Burst = cfg.Events.PublishBurst

	pub, err := eventprocessor.NewPublisher(pubCfg, nil)
	if err != nil {
		ec.Close()
		return nil, fmt.Errorf("create event publisher: %w", err)
	}
	ec.publisher = pub

	logging.Info().
		Str("url", url).
		Str("topic", pub.Topic()).
		Float64("rate", pubCfg.Rate).
		Msg("Interaction events enabled")
	return ec, nil
}

// Close stops the publisher, then the embedded server if there is one.
func (ec *eventComponents) Close() {
	if ec.publisher != nil {
		if err := ec.publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event publisher")
		}
	}
	if ec.server != nil && ec.server.IsRunning() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := ec.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down embedded NATS")
		}
	}
}
