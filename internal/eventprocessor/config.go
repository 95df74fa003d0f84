// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package eventprocessor

import (
	"fmt"
	"time"
)

// PublisherConfig configures the NATS publisher.
type PublisherConfig struct {
	URL   string
	Topic string

	// Rate is the sustained events-per-second budget. Zero disables limiting.
	Rate  float64
	Burst int

	MaxReconnects   int
	ReconnectWait   time.Duration
	ReconnectBuffer int
}

// DefaultPublisherConfig returns the publisher defaults.
func DefaultPublisherConfig() PublisherConfig {
	return PublisherConfig{
		URL:             "nats://127.0.0.1:4222",
		Topic:           EventTypeInteractionsReplaced,
		Rate:            100,
		Burst:           200,
		MaxReconnects:   -1,
		ReconnectWait:   2 * time.Second,
		ReconnectBuffer: 8 * 1024 * 1024,
	}
}

// Validate checks the configuration.
func (c *PublisherConfig) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	if c.Rate < 0 {
		return fmt.Errorf("%w: rate must be non-negative", ErrInvalidConfig)
	}
	if c.Rate > 0 && c.Burst < 1 {
		return fmt.Errorf("%w: burst must be at least 1 when rate is set", ErrInvalidConfig)
	}
	return nil
}

// ServerConfig configures the embedded NATS server.
type ServerConfig struct {
	Host string
	Port int
}
