// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package services

import (
	"context"
	"errors"
	"time"
)

// ErrNATSServerStopped is returned when the embedded server exits on its own.
var ErrNATSServerStopped = errors.New("embedded NATS server stopped")

// NATSServer is the part of the embedded NATS server the service drives.
type NATSServer interface {
	IsRunning() bool
	Shutdown(ctx context.Context) error
}

// NATSServerService keeps an already started embedded NATS server under
// supervision. It reports the server dying so suture logs the failure, and
// shuts it down when the tree stops.
type NATSServerService struct {
	server          NATSServer
	checkInterval   time.Duration
	shutdownTimeout time.Duration
}

// NewNATSServerService wraps server. checkInterval defaults to 5s.
func NewNATSServerService(server NATSServer, checkInterval, shutdownTimeout time.Duration) *NATSServerService {
	if checkInterval <= 0 {
		checkInterval = 5 * time.Second
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &NATSServerService{
		server:          server,
		checkInterval:   checkInterval,
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve implements suture.Service.
func (s *NATSServerService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()
			_ = s.server.Shutdown(shutdownCtx)
			return ctx.Err()
		case <-ticker.C:
			if !s.server.IsRunning() {
				return ErrNATSServerStopped
			}
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *NATSServerService) String() string {
	return "nats-server"
}
