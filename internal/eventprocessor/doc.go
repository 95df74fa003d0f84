// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package eventprocessor publishes interaction change events over NATS.

Every successful interaction replace produces one InteractionsReplaced event
on the configured topic. Downstream consumers (offline retraining, analytics)
subscribe to the subject; the recommendation path never waits on them.

Publishing is best effort:
  - a token bucket (golang.org/x/time/rate) caps the publish rate and events
    over budget are dropped and counted
  - a circuit breaker stops calls to an unavailable broker
  - failures are logged and counted, never returned to the HTTP caller

Transport is Watermill's NATS publisher over core NATS. Each message carries
its UUID as the Nats-Msg-Id header. For single-instance deployments an
embedded nats-server can be started in-process.

Example:

	pub, err := eventprocessor.NewPublisher(eventprocessor.PublisherConfig{
	    URL:   cfg.Events.URL,
	    Topic: cfg.Events.Topic,
	}, watermill.NewSlogLogger(logging.NewSlogLogger()))
	if err != nil {
	    return err
	}
	engine.SetReplaceListener(pub)
*/
package eventprocessor
