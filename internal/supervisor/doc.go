// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

/*
Package supervisor provides process supervision using suture v4.

Long-running services are grouped into two layers so a failure in one does
not take down the other:

	RootSupervisor ("listing-recommender")
	├── MessagingSupervisor ("messaging-layer")
	│   └── NATSServerService (if events.embedded)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A service that returns an error is restarted with suture's backoff. Once
FailureThreshold failures accumulate (decaying at FailureDecay per second)
the supervisor waits FailureBackoff before the next restart.

Supervisor events are logged through sutureslog into the zerolog-backed
slog handler from the logging package.
*/
package supervisor
