// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package recommend

import (
	"fmt"
	"math"
)

// Config holds engine defaults applied to requests that omit them.
type Config struct {
	// DefaultTopK is used when a request has no TopK. Zero is allowed.
	DefaultTopK int `json:"default_top_k"`

	// DefaultAlpha is the like multiplier used when a request has no Alpha.
	DefaultAlpha float64 `json:"default_alpha"`
}

// DefaultConfig returns top_k 10 and alpha 2.0.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopK:  10,
		DefaultAlpha: 2.0,
	}
}

// Validate checks the defaults with the same rules applied to requests.
func (c *Config) Validate() error {
	if c.DefaultTopK < 0 {
		return fmt.Errorf("default_top_k: %w", ErrInvalidTopK)
	}
	if err := validateAlpha(c.DefaultAlpha); err != nil {
		return fmt.Errorf("default_alpha: %w", err)
	}
	return nil
}

func validateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return ErrInvalidAlpha
	}
	return nil
}
