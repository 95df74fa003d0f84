// Singapore Accommodation Rental System - Listing Recommendation Service
// Copyright 2026 NUS-IRS-Group-12
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/NUS-IRS-Group-12/Singapore-Accommodation-Rental-System

package breaker

import (
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

var errBoom = errors.New("boom")

func TestBreakerOpensAfterFailures(t *testing.T) {
	b := NewWithSettings("test-open", Settings{Timeout: time.Hour})

	for i := 0; i < 10; i++ {
		if err := b.Run(func() error { return errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: error = %v, want errBoom", i, err)
		}
	}

	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	err := b.Run(func() error { return nil })
	if !IsRejected(err) {
		t.Errorf("error = %v, want rejection", err)
	}
}

func TestBreakerStaysClosedBelowMinimum(t *testing.T) {
	b := New("test-closed")
	for i := 0; i < 9; i++ {
		_ = b.Run(func() error { return errBoom })
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerIsSuccessful(t *testing.T) {
	b := NewWithSettings("test-ignored", Settings{
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errBoom) },
	})
	for i := 0; i < 20; i++ {
		_ = b.Run(func() error { return errBoom })
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerExecuteResult(t *testing.T) {
	b := New("test-result")
	v, err := b.Execute(func() (any, error) { return 42, nil })
	if err != nil || v.(int) != 42 {
		t.Errorf("Execute() = (%v, %v)", v, err)
	}
	if b.Name() != "test-result" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestStateString(t *testing.T) {
	tests := map[gobreaker.State]string{
		gobreaker.StateClosed:   "closed",
		gobreaker.StateHalfOpen: "half-open",
		gobreaker.StateOpen:     "open",
		gobreaker.State(99):     "unknown",
	}
	for state, want := range tests {
		if got := StateString(state); got != want {
			t.Errorf("StateString(%d) = %q, want %q", state, got, want)
		}
	}
}
