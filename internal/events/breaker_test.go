// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package events

import (
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestDefaultBreakerConfig(t *testing.T) {
	cfg := DefaultBreakerConfig("pub")
	if cfg.Name != "pub" || cfg.FailureThreshold == 0 || cfg.Timeout == 0 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestNewCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker[struct{}](BreakerConfig{
		Name:             "open-test",
		FailureThreshold: 2,
		Timeout:          time.Minute,
		MaxRequests:      1,
	})
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("initial state = %s", cb.State())
	}

	fail := errors.New("fail")
	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(func() (struct{}, error) { return struct{}{}, fail })
	}
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}

	called := false
	_, err := cb.Execute(func() (struct{}, error) {
		called = true
		return struct{}{}, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
	if called {
		t.Error("open breaker should not run the request")
	}
}

func TestNewCircuitBreaker_ZeroThresholdTripsOnFirstFailure(t *testing.T) {
	cb := NewCircuitBreaker[struct{}](BreakerConfig{Name: "zero", Timeout: time.Minute})
	_, _ = cb.Execute(func() (struct{}, error) { return struct{}{}, errors.New("x") })
	if cb.State() != gobreaker.StateOpen {
		t.Errorf("state = %s, want open", cb.State())
	}
}
