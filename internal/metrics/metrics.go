// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIAuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_auth_failures_total",
			Help: "Total number of requests rejected for missing or invalid tokens",
		},
		[]string{"reason"}, // missing_token, invalid_token
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartscore_db_query_duration_seconds",
			Help:    "Duration of player store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartscore_db_query_errors_total",
			Help: "Total number of failed player store operations",
		},
		[]string{"operation"},
	)

	PlayerRecordsAffected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "player_records_affected_total",
			Help: "Total number of player records inserted, deleted or updated",
		},
		[]string{"operation"}, // inserted, deleted, scored, unscored
	)

	// Event Metrics
	PlayerEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartscore_player_events_total",
			Help: "Total number of player change events consumed",
		},
		[]string{"type"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "player_event_publish_failures_total",
			Help: "Total number of player change events that could not be published",
		},
		[]string{"type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application information (always 1)",
		},
		[]string{"version", "environment"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthFailure counts a rejected request.
func RecordAuthFailure(reason string) {
	APIAuthFailures.WithLabelValues(reason).Inc()
}

// RecordDBQuery records the duration and outcome of a player store call.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordRecordsAffected adds n to the affected-records counter. Non-positive
// counts are ignored.
func RecordRecordsAffected(operation string, n int64) {
	if n <= 0 {
		return
	}
	PlayerRecordsAffected.WithLabelValues(operation).Add(float64(n))
}

// RecordPlayerEvent counts a consumed change event.
func RecordPlayerEvent(eventType string) {
	PlayerEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordEventPublishFailure counts a change event that was dropped.
func RecordEventPublishFailure(eventType string) {
	EventPublishFailures.WithLabelValues(eventType).Inc()
}

// RecordCircuitBreakerTransition updates the state gauge and transition
// counter. state is 0 for closed, 1 for half-open and 2 for open.
func RecordCircuitBreakerTransition(name, from, to string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// SetAppInfo publishes the build version and environment.
func SetAppInfo(version, environment string) {
	AppInfo.WithLabelValues(version, environment).Set(1)
}

// UpdateUptime sets the uptime gauge relative to start.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}

// StatusLabel formats an HTTP status code for the status_code label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
