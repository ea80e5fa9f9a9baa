// SmartScore API - Player Statistics Service
// Copyright 2026 Nathan Probert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nathanprobert/smartscore-api

/*
Package metrics defines the Prometheus collectors for the service.

Collectors are registered on the default registry through promauto and are
served by the metrics listener (see supervisor/services.MetricsService),
which is separate from the public API listener:

	curl http://localhost:9090/metrics

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_auth_failures_total{reason}

Storage:
  - smartscore_db_query_duration_seconds{operation}
  - smartscore_db_query_errors_total{operation}
  - player_records_affected_total{operation}

Events:
  - smartscore_player_events_total{type}
  - player_event_publish_failures_total{type}
  - circuit_breaker_state{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Process:
  - app_info{version, environment}
  - app_uptime_seconds

The endpoint label is the chi route pattern, never the raw URL path, so
label cardinality stays bounded by the route table.
*/
package metrics
