/*
Package metrics provides Prometheus metrics and health checking for
gridboard.

Metrics are package-level collectors registered at init time and served
through Handler() on /metrics:

  - gridboard_http_requests_total{route,status}
  - gridboard_http_request_duration_seconds{route}
  - gridboard_http_requests_throttled_total
  - gridboard_error_cache_refreshes_total
  - gridboard_error_steps
  - gridboard_actions_submitted_total{action}
  - gridboard_readiness_fetch_failures_total

The health checker tracks component status (error cache, history store,
readiness source) and serves an aggregate JSON document on /healthz,
returning 503 when any component is unhealthy.

# Usage

	metrics.RegisterComponent("errorinfo", true, "loaded")
	metrics.ActionsSubmitted.WithLabelValues("recover").Inc()

	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/healthz", metrics.HealthHandler())
*/
package metrics
