package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridboard_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	RequestsThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gridboard_http_requests_throttled_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Error cache metrics
	CacheRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gridboard_error_cache_refreshes_total",
			Help: "Total number of error cache loads",
		},
	)

	ErrorSteps = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gridboard_error_steps",
			Help: "Number of distinct steps in the loaded error data",
		},
	)

	// Action metrics
	ActionsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridboard_actions_submitted_total",
			Help: "Total number of remediation actions submitted by action type",
		},
		[]string{"action"},
	)

	// Readiness metrics
	ReadinessFetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gridboard_readiness_fetch_failures_total",
			Help: "Total number of failed site readiness fetches",
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(RequestsThrottled)
	prometheus.MustRegister(CacheRefreshes)
	prometheus.MustRegister(ErrorSteps)
	prometheus.MustRegister(ActionsSubmitted)
	prometheus.MustRegister(ReadinessFetchFailures)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
