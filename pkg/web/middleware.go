package web

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/metrics"
)

// Middleware handles rate limiting and request instrumentation
type Middleware struct {
	limit        rate.Limit
	burst        int
	rateLimiters map[string]*rate.Limiter
	mu           sync.Mutex
}

// NewMiddleware creates a new middleware handler. A non-positive rps
// disables rate limiting.
func NewMiddleware(rps float64) *Middleware {
	burst := int(rps * 2)
	if burst < 1 {
		burst = 1
	}
	return &Middleware{
		limit:        rate.Limit(rps),
		burst:        burst,
		rateLimiters: make(map[string]*rate.Limiter),
	}
}

// Wrap instruments a handler with request logging, metrics, and rate
// limiting. The route label keeps metric cardinality bounded.
func (m *Middleware) Wrap(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.allow(getClientIP(r)) {
			metrics.RequestsThrottled.Inc()
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(route, http.StatusText(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())

		log.WithComponent("web").Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", duration).
			Str("client", getClientIP(r)).
			Msg("request served")
	})
}

func (m *Middleware) allow(clientIP string) bool {
	if m.limit <= 0 {
		return true
	}

	m.mu.Lock()
	limiter, ok := m.rateLimiters[clientIP]
	if !ok {
		limiter = rate.NewLimiter(m.limit, m.burst)
		m.rateLimiters[clientIP] = limiter
	}
	m.mu.Unlock()

	return limiter.Allow()
}

// statusRecorder captures the response status for metrics and logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// getClientIP extracts the client address, honoring proxy headers
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
