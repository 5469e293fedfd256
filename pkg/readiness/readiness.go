package readiness

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/metrics"
	"github.com/gridboard/gridboard/pkg/types"
)

// Client fetches site readiness statuses from an HTTP endpoint that
// returns a JSON object mapping site name to status. Statuses are
// cached for the configured TTL; a failed or missing endpoint degrades
// every site to "none" instead of failing page loads.
type Client struct {
	// URL is the readiness endpoint; empty disables fetching
	URL string

	// TTL is how long a fetched status map stays valid
	TTL time.Duration

	// HTTPClient is the client used for fetches
	HTTPClient *http.Client

	mu       sync.RWMutex
	statuses map[string]types.Readiness
	fetched  time.Time
}

// NewClient creates a readiness client for the given endpoint.
func NewClient(url string, ttl, timeout time.Duration) *Client {
	return &Client{
		URL: url,
		TTL: ttl,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Status returns the readiness of one site, refreshing the cached map
// when it has expired. Unknown sites report ReadinessNone.
func (c *Client) Status(site string) types.Readiness {
	c.mu.RLock()
	fresh := c.statuses != nil && time.Since(c.fetched) < c.TTL
	status, ok := c.statuses[site]
	c.mu.RUnlock()

	if fresh {
		if !ok {
			return types.ReadinessNone
		}
		return status
	}

	if err := c.Refresh(context.Background()); err != nil {
		metrics.ReadinessFetchFailures.Inc()
		log.WithComponent("readiness").Warn().Err(err).Msg("readiness fetch failed")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.statuses[site]; ok {
		return s
	}
	return types.ReadinessNone
}

// Refresh fetches the readiness map now, replacing the cache on
// success. The previous map is kept when the fetch fails.
func (c *Client) Refresh(ctx context.Context) error {
	if c.URL == "" {
		c.mu.Lock()
		if c.statuses == nil {
			c.statuses = make(map[string]types.Readiness)
		}
		c.fetched = time.Now()
		c.mu.Unlock()
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create readiness request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("readiness request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readiness endpoint returned %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode readiness response: %w", err)
	}

	statuses := make(map[string]types.Readiness, len(raw))
	for site, status := range raw {
		statuses[site] = parseStatus(status)
	}

	c.mu.Lock()
	c.statuses = statuses
	c.fetched = time.Now()
	c.mu.Unlock()

	log.WithComponent("readiness").Debug().
		Int("sites", len(statuses)).
		Msg("readiness statuses refreshed")

	return nil
}

func parseStatus(raw string) types.Readiness {
	switch types.Readiness(raw) {
	case types.ReadinessGreen, types.ReadinessYellow, types.ReadinessRed:
		return types.Readiness(raw)
	default:
		return types.ReadinessNone
	}
}

// Static is a fixed readiness map, used in tests and when no endpoint
// is configured.
type Static map[string]types.Readiness

// Status returns the readiness of one site from the fixed map.
func (s Static) Status(site string) types.Readiness {
	if status, ok := s[site]; ok {
		return status
	}
	return types.ReadinessNone
}
