package errorinfo

import (
	"sync"
	"time"

	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/metrics"
)

// retireGrace is how long a replaced snapshot stays open so requests
// that fetched it before the refresh can finish querying it.
const retireGrace = time.Minute

// Cache hands out a shared Info snapshot and rebuilds it once it grows
// older than the refresh interval. Refreshing only happens from entry
// points that declare it safe, so a page render never swaps the
// snapshot out from under itself. A replaced snapshot is retired, not
// torn down: handlers still holding it keep querying it, and its
// database is closed after the grace period or at Close.
type Cache struct {
	mu           sync.Mutex
	info         *Info
	retired      []*Info
	dataLocation string
	refreshAfter time.Duration
	src          ReadinessSource
	onRefresh    func(*Info)
}

// NewCache creates a cache over the given data location. onRefresh, if
// not nil, runs with the fresh snapshot after every successful (re)load,
// before the snapshot is handed out.
func NewCache(dataLocation string, refreshAfter time.Duration, src ReadinessSource, onRefresh func(*Info)) *Cache {
	return &Cache{
		dataLocation: dataLocation,
		refreshAfter: refreshAfter,
		src:          src,
		onRefresh:    onRefresh,
	}
}

// Get returns the current snapshot, loading it on first use. When
// canRefresh is set and the snapshot has expired, it is retired and a
// fresh one is built first.
func (c *Cache) Get(canRefresh bool) (*Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.info != nil && canRefresh && time.Since(c.info.Timestamp()) > c.refreshAfter {
		log.WithComponent("errorinfo").Info().
			Time("loaded_at", c.info.Timestamp()).
			Msg("error cache expired, refreshing")
		c.retire(c.info)
		c.info = nil
	}

	if c.info == nil {
		info, err := New(c.dataLocation, c.src)
		if err != nil {
			return nil, err
		}
		if c.onRefresh != nil {
			c.onRefresh(info)
		}
		c.info = info
		metrics.CacheRefreshes.Inc()
		metrics.ErrorSteps.Set(float64(len(info.Steps())))
	}

	return c.info, nil
}

// retire parks a replaced snapshot and schedules its teardown. Callers
// hold c.mu.
func (c *Cache) retire(old *Info) {
	c.retired = append(c.retired, old)
	time.AfterFunc(retireGrace, func() { c.release(old) })
}

// release closes a retired snapshot if Close has not already done so.
func (c *Cache) release(old *Info) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for idx, info := range c.retired {
		if info == old {
			c.retired = append(c.retired[:idx], c.retired[idx+1:]...)
			old.Close()
			return
		}
	}
}

// Close releases the current snapshot and any retired ones.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for _, info := range c.retired {
		if cerr := info.Close(); err == nil {
			err = cerr
		}
	}
	c.retired = nil

	if c.info != nil {
		if cerr := c.info.Close(); err == nil {
			err = cerr
		}
		c.info = nil
	}
	return err
}
