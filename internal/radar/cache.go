package radar

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"StockRadar/internal/model"
)

// Entry is a memoized report and the time it was computed.
type Entry struct {
	Report     model.AnomalyReport `json:"report"`
	ComputedAt time.Time           `json:"computed_at"`
}

// Cache stores entries by ticker. Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, symbol string) (Entry, bool, error)
	Set(ctx context.Context, symbol string, e Entry, ttl time.Duration) error
}

// CachedDetector memoizes an Analyzer for a freshness window. Entries older
// than the window are never served. GRAY reports and reports computed under a
// cancelled context are not stored.
type CachedDetector struct {
	next  Analyzer
	cache Cache
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

// NewCachedDetector wraps next with cache. A non-positive ttl disables caching.
func NewCachedDetector(next Analyzer, cache Cache, ttl time.Duration, log zerolog.Logger) *CachedDetector {
	return &CachedDetector{
		next:  next,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
		log:   log.With().Str("component", "radar_cache").Logger(),
	}
}

func (c *CachedDetector) Analyze(ctx context.Context, symbol string) model.AnomalyReport {
	symbol = model.NormalizeTicker(symbol)
	if c.cache == nil || c.ttl <= 0 {
		return c.next.Analyze(ctx, symbol)
	}

	e, ok, err := c.cache.Get(ctx, symbol)
	if err != nil {
		c.log.Warn().Err(err).Str("ticker", symbol).Msg("cache read failed")
	}
	if ok && c.now().Sub(e.ComputedAt) < c.ttl {
		c.log.Debug().Str("ticker", symbol).Msg("cache hit")
		return e.Report
	}

	report := c.next.Analyze(ctx, symbol)
	if report.Level == model.LevelGray || ctx.Err() != nil {
		return report
	}
	if err := c.cache.Set(ctx, symbol, Entry{Report: report, ComputedAt: c.now()}, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("ticker", symbol).Msg("cache write failed")
	}
	return report
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

func (m *MemoryCache) Get(_ context.Context, symbol string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[symbol]
	return e, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, symbol string, e Entry, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[symbol] = e
	return nil
}

// Purge drops entries computed before cutoff and returns how many were removed.
func (m *MemoryCache) Purge(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, e := range m.entries {
		if e.ComputedAt.Before(cutoff) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}
