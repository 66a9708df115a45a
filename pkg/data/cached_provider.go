package data

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ducminhle1904/stock-indicators/pkg/types"
)

// MemoryCache implements DataCache using in-memory storage
type MemoryCache struct {
	cache map[string][]types.OHLCV
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string][]types.OHLCV),
	}
}

// Get retrieves data from cache if available
func (c *MemoryCache) Get(key string) ([]types.OHLCV, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	data, exists := c.cache[key]
	if exists {
		// Return a copy to prevent external modifications
		result := make([]types.OHLCV, len(data))
		copy(result, data)
		return result, true
	}

	return nil, false
}

// Set stores data in cache
func (c *MemoryCache) Set(key string, data []types.OHLCV) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := make([]types.OHLCV, len(data))
	copy(cached, data)
	c.cache[key] = cached
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string][]types.OHLCV)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CachedProvider memoizes another SeriesFetcher by symbol and date range.
// Failures are never cached.
type CachedProvider struct {
	fetcher SeriesFetcher
	cache   DataCache
}

// NewCachedProvider creates a new cached fetcher
func NewCachedProvider(fetcher SeriesFetcher) *CachedProvider {
	return &CachedProvider{
		fetcher: fetcher,
		cache:   NewMemoryCache(),
	}
}

// NewCachedProviderWithCache creates a new cached fetcher with custom cache
func NewCachedProviderWithCache(fetcher SeriesFetcher, cache DataCache) *CachedProvider {
	return &CachedProvider{
		fetcher: fetcher,
		cache:   cache,
	}
}

// GetName returns the name of the underlying fetcher
func (p *CachedProvider) GetName() string {
	return p.fetcher.GetName()
}

// FetchSeries returns cached bars when the same symbol and range were fetched before
func (p *CachedProvider) FetchSeries(ctx context.Context, symbol string, start, end time.Time) ([]types.OHLCV, error) {
	key := cacheKey(symbol, start, end)
	if cachedData, exists := p.cache.Get(key); exists {
		return cachedData, nil
	}

	log.Printf("🔄 Loading daily history for %s from %s", symbol, p.fetcher.GetName())
	data, err := p.fetcher.FetchSeries(ctx, symbol, start, end)
	if err != nil {
		log.Printf("❌ Failed to load %s: %v", symbol, err)
		return nil, err
	}

	p.cache.Set(key, data)
	log.Printf("✅ Loaded and cached %s (%d bars)", symbol, len(data))
	return data, nil
}

func cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", strings.ToUpper(symbol), start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// GetCache returns the underlying cache for external management
func (p *CachedProvider) GetCache() DataCache {
	return p.cache
}

// ClearCache clears all cached data
func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}
