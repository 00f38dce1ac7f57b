package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// ReportCache is a read-through cache for report results. Reports are
// recomputed from the ledger on every miss; a short TTL keeps dashboards
// cheap without serving stale books for long.
type ReportCache interface {
	// Get returns the cached value for key, or nil on a miss
	Get(ctx context.Context, key string) (any, error)
	// Set stores a value under key for the given TTL
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Invalidate removes all cached report results, as after a posting
	Invalidate(ctx context.Context) error
	// Close releases cache resources
	Close() error
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryReportCache implements ReportCache with process-local storage.
// Suitable for single-instance deployments; a shared cache would be
// needed before scaling out.
type InMemoryReportCache struct {
	entries sync.Map // map[string]*cacheEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// InMemoryReportCacheOption is a functional option for configuring the cache
type InMemoryReportCacheOption func(*InMemoryReportCache)

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) InMemoryReportCacheOption {
	return func(c *InMemoryReportCache) {
		c.logger = logger
	}
}

// WithDefaultTTL sets the TTL used when Set is called with a zero TTL
func WithDefaultTTL(ttl time.Duration) InMemoryReportCacheOption {
	return func(c *InMemoryReportCache) {
		c.ttl = ttl
	}
}

// NewInMemoryReportCache creates a report cache with background cleanup
func NewInMemoryReportCache(opts ...InMemoryReportCacheOption) *InMemoryReportCache {
	c := &InMemoryReportCache{
		ttl:    5 * time.Minute,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()

	return c
}

// Get retrieves a cached report result
func (c *InMemoryReportCache) Get(ctx context.Context, key string) (any, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("report cache hit", zap.String("key", key))
			return entry.value, nil
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("report cache miss", zap.String("key", key))
	return nil, nil
}

// Set stores a report result
func (c *InMemoryReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	if ttl == 0 {
		ttl = c.ttl
	}

	c.entries.Store(key, &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Invalidate removes all cached report results
func (c *InMemoryReportCache) Invalidate(ctx context.Context) error {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
	c.logger.Debug("report cache invalidated")
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryReportCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns cache hit and miss counts
func (c *InMemoryReportCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

func (c *InMemoryReportCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ ReportCache = (*InMemoryReportCache)(nil)
