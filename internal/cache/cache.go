// Package cache provides the in-memory result cache for idempotent,
// expensive AI operations.
package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

const (
	// DefaultTTL is the default time-to-live for cache entries.
	DefaultTTL = 5 * time.Minute

	// CleanupInterval is how often the background sweeper runs.
	CleanupInterval = 1 * time.Minute
)

// Entry represents a cached operation result with expiration time.
// Entries are never mutated in place; a new Put supersedes the old
// entry under the same fingerprint.
type Entry struct {
	Value     operation.Result
	ExpireAt  time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpireAt)
}

// ResultCache is a thread-safe in-memory cache keyed by operation
// fingerprint. Expired entries are evicted lazily on lookup and by a
// periodic background sweep.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	logger  *slog.Logger

	// Stats
	hits   int64
	misses int64
}

// Option is a functional option for configuring ResultCache.
type Option func(*ResultCache)

// WithTTL sets a custom TTL for cache entries.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ResultCache) {
		c.logger = logger
	}
}

// New creates a ResultCache and starts the background sweeper.
func New(opts ...Option) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]*Entry),
		ttl:     DefaultTTL,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.startCleanup()

	return c
}

// Get retrieves a cached result by fingerprint.
// Returns the result and a boolean indicating whether a live entry
// was found.
func (c *ResultCache) Get(fingerprint string) (operation.Result, bool) {
	c.mu.RLock()
	entry, exists := c.entries[fingerprint]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return operation.Result{}, false
	}

	if entry.IsExpired() {
		c.mu.Lock()
		delete(c.entries, fingerprint)
		c.misses++
		c.mu.Unlock()
		return operation.Result{}, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()

	return entry.Value, true
}

// Put stores a result under the fingerprint with the configured TTL.
// Concurrent writers for the same fingerprint race benignly: the value
// is a pure function of the input, so last-write-wins.
func (c *ResultCache) Put(fingerprint string, value operation.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.entries[fingerprint] = &Entry{
		Value:     value,
		ExpireAt:  now.Add(c.ttl),
		CreatedAt: now,
	}
}

// Flush removes every entry. Used by the admin surface and tests.
func (c *ResultCache) Flush() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*Entry)
	return n
}

// TTL returns the configured entry lifetime.
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}

// Stats returns cache hit/miss statistics and current size.
func (c *ResultCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.entries)
}

// startCleanup periodically removes expired entries.
func (c *ResultCache) startCleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes all expired entries from the cache.
func (c *ResultCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0

	for key, entry := range c.entries {
		if now.After(entry.ExpireAt) {
			delete(c.entries, key)
			expired++
		}
	}

	if expired > 0 && c.logger != nil {
		c.logger.Debug("cache cleanup",
			slog.Int("expired_entries", expired),
			slog.Int("remaining_entries", len(c.entries)),
		)
	}
}
