// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/oyonews/internal/metrics"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Keys        int
	LastCleanup time.Time
}

// Cache is a thread-safe in-memory cache whose entries expire after a TTL.
// Expired entries are dropped on read and by Cleanup.
type Cache[V any] struct {
	name  string
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry[V]
	stats   Stats
}

// New creates a cache. name labels its metrics.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		name:    name,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
}

// Name returns the metrics label of the cache.
func (c *Cache[V]) Name() string {
	return c.name
}

// Get returns a live entry.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Before(e.expiresAt) {
		c.record(func(s *Stats) { s.Hits++ })
		metrics.CacheHits.WithLabelValues(c.name).Inc()
		return e.value, true
	}

	if ok {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
			c.stats.Evictions++
			metrics.CacheEvictions.WithLabelValues(c.name).Inc()
		}
		c.updateSizeLocked()
		c.mu.Unlock()
	}

	c.record(func(s *Stats) { s.Misses++ })
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
	var zero V
	return zero, false
}

// Set stores value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value with its own TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.updateSizeLocked()
}

// GetOrLoad returns the cached value or calls load once for all concurrent
// callers of the same key. Errors are returned to every waiter and are not
// cached.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	res, err, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.peek(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// peek reads without touching the statistics.
func (c *Cache[V]) peek(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Delete removes a key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
		metrics.CacheEvictions.WithLabelValues(c.name).Inc()
	}
	c.updateSizeLocked()
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]entry[V])
	c.stats.Evictions += int64(n)
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
	c.updateSizeLocked()
}

// Cleanup drops expired entries and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.stats.Evictions += int64(removed)
	c.stats.LastCleanup = now
	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(removed))
	}
	c.updateSizeLocked()
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a copy of the statistics.
func (c *Cache[V]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Keys = len(c.entries)
	return s
}

// HitRate returns hits as a percentage of lookups.
func (c *Cache[V]) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

func (c *Cache[V]) record(fn func(*Stats)) {
	c.mu.Lock()
	fn(&c.stats)
	c.mu.Unlock()
}

func (c *Cache[V]) updateSizeLocked() {
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.entries)))
}

// Cleaner is anything with expired entries to drop.
type Cleaner interface {
	Name() string
	Cleanup() int
}

// GenerateKey builds a compact key from a method name and its parameters.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
