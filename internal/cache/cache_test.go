// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/oyonews/internal/metrics"
)

func newClockCache(name string, ttl time.Duration) (*Cache[string], *time.Time) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string](name, ttl)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestCache_GetSetExpire(t *testing.T) {
	t.Parallel()

	c, clock := newClockCache("test_expire", time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("Get() on empty cache hit")
	}
	c.Set("k", "v")
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("Get() = %q, %v", v, ok)
	}

	*clock = clock.Add(time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry survived its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, expired entry kept", c.Len())
	}

	s := c.GetStats()
	if s.Hits != 1 || s.Misses != 2 || s.Evictions != 1 {
		t.Errorf("stats = %+v", s)
	}
	if got := c.HitRate(); got < 33 || got > 34 {
		t.Errorf("HitRate() = %v", got)
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	t.Parallel()

	c, clock := newClockCache("test_ttl", time.Minute)
	c.SetWithTTL("long", "v", time.Hour)
	c.Set("short", "v")

	*clock = clock.Add(30 * time.Minute)
	if _, ok := c.Get("long"); !ok {
		t.Error("long TTL entry expired early")
	}
	if _, ok := c.Get("short"); ok {
		t.Error("short TTL entry survived")
	}
}

func TestCache_Cleanup(t *testing.T) {
	t.Parallel()

	c, clock := newClockCache("test_cleanup", time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.SetWithTTL("c", "3", time.Hour)

	*clock = clock.Add(2 * time.Minute)
	if n := c.Cleanup(); n != 2 {
		t.Errorf("Cleanup() = %d, want 2", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if got := testutil.ToFloat64(metrics.CacheSize.WithLabelValues("test_cleanup")); got != 1 {
		t.Errorf("size gauge = %v, want 1", got)
	}
	if c.GetStats().LastCleanup != *clock {
		t.Error("LastCleanup not recorded")
	}
}

func TestCache_DeleteClear(t *testing.T) {
	t.Parallel()

	c := New[int]("test_clear", time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	c.Delete("missing")
	if c.Len() != 1 {
		t.Errorf("Len() = %d after Delete", c.Len())
	}
	c.Clear()
	if c.Len() != 0 || c.GetStats().Evictions != 2 {
		t.Errorf("after Clear: len %d stats %+v", c.Len(), c.GetStats())
	}
}

func TestCache_GetOrLoad(t *testing.T) {
	t.Parallel()

	c := New[string]("test_load", time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "loaded", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", load)
			if err != nil {
				t.Errorf("GetOrLoad() error = %v", err)
			}
			results[i] = v
		}()
	}

	// Give the goroutines time to pile up on the same key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, v := range results {
		if v != "loaded" {
			t.Errorf("results[%d] = %q", i, v)
		}
	}
	if n := calls.Load(); n < 1 || n > 8 {
		t.Errorf("load calls = %d", n)
	}

	before := calls.Load()
	if v, _ := c.GetOrLoad(context.Background(), "k", load); v != "loaded" || calls.Load() != before {
		t.Error("cached value not served")
	}
}

func TestCache_GetOrLoadErrorNotCached(t *testing.T) {
	t.Parallel()

	c := New[string]("test_load_err", time.Minute)
	boom := errors.New("cms down")

	if _, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", boom
	}); !errors.Is(err, boom) {
		t.Fatalf("GetOrLoad() error = %v", err)
	}
	if c.Len() != 0 {
		t.Error("error result was cached")
	}

	v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Errorf("GetOrLoad() after error = %q, %v", v, err)
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		Page int
		Cat  int
	}
	a := GenerateKey("posts", params{1, 2})
	b := GenerateKey("posts", params{1, 2})
	c := GenerateKey("posts", params{2, 2})
	d := GenerateKey("search", params{1, 2})

	if a != b {
		t.Error("same input produced different keys")
	}
	if a == c || a == d {
		t.Error("different input produced the same key")
	}
	if len(a) != len("posts:")+32 {
		t.Errorf("key %q has unexpected length", a)
	}
}
