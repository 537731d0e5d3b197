// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelscout/internal/metrics"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache[V any](t *testing.T, name string, ttl time.Duration) (*Cache[V], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewWithCleanup[V](name, ttl, 0)
	c.now = clock.Now
	t.Cleanup(c.Close)
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[string](t, "test_basic", time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists || value != "value1" {
		t.Errorf("Get(key1) = %q, %v", value, exists)
	}

	if v, exists := c.Get("key2"); exists || v != "" {
		t.Errorf("Get(key2) = %q, %v; want zero, false", v, exists)
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[int](t, "test_expiration", time.Minute)
	c.Set("a", 1)

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("entry expired early")
	}

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("entry should be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, expired entry not removed on access", c.Len())
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[string](t, "test_custom_ttl", time.Minute)
	c.SetWithTTL("short", "x", time.Second)
	c.Set("long", "y")
	c.SetWithTTL("never", "z", 0)

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("short"); ok {
		t.Error("short TTL entry should be expired")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("default TTL entry should be present")
	}
	if _, ok := c.Get("never"); ok {
		t.Error("zero TTL should not store")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[string](t, "test_clear", time.Minute)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	c.Delete("key1")
	c.Delete("missing")
	if _, ok := c.Get("key1"); ok {
		t.Error("key1 should be deleted")
	}

	c.Clear()
	for _, key := range []string{"key2", "key3"} {
		if _, ok := c.Get(key); ok {
			t.Errorf("%s should be cleared", key)
		}
	}

	stats := c.GetStats()
	if stats.Evictions != 3 || stats.TotalKeys != 0 {
		t.Errorf("stats = %+v, want 3 evictions and 0 keys", stats)
	}
}

func TestCacheStatsAndHitRate(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[int](t, "test_stats", time.Minute)
	if c.HitRate() != 0 {
		t.Errorf("HitRate() with no operations = %v", c.HitRate())
	}

	hitsBefore := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("test_stats"))
	missesBefore := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("test_stats"))

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	stats := c.GetStats()
	if stats.Hits != 3 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if got := c.HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}

	if got := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("test_stats")) - hitsBefore; got != 3 {
		t.Errorf("hit counter delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("test_stats")) - missesBefore; got != 1 {
		t.Errorf("miss counter delta = %v, want 1", got)
	}
}

func TestCacheCleanup(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[int](t, "test_cleanup", time.Minute)
	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.Advance(30 * time.Second)
	c.Set("fresh", 3)
	clock.Advance(45 * time.Second)

	c.cleanup()

	if c.Len() != 1 {
		t.Errorf("Len() after cleanup = %d, want 1", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 2 || !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCacheCleanupLoopStops(t *testing.T) {
	t.Parallel()

	c := NewWithCleanup[int]("test_loop", time.Millisecond, 5*time.Millisecond)
	c.Set("a", 1)

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Error("background sweep did not remove the expired entry")
	}

	c.Close()
	c.Close()
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[int](t, "test_concurrency", time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%20)
				c.Set(key, g*i)
				c.Get(key)
				if i%50 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits+stats.Misses != 8*200 {
		t.Errorf("hits+misses = %d, want %d", stats.Hits+stats.Misses, 8*200)
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		Mode    string `json:"mode"`
		Limit   int    `json:"limit"`
		Version uint64 `json:"version"`
	}

	a := GenerateKey("recommend", params{Mode: "trending", Limit: 12, Version: 1})
	b := GenerateKey("recommend", params{Mode: "trending", Limit: 12, Version: 1})
	c := GenerateKey("recommend", params{Mode: "trending", Limit: 12, Version: 2})
	d := GenerateKey("similar", params{Mode: "trending", Limit: 12, Version: 1})

	if a != b {
		t.Errorf("same params produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Error("catalog version must change the key")
	}
	if a == d {
		t.Error("method must change the key")
	}
	if len(a) != len("recommend:")+32 {
		t.Errorf("key %q has unexpected length", a)
	}

	// Channels cannot be marshaled; the fallback still yields a stable key.
	ch := make(chan int)
	if got := GenerateKey("bad", ch); got != GenerateKey("bad", ch) {
		t.Error("fallback key not stable")
	}
}
