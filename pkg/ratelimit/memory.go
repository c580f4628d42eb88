package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLimiter keeps per-key request timestamps in an expiring
// in-process cache. Old entries are pruned lazily on each check. State
// is process-local and not shared across instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	store   *cache.Cache
	max     int
	window  time.Duration
	nowFunc func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	// Idle keys expire after two windows so the map does not grow with
	// every IP ever seen.
	return &MemoryLimiter{
		store:   cache.New(2*window, 10*time.Minute),
		max:     max,
		window:  window,
		nowFunc: time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	cutoff := now.Add(-l.window)

	var recent []time.Time
	if x, found := l.store.Get(key); found {
		for _, ts := range x.([]time.Time) {
			if ts.After(cutoff) {
				recent = append(recent, ts)
			}
		}
	}

	if len(recent) >= l.max {
		retryAfter := recent[0].Add(l.window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		l.store.Set(key, recent, cache.DefaultExpiration)
		return Decision{Allowed: false, RetryAfter: retryAfter}, nil
	}

	recent = append(recent, now)
	l.store.Set(key, recent, cache.DefaultExpiration)
	return Decision{Allowed: true}, nil
}
