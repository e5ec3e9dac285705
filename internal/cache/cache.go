// Package cache implements the explicit time-windowed memoization used by
// the external data adapters: a mapping from argument keys to a value and
// its expiry timestamp. Each adapter owns one cache with its documented
// freshness window (forecast 10 min, geomagnetic index 60 min, geocoding
// 10 min), keyed by the call's input.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TTL is a bounded-staleness cache. A value stays visible until its window
// elapses and is evicted on the next access.
type TTL[V any] struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]entry[V]
}

type entry[V any] struct {
	value  V
	expiry time.Time
}

// New creates a TTL cache using the wall clock.
func New[V any](ttl time.Duration) *TTL[V] {
	return NewWithClock[V](ttl, clockwork.NewRealClock())
}

// NewWithClock creates a TTL cache with an injected clock, so expiry can be
// tested without sleeping.
func NewWithClock[V any](ttl time.Duration, clock clockwork.Clock) *TTL[V] {
	return &TTL[V]{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for key if it is still fresh. An expired
// entry is evicted and reported as a miss.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.clock.Now().After(e.expiry) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores a value under key with the cache's freshness window.
func (c *TTL[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiry: c.clock.Now().Add(c.ttl)}
}

// EvictExpired drops every entry whose window has elapsed and returns how
// many were removed.
func (c *TTL[V]) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	n := 0
	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len reports the number of stored entries, fresh or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
