package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestGetMissOnEmptyCache(t *testing.T) {
	c := New[string](time.Minute)
	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestPutThenGet(t *testing.T) {
	c := New[int](time.Minute)
	c.Put("answer", 42)

	v, ok := c.Get("answer")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewWithClock[string](10*time.Minute, clock)
	c.Put("forecast", "cloudy")

	clock.Advance(9 * time.Minute)
	v, ok := c.Get("forecast")
	assert.True(t, ok)
	assert.Equal(t, "cloudy", v)

	clock.Advance(2 * time.Minute)
	_, ok = c.Get("forecast")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be evicted on access")
}

func TestPutRefreshesWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewWithClock[string](10*time.Minute, clock)
	c.Put("kp", "quiet")

	clock.Advance(8 * time.Minute)
	c.Put("kp", "storm")

	clock.Advance(8 * time.Minute)
	v, ok := c.Get("kp")
	assert.True(t, ok)
	assert.Equal(t, "storm", v)
}

func TestEvictExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewWithClock[int](time.Minute, clock)
	c.Put("a", 1)
	c.Put("b", 2)

	clock.Advance(30 * time.Second)
	c.Put("c", 3)

	clock.Advance(45 * time.Second)
	assert.Equal(t, 2, c.EvictExpired())
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
