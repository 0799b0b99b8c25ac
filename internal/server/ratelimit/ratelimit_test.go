package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(l *Limiter, start time.Time) *time.Time {
	now := start
	l.now = func() time.Time { return now }
	return &now
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/content", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/content", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, float64(6*time.Second), float64(info.RetryAfter), float64(time.Millisecond))
}

func TestLimiter_Refill(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute, DefaultBurst: 2})
	now := fixedClock(limiter, time.Unix(1_700_000_000, 0))

	allowed, _ := limiter.Allow("c", "/", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/", "GET")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/", "GET")
	require.False(t, allowed)

	*now = now.Add(time.Second)
	allowed, _ = limiter.Allow("c", "/", "GET")
	assert.True(t, allowed, "one token refills per second")
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	allowed, _ := limiter.Allow("a", "/x", "GET")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("a", "/x", "GET")
	assert.False(t, allowed)
	allowed, _ = limiter.Allow("b", "/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("c", "/api/alignment", "POST")
		require.True(t, allowed)
	}
	assert.Zero(t, limiter.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(NewConfig(100, 100))
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("c", "/api/alignment", "POST")
		require.True(t, allowed)
	}
	allowed, info := limiter.Allow("c", "/api/alignment", "POST")
	assert.False(t, allowed, "alignment burst is 3")
	assert.Equal(t, 20, info.Limit)

	allowed, _ = limiter.Allow("c", "/api/content", "GET")
	assert.True(t, allowed, "other endpoints use the default bucket")
}

func TestLimiter_PrefixEndpointsShareBucket(t *testing.T) {
	limiter := NewLimiter(NewConfig(100, 100))
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("c", fmt.Sprintf("/api/chat/sessions/s%d/turns", i), "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("c", "/api/chat/sessions/other/turns", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("c", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EvictsLeastRecentlyUsed(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour, MaxClients: 2})
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	limiter.Allow("a", "/x", "GET")
	limiter.Allow("b", "/x", "GET")
	limiter.Allow("c", "/x", "GET")
	assert.Equal(t, 2, limiter.Len())

	allowed, _ := limiter.Allow("a", "/x", "GET")
	assert.True(t, allowed, "evicted client starts with a fresh bucket")
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("c", "/x", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowedCount.Load())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	allowed, _ := limiter.Allow("c", "/", "GET")
	assert.True(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	assert.Equal(t, "/api/alignment", MatchEndpoint("/api/alignment", "POST", configs).Path)
	assert.Equal(t, "/api/alignment/export", MatchEndpoint("/api/alignment/export", "POST", configs).Path)
	assert.Equal(t, "/api/chat/sessions", MatchEndpoint("/api/chat/sessions", "POST", configs).Path)
	assert.Equal(t, "/api/chat/sessions/", MatchEndpoint("/api/chat/sessions/abc/turns", "POST", configs).Path)
	assert.Nil(t, MatchEndpoint("/api/chat/sessions/abc", "GET", configs))
	assert.Zero(t, MatchEndpoint("/metrics", "GET", configs).Limit)
}

func TestHeaders(t *testing.T) {
	assert.Nil(t, Headers(Info{Allowed: true}))

	h := Headers(Info{Limit: 10, Remaining: 0, ResetTime: time.Unix(100, 0), RetryAfter: 1500 * time.Millisecond})
	assert.Equal(t, "10", h["X-RateLimit-Limit"])
	assert.Equal(t, "0", h["X-RateLimit-Remaining"])
	assert.Equal(t, "100", h["X-RateLimit-Reset"])
	assert.Equal(t, "2", h["Retry-After"])
}
