// Package ratelimit provides per-client, per-endpoint token bucket rate limiting.
package ratelimit

import (
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter *rate.Limiter
	limit   int
	burst   int
}

// Limiter manages token buckets keyed by client, endpoint and method.
// Buckets live in an LRU so idle clients are dropped without a cleanup goroutine.
type Limiter struct {
	buckets *lru.Cache[string, *bucket]
	config  *Config
	now     func() time.Time
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = NewConfig(1000.0/60, 1000)
	}

	size := config.MaxClients
	if size <= 0 {
		size = DefaultMaxClients
	}
	cache, err := lru.New[string, *bucket](size)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}

	return &Limiter{buckets: cache, config: config, now: time.Now}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Path:   endpoint,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultBurst,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	// Prefix-matched endpoints share one bucket per client.
	key := clientID + ":" + endpointConfig.Path + ":" + method
	b := l.getBucket(key, endpointConfig)

	now := l.now()
	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(int(tokens), 0),
		ResetTime: now.Add(untilFull(tokens, b.burst, b.limiter.Limit())),
	}
	if !allowed {
		info.RetryAfter = untilFull(tokens, int(tokens)+1, b.limiter.Limit())
	}
	return allowed, info
}

// getBucket gets or creates a token bucket for the given key.
func (l *Limiter) getBucket(key string, cfg *EndpointConfig) *bucket {
	if b, ok := l.buckets.Get(key); ok {
		return b
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.Limit
	}
	b := &bucket{
		limiter: rate.NewLimiter(rate.Every(cfg.Window/time.Duration(cfg.Limit)), burst),
		limit:   cfg.Limit,
		burst:   burst,
	}
	// A concurrent creator may win; either bucket is valid and the loser is dropped.
	if existing, ok, _ := l.buckets.PeekOrAdd(key, b); ok {
		return existing
	}
	return b
}

// untilFull returns how long it takes tokens to refill to target.
func untilFull(tokens float64, target int, limit rate.Limit) time.Duration {
	missing := float64(target) - tokens
	if missing <= 0 || limit <= 0 {
		return 0
	}
	return time.Duration(missing / float64(limit) * float64(time.Second))
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	return l.buckets.Len()
}

// Headers returns the standard rate limit headers for info.
func Headers(info Info) map[string]string {
	if info.Limit <= 0 {
		return nil
	}
	h := map[string]string{
		"X-RateLimit-Limit":     strconv.Itoa(info.Limit),
		"X-RateLimit-Remaining": strconv.Itoa(info.Remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(info.ResetTime.Unix(), 10),
	}
	if info.RetryAfter > 0 {
		h["Retry-After"] = strconv.Itoa(int(info.RetryAfter.Seconds()) + 1)
	}
	return h
}
