// Package ratelimit provides a token-bucket limiter keyed by an arbitrary
// string (typically the client IP) and chi middleware built on it.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket implements the token bucket algorithm for rate limiting
type TokenBucket struct {
	capacity   int       // Maximum number of tokens
	tokens     float64   // Current number of tokens
	refillRate float64   // Tokens added per second
	lastRefill time.Time // Last time tokens were refilled
	lastAccess time.Time // Last time the bucket was used
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket rate limiter.
// capacity: maximum number of requests allowed in a burst
// refillRate: number of requests allowed per second
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		capacity:   capacity,
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now,
		lastAccess: now,
	}
}

// Allow reports whether a request should be allowed, consuming a token
// when it is.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now
	tb.lastAccess = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}

	return false
}

// RateLimiter manages a token bucket per key.
type RateLimiter struct {
	buckets    map[string]*TokenBucket
	capacity   int
	refillRate float64
	ttl        time.Duration // Inactive buckets older than ttl are evicted
	mu         sync.Mutex
}

// NewRateLimiter creates a new per-key rate limiter.
// ttl bounds how long inactive buckets are kept (0 = forever).
func NewRateLimiter(capacity int, refillRate float64, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		capacity:   capacity,
		refillRate: refillRate,
		ttl:        ttl,
	}
}

// Allow reports whether a request for the key should be allowed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	bucket, exists := rl.buckets[key]
	if !exists {
		bucket = NewTokenBucket(rl.capacity, rl.refillRate)
		rl.buckets[key] = bucket
		rl.evictStale()
	}
	rl.mu.Unlock()

	return bucket.Allow()
}

// evictStale drops buckets idle longer than ttl. Caller holds rl.mu.
func (rl *RateLimiter) evictStale() {
	if rl.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-rl.ttl)
	for key, bucket := range rl.buckets {
		bucket.mu.Lock()
		stale := bucket.lastAccess.Before(cutoff)
		bucket.mu.Unlock()
		if stale {
			delete(rl.buckets, key)
		}
	}
}
