package limiter

import (
	"sync"
	"time"
)

// Limiter is the per-client rate-limiting contract. Implementations exist for
// single-process (memory) and distributed (redis) deployments.
type Limiter interface {
	// Allow reports whether a request from the given IP should be served.
	Allow(ip string) bool

	// Close cleans up any resources (connections, goroutines).
	Close() error
}

// TokenBucket holds the token-bucket state for a single client. Tokens refill
// at a fixed rate; each request consumes one.
type TokenBucket struct {
	tokens         float64
	capacity       float64
	refillRate     float64 // tokens per second
	lastRefillTime time.Time
	mu             sync.Mutex
}

// NewTokenBucket creates a bucket that starts full. For fractional rates the
// initial fill is clamped to one token so the first request passes.
func NewTokenBucket(rate float64, capacity float64) *TokenBucket {
	initialTokens := capacity
	if initialTokens < 1.0 {
		initialTokens = 1.0
	}

	return &TokenBucket{
		tokens:         initialTokens,
		capacity:       max(capacity, 1.0),
		refillRate:     rate,
		lastRefillTime: time.Now(),
	}
}

// Allow consumes one token if available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}

	return false
}

// refill adds tokens for the elapsed time. Caller holds the mutex.
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefillTime).Seconds()

	tb.tokens = min(tb.tokens+elapsed*tb.refillRate, tb.capacity)
	tb.lastRefillTime = now
}

// MemoryLimiter keeps one token bucket per client IP. Suitable for
// single-server deployments.
type MemoryLimiter struct {
	buckets     sync.Map // map[string]*TokenBucket, keyed by IP
	rate        float64
	capacity    float64
	cleanupMu   sync.Mutex
	lastCleanup time.Time
}

// NewMemoryLimiter creates an in-memory rate limiter. The burst size equals
// one second's worth of requests.
func NewMemoryLimiter(requestsPerSecond float64) *MemoryLimiter {
	return &MemoryLimiter{
		rate:        requestsPerSecond,
		capacity:    requestsPerSecond,
		lastCleanup: time.Now(),
	}
}

// Allow checks the bucket for this IP.
func (rl *MemoryLimiter) Allow(ip string) bool {
	bucket := rl.getBucket(ip)
	allowed := bucket.Allow()
	rl.maybeCleanup()
	return allowed
}

func (rl *MemoryLimiter) getBucket(ip string) *TokenBucket {
	if value, ok := rl.buckets.Load(ip); ok {
		return value.(*TokenBucket)
	}

	bucket := NewTokenBucket(rl.rate, rl.capacity)
	actual, _ := rl.buckets.LoadOrStore(ip, bucket)
	return actual.(*TokenBucket)
}

// maybeCleanup drops buckets idle for 5+ minutes, at most every 5 minutes.
func (rl *MemoryLimiter) maybeCleanup() {
	rl.cleanupMu.Lock()
	defer rl.cleanupMu.Unlock()

	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}

	threshold := time.Now().Add(-5 * time.Minute)

	rl.buckets.Range(func(key, value interface{}) bool {
		bucket := value.(*TokenBucket)
		bucket.mu.Lock()
		lastAccess := bucket.lastRefillTime
		bucket.mu.Unlock()

		if lastAccess.Before(threshold) {
			rl.buckets.Delete(key)
		}

		return true
	})

	rl.lastCleanup = time.Now()
}

// Close satisfies the Limiter interface; nothing to clean up in memory.
func (rl *MemoryLimiter) Close() error {
	return nil
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
