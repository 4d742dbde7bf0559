package limiter

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// TestMemoryLimiter_BasicRateLimit tests the token budget and its refill
func TestMemoryLimiter_BasicRateLimit(t *testing.T) {
	limiter := NewMemoryLimiter(5)
	defer limiter.Close()

	ip := "192.168.1.1"

	for i := 0; i < 5; i++ {
		if !limiter.Allow(ip) {
			t.Errorf("request %d should be allowed", i+1)
		}
	}

	if limiter.Allow(ip) {
		t.Error("request 6 should be rate limited")
	}

	// 1.1s to be safe
	time.Sleep(1100 * time.Millisecond)

	if !limiter.Allow(ip) {
		t.Error("request should be allowed after refill")
	}
}

// TestMemoryLimiter_PerIPIsolation tests that clients get separate buckets
func TestMemoryLimiter_PerIPIsolation(t *testing.T) {
	limiter := NewMemoryLimiter(3)
	defer limiter.Close()

	ip1 := "192.168.1.1"
	ip2 := "192.168.1.2"

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ip1) {
			t.Errorf("request %d for ip1 should be allowed", i+1)
		}
	}
	if limiter.Allow(ip1) {
		t.Error("ip1 should be rate limited")
	}

	// ip2's bucket is untouched
	for i := 0; i < 3; i++ {
		if !limiter.Allow(ip2) {
			t.Errorf("request %d for ip2 should be allowed", i+1)
		}
	}
	if limiter.Allow(ip2) {
		t.Error("ip2 should be rate limited")
	}
}

// TestMemoryLimiter_Concurrency tests thread safety under parallel access
func TestMemoryLimiter_Concurrency(t *testing.T) {
	limiter := NewMemoryLimiter(100)
	defer limiter.Close()

	ip := "192.168.1.1"
	allowedCount := 0
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Double the limit; roughly half must be rejected
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(ip) {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if allowedCount < 95 || allowedCount > 105 {
		t.Errorf("expected ~100 allowed requests, got %d", allowedCount)
	}
}

// TestMemoryLimiter_TokenRefill tests partial refill over time
func TestMemoryLimiter_TokenRefill(t *testing.T) {
	limiter := NewMemoryLimiter(10)
	defer limiter.Close()

	ip := "192.168.1.1"

	for i := 0; i < 10; i++ {
		limiter.Allow(ip)
	}
	if limiter.Allow(ip) {
		t.Error("should be rate limited after using all tokens")
	}

	// 0.5s at 10 req/s refills ~5 tokens
	time.Sleep(500 * time.Millisecond)

	allowedCount := 0
	for i := 0; i < 10; i++ {
		if limiter.Allow(ip) {
			allowedCount++
		}
	}

	if allowedCount < 4 || allowedCount > 6 {
		t.Errorf("expected ~5 allowed requests after 0.5s refill, got %d", allowedCount)
	}
}

// TestMemoryLimiter_Close tests that Close doesn't error
func TestMemoryLimiter_Close(t *testing.T) {
	limiter := NewMemoryLimiter(10)

	if err := limiter.Close(); err != nil {
		t.Errorf("Close should not return error, got: %v", err)
	}
}

// TestLimiterInterface tests that both implementations satisfy Limiter
func TestLimiterInterface(t *testing.T) {
	var _ Limiter = (*MemoryLimiter)(nil)
	var _ Limiter = (*RedisLimiter)(nil)
}

// TestRedisLimiter_BasicRateLimit tests windowed counting against a fake
// Redis server
func TestRedisLimiter_BasicRateLimit(t *testing.T) {
	srv := miniredis.RunT(t)

	limiter, err := NewRedisLimiter(srv.Addr(), "", 0, 5)
	if err != nil {
		t.Fatalf("failed to create redis limiter: %v", err)
	}
	defer limiter.Close()

	ip := "192.168.1.1"

	for i := 0; i < 5; i++ {
		if !limiter.Allow(ip) {
			t.Errorf("request %d should be allowed", i+1)
		}
	}

	if limiter.Allow(ip) {
		t.Error("request 6 should be rate limited")
	}
}

// TestRedisLimiter_PerIPIsolation tests that counters are keyed by IP
func TestRedisLimiter_PerIPIsolation(t *testing.T) {
	srv := miniredis.RunT(t)

	limiter, err := NewRedisLimiter(srv.Addr(), "", 0, 2)
	if err != nil {
		t.Fatalf("failed to create redis limiter: %v", err)
	}
	defer limiter.Close()

	ip1 := "192.168.1.1"
	ip2 := "192.168.1.2"

	limiter.Allow(ip1)
	limiter.Allow(ip1)
	if limiter.Allow(ip1) {
		t.Error("ip1 should be rate limited")
	}

	if !limiter.Allow(ip2) {
		t.Error("ip2 should still be allowed")
	}
}

// TestRedisLimiter_FailOpen tests that a dead Redis doesn't block traffic
func TestRedisLimiter_FailOpen(t *testing.T) {
	srv := miniredis.RunT(t)

	limiter, err := NewRedisLimiter(srv.Addr(), "", 0, 1)
	if err != nil {
		t.Fatalf("failed to create redis limiter: %v", err)
	}
	defer limiter.Close()

	srv.Close()

	if !limiter.Allow("192.168.1.1") {
		t.Error("limiter should fail open when Redis is unreachable")
	}
}

// TestNewLimiter_Memory tests the factory's memory branch
func TestNewLimiter_Memory(t *testing.T) {
	tests := []struct {
		name string
		cfg  LimiterConfig
	}{
		{
			name: "explicit memory type",
			cfg:  LimiterConfig{Type: "memory", RequestsPerSecond: 10},
		},
		{
			name: "uppercase memory type",
			cfg:  LimiterConfig{Type: "MEMORY", RequestsPerSecond: 10},
		},
		{
			name: "empty type defaults to memory",
			cfg:  LimiterConfig{Type: "", RequestsPerSecond: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter, err := NewLimiter(tt.cfg)
			if err != nil {
				t.Errorf("NewLimiter() error = %v", err)
				return
			}
			defer limiter.Close()

			if !limiter.Allow("192.168.1.1") {
				t.Error("first request should be allowed")
			}
		})
	}
}

// TestNewLimiter_Redis tests the factory's redis branch
func TestNewLimiter_Redis(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := LimiterConfig{
		Type:              "redis",
		RequestsPerSecond: 10,
		RedisAddr:         srv.Addr(),
	}

	limiter, err := NewLimiter(cfg)
	if err != nil {
		t.Fatalf("NewLimiter() error = %v", err)
	}
	defer limiter.Close()

	if !limiter.Allow("192.168.1.1") {
		t.Error("first request should be allowed")
	}
}

// TestNewLimiter_InvalidType tests the factory's rejection of unknown types
func TestNewLimiter_InvalidType(t *testing.T) {
	cfg := LimiterConfig{Type: "invalid", RequestsPerSecond: 10}

	if _, err := NewLimiter(cfg); err == nil {
		t.Error("expected error for invalid limiter type")
	}
}

// BenchmarkMemoryLimiter_Allow benchmarks the Allow method
func BenchmarkMemoryLimiter_Allow(b *testing.B) {
	limiter := NewMemoryLimiter(1000000)
	defer limiter.Close()

	ip := "192.168.1.1"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow(ip)
	}
}
