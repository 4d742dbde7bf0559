package limiter

// MockLimiter is a test double for the Limiter interface.
type MockLimiter struct {
	AllowResult bool // returned by every Allow call

	AllowCalls  []string // IPs that Allow() was called with
	CloseCalled bool

	CloseError error
}

// NewMockLimiter creates a mock limiter with the given allow behavior.
func NewMockLimiter(allowResult bool) *MockLimiter {
	return &MockLimiter{
		AllowResult: allowResult,
		AllowCalls:  []string{},
	}
}

// Allow records the call and returns the configured result.
func (m *MockLimiter) Allow(ip string) bool {
	m.AllowCalls = append(m.AllowCalls, ip)
	return m.AllowResult
}

// Close records the call and returns the configured error.
func (m *MockLimiter) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
