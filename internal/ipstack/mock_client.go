package ipstack

import (
	"context"

	"github.com/evyataryagoni/ipdata/internal/models"
)

// MockClient is a configurable in-memory Client for testing.
// It records every requested IP so tests can verify call behavior.
type MockClient struct {
	// Response is returned by GetIPData when Err is nil. The IP field of the
	// response is overridden with the requested IP.
	Response *models.GeoIPData

	// Err is returned by GetIPData when set.
	Err error

	// GetIPDataCalls records every IP passed to GetIPData.
	GetIPDataCalls []string
}

// NewMockClient creates a mock client with no canned response.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// GetIPData returns the configured response or error.
func (m *MockClient) GetIPData(_ context.Context, ip string) (*models.GeoIPData, error) {
	m.GetIPDataCalls = append(m.GetIPDataCalls, ip)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response == nil {
		return nil, unknownError()
	}

	data := *m.Response
	data.IP = ip
	return &data, nil
}
