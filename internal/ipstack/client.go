package ipstack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evyataryagoni/ipdata/internal/models"
	"github.com/go-playground/validator/v10"
)

// Client is the contract the service layer depends on to fetch geolocation
// data for an IP address. A failed fetch returns a *APIError.
type Client interface {
	GetIPData(ctx context.Context, ip string) (*models.GeoIPData, error)
}

// Config holds the provider credentials and endpoint. Passed explicitly into
// the constructor, never read from ambient state.
type Config struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
}

// HTTPClient talks to the ipstack HTTP API.
type HTTPClient struct {
	baseURL   string
	accessKey string
	client    *http.Client
	validate  *validator.Validate
}

// NewHTTPClient creates an ipstack client from the given configuration.
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: cfg.AccessKey,
		client:    &http.Client{Timeout: timeout},
		validate:  validator.New(),
	}
}

// GetIPData fetches geolocation data for one IP address.
//
// ipstack answers 200 OK for both successes and application-level errors, so
// the response body is dispatched three ways: a valid success payload, a
// recognized error payload, or the unknown-error sentinel.
func (c *HTTPClient) GetIPData(ctx context.Context, ip string) (*models.GeoIPData, error) {
	reqURL := fmt.Sprintf("%s/%s?access_key=%s", c.baseURL, url.PathEscape(ip), url.QueryEscape(c.accessKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &APIError{Code: CodeUnknown, Type: "http_error", Info: err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &APIError{Code: CodeUnknown, Type: "http_error", Info: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Code: CodeUnknown, Type: "http_error", Info: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Code: resp.StatusCode, Type: "http_error", Info: string(body)}
	}

	return c.decodeResponse(body)
}

// errorPayload is the error shape ipstack returns alongside HTTP 200.
type errorPayload struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// decodeResponse dispatches a 2xx body into one of the three outcomes.
func (c *HTTPClient) decodeResponse(body []byte) (*models.GeoIPData, error) {
	var data models.GeoIPData
	if err := json.Unmarshal(body, &data); err == nil {
		if err := c.validate.Struct(&data); err == nil {
			return &data, nil
		}
	}

	var errResp errorPayload
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil && errResp.Error.Code != 0 {
		return nil, errResp.Error
	}

	return nil, unknownError()
}
