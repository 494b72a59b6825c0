package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/logger"
)

// StatusError is returned when a request completes with a non-2xx status
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError carrying the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// HTTPClient performs JSON requests against a remote REST API
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Get performs a GET request and unmarshals the response into result
	Get(ctx context.Context, url string, header http.Header, result any) error

	// Send performs a request with a JSON body and unmarshals the response into result when result is not nil
	Send(ctx context.Context, method string, url string, header http.Header, body any, result any) error

	// Delete performs a DELETE request
	Delete(ctx context.Context, url string, header http.Header) error
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client          *http.Client
	initialInterval time.Duration
	maxElapsedTime  time.Duration
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		initialInterval: 2 * time.Second,
		maxElapsedTime:  time.Minute,
	}
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// doRequestWithRetry executes a request, retrying with exponential backoff on 429 and 503
func (c *RealHTTPClient) doRequestWithRetry(ctx context.Context, method string, url string, header http.Header, payload []byte) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		if retryable(resp.StatusCode) {
			logger.Warn("remote throttled, retrying with backoff",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode))
			return fmt.Errorf("throttled (%d), retrying", resp.StatusCode)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(&StatusError{Method: method, URL: url, Code: resp.StatusCode, Body: string(b)})
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = c.maxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return respBody, nil
}

// Get performs a GET request and unmarshals the response into result
func (c *RealHTTPClient) Get(ctx context.Context, url string, header http.Header, result any) error {
	respBody, err := c.doRequestWithRetry(ctx, http.MethodGet, url, header, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Send performs a request with a JSON body
func (c *RealHTTPClient) Send(ctx context.Context, method string, url string, header http.Header, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	respBody, err := c.doRequestWithRetry(ctx, method, url, header, payload)
	if err != nil {
		return err
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Delete performs a DELETE request
func (c *RealHTTPClient) Delete(ctx context.Context, url string, header http.Header) error {
	_, err := c.doRequestWithRetry(ctx, http.MethodDelete, url, header, nil)
	return err
}
