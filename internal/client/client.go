package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"TeneoKeeper/internal/logger"
)

// ErrExhausted marks a request whose every attempt failed. It is the single
// absence signal callers branch on; no distinction is made between a server
// rejection and an unreachable network.
var ErrExhausted = errors.New("max retries reached")

// IsExhausted reports whether err is the retry-exhaustion absence signal.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}

// RetryConfig defines retry behavior for one logical request.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryConfig provides the production retry ceiling.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
}

const requestTimeout = 10 * time.Second

// Client issues authenticated JSON requests against the reward API with
// bounded retry and backoff.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Retry   RetryConfig
}

// New creates a client with optional proxy support.
func New(baseURL, apiKey, proxyURL string, retry RetryConfig) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		Retry: retry,
	}
}

// Do performs one logical request: up to MaxAttempts attempts, backing off
// BaseDelay × attempt-index between failures. The first attempt that yields a
// 2xx response with a valid JSON body returns that body; exhaustion returns
// nil and an ErrExhausted-wrapped error. Callers never see a partial body.
func (c *Client) Do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	endpoint := c.BaseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.Retry.MaxAttempts; attempt++ {
		body, err := c.attempt(ctx, method, endpoint, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err
		logger.Error("request error: %v | url: %s", err, endpoint)

		if attempt == c.Retry.MaxAttempts {
			break
		}
		backoff := time.Duration(attempt) * c.Retry.BaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	logger.Error("max retries reached for %s", endpoint)
	return nil, fmt.Errorf("%w for %s: last error: %v", ErrExhausted, endpoint, lastErr)
}

func (c *Client) attempt(ctx context.Context, method, endpoint string, payload any) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(data))
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON body: %q", string(data))
	}
	return json.RawMessage(data), nil
}
