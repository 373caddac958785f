// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client and resilient facade for the
// ChatFS backend process.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for fallback classification.
type ErrorType int

const (
	// ErrTypeUnknown covers errors that fit no other class.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeNotFound means the backend was reached and the lookup
	// legitimately found nothing. Expected absence, not degradation.
	ErrTypeNotFound

	// ErrTypeUnavailable means the backend process could not be reached.
	ErrTypeUnavailable

	// ErrTypeBackend means the backend was reached but returned an
	// application error.
	ErrTypeBackend
)

// Sentinel errors for easy checking.
var (
	ErrNotFound    = &ClientError{Type: ErrTypeNotFound, Message: "file not found"}
	ErrUnavailable = &ClientError{Type: ErrTypeUnavailable, Message: "backend is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeUnavailable, Message: "request timed out"}
)

// IsNotFound reports whether err classifies as an expected-absence error.
func IsNotFound(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeNotFound
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL (default: http://127.0.0.1:8090)
	BaseURL string

	// Timeout for requests (default: 10s). Expiry surfaces as an
	// unavailable-class error so the facade classifies it as degradation.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8090",
		Timeout: 10 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// SearchResult is one ranked semantic-search hit.
type SearchResult struct {
	Path    string  `json:"path"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Client handles communication with the ChatFS backend process.
// Safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8090"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// =============================================================================
// FILE CONTENT
// =============================================================================

// ReadFile fetches the content of path from the backend.
func (c *Client) ReadFile(ctx context.Context, path string) (string, error) {
	endpoint := c.config.BaseURL + "/api/file?path=" + url.QueryEscape(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnavailable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", &ClientError{Type: ErrTypeUnavailable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", &ClientError{Type: ErrTypeBackend, Message: "failed to read response body", Cause: err}
		}
		return string(body), nil
	case resp.StatusCode == http.StatusNotFound:
		return "", &ClientError{Type: ErrTypeNotFound, Message: "failed to read file " + path + ": no such file"}
	default:
		return "", &ClientError{Type: ErrTypeBackend, Message: "unexpected status from backend: " + resp.Status}
	}
}

// =============================================================================
// SEMANTIC SEARCH
// =============================================================================

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// Search runs a semantic search for query and returns at most topK hits.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	endpoint := c.config.BaseURL + "/api/search?q=" + url.QueryEscape(query) + "&top_k=" + strconv.Itoa(topK)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnavailable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeUnavailable, Message: "backend is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{Type: ErrTypeBackend, Message: "unexpected status from backend: " + resp.Status}
	}

	var results []SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &ClientError{Type: ErrTypeBackend, Message: "failed to decode search response", Cause: err}
	}
	return results, nil
}

// =============================================================================
// HEALTH PROBE
// =============================================================================

// healthProbePath is a path that is never expected to exist. A not-found
// answer for it proves the backend is up and serving requests.
const healthProbePath = "non-existent-file-for-health-check.txt"

// Probe checks whether the backend process is responsive. A not-found
// error for the sentinel path counts as healthy.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.ReadFile(ctx, healthProbePath)
	if err == nil || IsNotFound(err) {
		return nil
	}
	return err
}
