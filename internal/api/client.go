// Package api is the typed client for the SmartTimetable backend service.
// Every call is a single synchronous attempt: failures surface to the
// caller as a *BackendError, never retried here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mlsaran/smarttimetable/internal/logger"
)

// TokenSource supplies the current bearer token. An empty string means
// the request goes out unauthenticated, which the public endpoints allow.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource, mainly for tests and one-shot
// anonymous calls.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// BackendError is a non-2xx response from the backend, with the message
// extracted from the response body.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

// Client talks to the backend API at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New creates an API client. baseURL must include the version prefix and
// carry no trailing slash.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// NewWithHTTPClient creates an API client with a caller-supplied
// *http.Client, used by tests against httptest servers.
func NewWithHTTPClient(baseURL string, tokens TokenSource, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc, tokens: tokens}
}

// errorBody is the error envelope the backend uses for non-2xx responses.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// extractMessage pulls a human-readable message out of an error response
// body, preferring "detail" over "message" with a generic fallback.
func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Detail != "" {
			return eb.Detail
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return plain
	}
	return "an error occurred while communicating with the server"
}

// do issues one request. On 2xx the body is decoded into out (if non-nil);
// otherwise a *BackendError is returned. doRaw is the variant returning the
// body for endpoints whose shape is decided after inspection.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug("API request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		berr := &BackendError{Status: resp.StatusCode, Message: extractMessage(data)}
		logger.Debug("API error", "path", path, "status", resp.StatusCode, "message", berr.Message)
		return nil, berr
	}
	return data, nil
}
