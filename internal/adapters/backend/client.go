// Package backend is the adapter for the hosted data platform the service
// delegates persistence and auth to. Tables are reached through the
// platform's REST interface (PostgREST conventions: eq./is. filters,
// Prefer headers); authorization happens inside the platform via row-level
// policies, driven by the bearer token this client forwards.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithServiceKey sets the key used when a request carries no caller token.
// Background jobs run with it; it bypasses row-level policies.
func WithServiceKey(key string) Option {
	return func(c *Client) {
		c.serviceKey = key
	}
}

func NewClient(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// APIError is a failed response from the platform, keeping the upstream
// error code so callers can translate it.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %s (http %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (http %d): %s", e.Status, e.Message)
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	prefer string
}

// do sends a request to a table endpoint and decodes the response into out
// (when out is non-nil). Failures surface as *APIError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	var body io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	httpReq.Header.Set("apikey", c.anonKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.bearer(ctx))
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload apiError
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &payload)
		if payload.Message == "" {
			payload.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Code: payload.Code, Message: payload.Message}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// bearer picks the caller's token if the request context carries one, the
// service key for background work, and the anon key otherwise.
func (c *Client) bearer(ctx context.Context) string {
	if token := TokenFrom(ctx); token != "" {
		return token
	}
	if c.serviceKey != "" {
		return c.serviceKey
	}
	return c.anonKey
}
