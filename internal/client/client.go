// Package client talks to the /analyze endpoint and holds the analyzer
// state that every surface renders.
package client

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

	"github.com/yildizm/sentiscope/internal/sentiment"
)

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// Requester performs one analysis round trip.
type Requester interface {
	Analyze(ctx context.Context, text string) (*sentiment.AnalysisResult, error)
}

// Config holds client settings
type Config struct {
	// BaseURL is the backend root; /analyze is appended to it
	BaseURL string

	// Timeout for the HTTP client. Zero means none.
	Timeout time.Duration

	// HTTPClient overrides the default client when set
	HTTPClient *http.Client
}

// Client is an HTTP Requester for the backend's /analyze endpoint.
type Client struct {
	endpoint *url.URL
	http     *http.Client
}

// New creates a client for the given backend.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("backend URL is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint: base.JoinPath("/analyze"),
		http:     httpClient,
	}, nil
}

// Endpoint returns the full /analyze URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Analyze posts {"text": text} and decodes the result. Text is sent as
// given; trimming and the empty check belong to the Analyzer.
func (c *Client) Analyze(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
	body, err := json.Marshal(sentiment.AnalysisRequest{Text: text})
	if err != nil {
		return nil, &RequestError{Cause: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Cause: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp)
	}

	var result sentiment.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return &result, nil
}

// errorFromResponse extracts "detail" when the body is JSON with a string
// detail. FastAPI-style validation bodies carry a list there; those fall
// back to the generic message.
func errorFromResponse(resp *http.Response) error {
	reqErr := &RequestError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		reqErr.Cause = err
		return reqErr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return reqErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		reqErr.Detail = detail
	}

	return reqErr
}
