package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yildizm/sentiscope/internal/ai"
)

type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("openai", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	client := &http.Client{
		Timeout: config.Timeout,
	}

	p := &Provider{
		config:  config,
		client:  client,
		baseURL: baseURL,
	}

	return p, nil
}

func (p *Provider) Name() string {
	return "openai"
}

// Model returns the model used when a request does not name one.
func (p *Provider) Model() string {
	return p.config.DefaultModel
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ai.ValidateCompletionRequest(req); err != nil {
		return nil, err
	}

	response, err := p.sendChatRequest(ctx, p.buildChatRequest(req))
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, ai.NewProviderError(ai.ErrTypeProvider, "response contained no choices", "openai")
	}

	return response.ToAIResponse(req.RequestID), nil
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// HealthCheck lists the models, which needs a reachable server and a
// valid key.
func (p *Provider) HealthCheck(ctx context.Context) error {
	endpoint := p.baseURL.JoinPath("/v1/models")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create health check request", "openai", err)
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "health check request failed", "openai", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return p.handleErrorResponse(resp)
}

func (p *Provider) buildChatRequest(req *ai.CompletionRequest) *ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	chatReq := &ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		User:        req.RequestID,
	}

	chatReq.ToMessages(req.SystemPrompt, req.Prompt)

	return chatReq
}

func (p *Provider) sendChatRequest(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	endpoint := p.baseURL.JoinPath("/v1/chat/completions")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", "openai", err)
	}

	resp, err := p.doRequestWithRetry(ctx, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", "openai", err)
	}

	return &chatResp, nil
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	if p.config.OrganizationID != "" {
		req.Header.Set("OpenAI-Organization", p.config.OrganizationID)
	}
}

// doRequestWithRetry posts body until it gets a 200 or runs out of
// attempts. Failures that ai.IsRetryableError accepts are retried up to
// MaxRetries times with exponential backoff; a Retry-After header replaces
// the backoff. Both waits are capped at MaxRetryDelay.
func (p *Provider) doRequestWithRetry(ctx context.Context, endpoint string, body []byte) (*http.Response, error) {
	attempts := p.config.MaxRetries + 1

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", "openai", err)
		}
		p.setHeaders(req)

		backoff := retryBackoff(p.config.RetryDelay, attempt)

		resp, err := p.client.Do(req)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request canceled", "openai", ctx.Err())
		case err != nil:
			err = ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", "openai", err)
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		default:
			err = p.handleErrorResponse(resp)
			_ = resp.Body.Close()
			backoff = serverBackoff(resp, backoff)
		}

		if attempt >= attempts-1 || !ai.IsRetryableError(err) {
			return nil, err
		}
		if err := wait(ctx, backoff); err != nil {
			return nil, ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request canceled", "openai", err)
		}
	}
}

// retryBackoff doubles base per attempt without overflowing past
// MaxRetryDelay.
func retryBackoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = DefaultRetryDelay
	}
	delay := min(base, MaxRetryDelay)
	for i := 0; i < attempt && delay < MaxRetryDelay; i++ {
		delay *= 2
	}
	return min(delay, MaxRetryDelay)
}

// serverBackoff prefers the response's Retry-After over fallback.
func serverBackoff(resp *http.Response, fallback time.Duration) time.Duration {
	seconds, ok := retryAfter(resp)
	if !ok {
		return fallback
	}
	if seconds > int(MaxRetryDelay/time.Second) {
		return MaxRetryDelay
	}
	return time.Duration(seconds) * time.Second
}

func retryAfter(resp *http.Response) (int, bool) {
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		return 0, false
	}
	return seconds, true
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	fallback := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	message := fallback
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error.Message != "" {
			message = errorResp.Error.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ai.NewHTTPError(ai.ErrTypeAuthentication, resp.StatusCode, message, "openai")
	case http.StatusTooManyRequests:
		seconds, _ := retryAfter(resp)
		return ai.NewRateLimitError("openai", seconds, "requests")
	case http.StatusNotFound:
		return ai.NewHTTPError(ai.ErrTypeNotFound, resp.StatusCode, message, "openai")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ai.NewValidationError("request", "invalid", message)
	default:
		return ai.NewHTTPError(ai.ErrTypeProvider, resp.StatusCode, message, "openai")
	}
}
