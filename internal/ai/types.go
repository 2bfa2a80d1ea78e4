package ai

import (
	"strings"
	"time"
)

// CompletionRequest represents a request for text completion
type CompletionRequest struct {
	// Prompt is the user message
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0)
	Temperature float64 `json:"temperature,omitempty"`

	// Model specifies which model to use (provider-specific)
	Model string `json:"model,omitempty"`

	// Metadata for request tracking
	RequestID string            `json:"request_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	// Usage contains token usage information
	Usage *TokenUsage `json:"usage"`

	// Model indicates which model was used
	Model string `json:"model"`

	// RequestID matches the original request
	RequestID string `json:"request_id,omitempty"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Total returns TotalTokens, or the sum of its parts when the provider
// did not report it.
func (u *TokenUsage) Total() int {
	if u == nil {
		return 0
	}
	if u.TotalTokens > 0 {
		return u.TotalTokens
	}
	return u.PromptTokens + u.CompletionTokens
}

// ProviderConfig contains provider-agnostic configuration used by factories
type ProviderConfig struct {
	// Name is the provider identifier
	Name string `json:"name"`

	// Type is the provider type (openai, ollama)
	Type string `json:"type"`

	// APIKey for authentication
	APIKey string `json:"api_key,omitempty"`

	// BaseURL for the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// DefaultModel is the default model to use
	DefaultModel string `json:"default_model,omitempty"`

	// MaxTokens is the maximum context window
	MaxTokens int `json:"max_tokens,omitempty"`

	// DefaultTemperature for requests
	DefaultTemperature float64 `json:"default_temperature,omitempty"`

	// Timeout for requests
	Timeout time.Duration `json:"timeout,omitempty"`

	// MaxRetries for transient failures
	MaxRetries int `json:"max_retries,omitempty"`

	// Provider-specific options
	Options map[string]interface{} `json:"options,omitempty"`
}

// Validate checks the fields every provider relies on.
func (c *ProviderConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewConfigurationError(c.Type, "name", "provider name is required")
	}
	if c.Timeout < 0 {
		return NewConfigurationError(c.Name, "timeout", "timeout must be non-negative")
	}
	if c.MaxRetries < 0 {
		return NewConfigurationError(c.Name, "max_retries", "max retries must be non-negative")
	}
	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return NewConfigurationError(c.Name, "default_temperature", "temperature must be between 0 and 2")
	}
	return nil
}

// ValidateCompletionRequest checks a request before it is sent.
func ValidateCompletionRequest(req *CompletionRequest) error {
	if req == nil {
		return NewValidationError("request", "nil", "completion request is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return NewValidationError("prompt", "", "prompt is required")
	}
	if req.MaxTokens < 0 {
		return NewValidationError("max_tokens", "negative", "max tokens must be non-negative")
	}
	if req.Temperature < 0 || req.Temperature > 2 {
		return NewValidationError("temperature", "out of range", "temperature must be between 0 and 2")
	}
	return nil
}
