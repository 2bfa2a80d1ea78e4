package ai

import (
	"context"
	"io"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// Name returns the provider name (e.g., "openai", "ollama")
	Name() string

	// Complete performs a single non-streaming completion
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// ValidateConfig validates the provider configuration
	ValidateConfig() error
}

// HealthChecker verifies that a provider can serve completions
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Provider combines all provider capabilities
type Provider interface {
	LLMProvider
	HealthChecker
	io.Closer
}
