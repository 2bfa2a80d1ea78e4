package ollama

import (
	"time"

	"github.com/yildizm/sentiscope/internal/ai"
)

// Config holds Ollama-specific configuration
type Config struct {
	// BaseURL is the Ollama API endpoint
	BaseURL string `json:"base_url"`

	// DefaultModel is the default model to use if none specified
	DefaultModel string `json:"default_model"`

	// Timeout for HTTP requests
	Timeout time.Duration `json:"timeout"`

	// DefaultTemperature for requests
	DefaultTemperature float64 `json:"default_temperature"`

	// RetryAttempts for requests that fail before a response arrives
	RetryAttempts int `json:"retry_attempts"`

	// RetryDelay between retry attempts
	RetryDelay time.Duration `json:"retry_delay"`
}

// DefaultConfig returns a default Ollama configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:            "http://localhost:11434",
		DefaultModel:       "llama3.2",
		Timeout:            30 * time.Second,
		DefaultTemperature: 0.7,
		RetryAttempts:      3,
		RetryDelay:         1 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ai.NewConfigurationError("ollama", "base_url", "base URL is required")
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError("ollama", "default_model", "default model is required")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError("ollama", "timeout", "timeout must be positive")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 1 {
		return ai.NewConfigurationError("ollama", "default_temperature", "temperature must be between 0 and 1")
	}

	if c.RetryAttempts < 0 {
		return ai.NewConfigurationError("ollama", "retry_attempts", "retry attempts must be non-negative")
	}

	return nil
}

// ToProviderConfig converts Ollama config to generic provider config
func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:               "ollama",
		Type:               "ollama",
		BaseURL:            c.BaseURL,
		DefaultModel:       c.DefaultModel,
		DefaultTemperature: c.DefaultTemperature,
		Timeout:            c.Timeout,
		MaxRetries:         c.RetryAttempts,
		Options: map[string]interface{}{
			"retry_delay": c.RetryDelay,
		},
	}
}

// FromProviderConfig creates Ollama config from generic provider config
func FromProviderConfig(pc *ai.ProviderConfig) *Config {
	config := DefaultConfig()

	if pc.BaseURL != "" {
		config.BaseURL = pc.BaseURL
	}

	if pc.DefaultModel != "" {
		config.DefaultModel = pc.DefaultModel
	}

	if pc.DefaultTemperature > 0 && pc.DefaultTemperature <= 1 {
		config.DefaultTemperature = pc.DefaultTemperature
	}

	if pc.Timeout > 0 {
		config.Timeout = pc.Timeout
	}

	if pc.MaxRetries > 0 {
		config.RetryAttempts = pc.MaxRetries
	}

	if pc.Options != nil {
		if retryDelay, ok := pc.Options["retry_delay"].(time.Duration); ok {
			config.RetryDelay = retryDelay
		}
	}

	return config
}
