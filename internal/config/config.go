package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Client  ClientConfig `yaml:"client" json:"client"`
	Server  ServerConfig `yaml:"server" json:"server"`
	AI      AIConfig     `yaml:"ai" json:"ai"`
	Output  OutputConfig `yaml:"output" json:"output"`
	UI      UIConfig     `yaml:"ui" json:"ui"`
}

// ClientConfig configures the analyzer client used by the CLI and TUI
type ClientConfig struct {
	BackendURL string        `yaml:"backend_url" json:"backend_url"` // root of the /analyze backend
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`         // HTTP client timeout, 0 disables
}

// ServerConfig configures the backend and the web form
type ServerConfig struct {
	Address         string        `yaml:"address" json:"address"`                   // listen address
	AllowedOrigins  []string      `yaml:"allowed_origins" json:"allowed_origins"`   // CORS origins
	MaxTextLength   int           `yaml:"max_text_length" json:"max_text_length"`   // in runes
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"` // graceful shutdown budget
	BackendURL      string        `yaml:"backend_url" json:"backend_url"`           // web form target, empty means in-process
}

// AIConfig configures the classifier behind /analyze
type AIConfig struct {
	Provider    string        `yaml:"provider" json:"provider"`       // openai|ollama|vader
	Model       string        `yaml:"model" json:"model"`             // model name/identifier
	Endpoint    string        `yaml:"endpoint" json:"endpoint"`       // API endpoint URL
	APIKey      string        `yaml:"api_key" json:"api_key"`         // API key (GROQ_API_KEY is used when empty)
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`         // request timeout
	MaxRetries  int           `yaml:"max_retries" json:"max_retries"` // retry count
	Temperature float64       `yaml:"temperature" json:"temperature"` // sampling temperature
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Client: ClientConfig{
			BackendURL: "http://localhost:8000",
			Timeout:    0,
		},
		Server: ServerConfig{
			Address:         ":8000",
			AllowedOrigins:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			MaxTextLength:   10000,
			ShutdownTimeout: 10 * time.Second,
			BackendURL:      "",
		},
		AI: AIConfig{
			Provider:    "openai",
			Model:       "qwen/qwen3-32b",
			Endpoint:    "https://api.groq.com/openai",
			APIKey:      "",
			Timeout:     30 * time.Second,
			MaxRetries:  3,
			Temperature: 0,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateClientConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return nil
}

// validateClientConfig validates client-related configuration
func (c *Config) validateClientConfig() error {
	if c.Client.BackendURL != "" {
		if err := validateHTTPURL(c.Client.BackendURL); err != nil {
			return fmt.Errorf("invalid client backend_url: %w", err)
		}
	}
	if c.Client.Timeout < 0 {
		return fmt.Errorf("client timeout must be non-negative")
	}
	return nil
}

// validateServerConfig validates server-related configuration
func (c *Config) validateServerConfig() error {
	if c.Server.MaxTextLength < 0 {
		return fmt.Errorf("max_text_length must be non-negative")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must be non-negative")
	}
	if c.Server.BackendURL != "" {
		if err := validateHTTPURL(c.Server.BackendURL); err != nil {
			return fmt.Errorf("invalid server backend_url: %w", err)
		}
	}
	return nil
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	if c.AI.Provider != "" {
		validProviders := map[string]bool{
			"openai": true,
			"ollama": true,
			"vader":  true,
		}
		if !validProviders[c.AI.Provider] {
			return fmt.Errorf("invalid AI provider: %s (must be one of: openai, ollama, vader)", c.AI.Provider)
		}
	}
	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai timeout must be non-negative")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateUIConfig validates terminal UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host", raw)
	}
	return nil
}
