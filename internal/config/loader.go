package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.sentiscope.yaml",               // Project-specific config (highest priority)
	"~/.config/sentiscope/config.yaml", // User config
	"/etc/sentiscope/config.yaml",      // System config (lowest priority)
}

// EnvFiles are dotenv files loaded before environment overrides are read.
// Variables already present in the environment win.
var EnvFiles = []string{".env"}

// APIKeyEnv is read when no API key is configured anywhere else.
const APIKeyEnv = "GROQ_API_KEY"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFiles    []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFiles:    EnvFiles,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (including .env files)
// 3. ./.sentiscope.yaml
// 4. ~/.config/sentiscope/config.yaml
// 5. /etc/sentiscope/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// If custom path is provided, use only that path
	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths lowest priority first
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					// Log warning but continue with other config files
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	// Validate the final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// loadEnvFiles loads dotenv files that exist. gotenv does not override
// variables that are already set.
func (l *Loader) loadEnvFiles() error {
	for _, path := range l.envFiles {
		expandedPath := expandPath(path)
		if !fileExists(expandedPath) {
			continue
		}
		if err := gotenv.Load(expandedPath); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", expandedPath, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Client Config
		"SENTISCOPE_CLIENT_BACKEND_URL": func(v string) error { config.Client.BackendURL = v; return nil },
		"SENTISCOPE_CLIENT_TIMEOUT":     func(v string) error { return parseDuration(v, &config.Client.Timeout) },

		// Server Config
		"SENTISCOPE_SERVER_ADDRESS":          func(v string) error { config.Server.Address = v; return nil },
		"SENTISCOPE_SERVER_MAX_TEXT_LENGTH":  func(v string) error { return parseInt(v, &config.Server.MaxTextLength) },
		"SENTISCOPE_SERVER_SHUTDOWN_TIMEOUT": func(v string) error { return parseDuration(v, &config.Server.ShutdownTimeout) },
		"SENTISCOPE_SERVER_BACKEND_URL":      func(v string) error { config.Server.BackendURL = v; return nil },

		// AI Config
		"SENTISCOPE_AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"SENTISCOPE_AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"SENTISCOPE_AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"SENTISCOPE_AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"SENTISCOPE_AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },
		"SENTISCOPE_AI_MAX_RETRIES": func(v string) error { return parseInt(v, &config.AI.MaxRetries) },
		"SENTISCOPE_AI_TEMPERATURE": func(v string) error { return parseFloat(v, &config.AI.Temperature) },

		// Output Config
		"SENTISCOPE_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"SENTISCOPE_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"SENTISCOPE_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },

		// UI Config
		"SENTISCOPE_UI_THEME": func(v string) error { config.UI.Theme = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// Comma-separated list
	if origins := os.Getenv("SENTISCOPE_SERVER_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}

	if config.AI.APIKey == "" {
		config.AI.APIKey = os.Getenv(APIKeyEnv)
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mergeConfigs merges source config into destination config
// Only non-zero values from source overwrite destination
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeClientConfig(&dst.Client, &src.Client)
	mergeServerConfig(&dst.Server, &src.Server)
	mergeAIConfig(&dst.AI, &src.AI)
	mergeOutputConfig(&dst.Output, &src.Output)
	if src.UI.Theme != "" {
		dst.UI.Theme = src.UI.Theme
	}
}

// mergeClientConfig merges client configuration
func mergeClientConfig(dst, src *ClientConfig) {
	if src.BackendURL != "" {
		dst.BackendURL = src.BackendURL
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
}

// mergeServerConfig merges server configuration
func mergeServerConfig(dst, src *ServerConfig) {
	if src.Address != "" {
		dst.Address = src.Address
	}
	if len(src.AllowedOrigins) > 0 {
		dst.AllowedOrigins = src.AllowedOrigins
	}
	if src.MaxTextLength != 0 {
		dst.MaxTextLength = src.MaxTextLength
	}
	if src.ShutdownTimeout != 0 {
		dst.ShutdownTimeout = src.ShutdownTimeout
	}
	if src.BackendURL != "" {
		dst.BackendURL = src.BackendURL
	}
}

// mergeAIConfig merges AI configuration
func mergeAIConfig(dst, src *AIConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.MaxRetries != 0 {
		dst.MaxRetries = src.MaxRetries
	}
	if src.Temperature != 0 {
		dst.Temperature = src.Temperature
	}
}

// mergeOutputConfig merges output configuration
func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	// A false value in a file cannot be told apart from an absent one;
	// SENTISCOPE_OUTPUT_VERBOSE=false is the way to turn it off.
	if src.Verbose {
		dst.Verbose = true
	}
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
