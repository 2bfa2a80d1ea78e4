package cli

import (
	"fmt"
	"strings"

	"github.com/yildizm/sentiscope/internal/ai"
	"github.com/yildizm/sentiscope/internal/ai/providers/ollama"
	"github.com/yildizm/sentiscope/internal/ai/providers/openai"
	"github.com/yildizm/sentiscope/internal/classifier"
	"github.com/yildizm/sentiscope/internal/config"
	"github.com/yildizm/sentiscope/internal/logger"
)

// providerVADER selects the offline classifier; it needs no registry entry.
const providerVADER = "vader"

// newProviderRegistry returns a registry with every built-in provider.
func newProviderRegistry() (*ai.Registry, error) {
	registry := ai.NewRegistry()
	if err := openai.Register(registry); err != nil {
		return nil, err
	}
	if err := ollama.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// createClassifier builds the classifier behind POST /analyze. The returned
// close function releases the provider's idle connections.
func createClassifier(aiConfig *config.AIConfig, log *logger.Logger) (classifier.Classifier, func(), error) {
	name := strings.ToLower(aiConfig.Provider)
	if name == providerVADER {
		return classifier.NewVADER(), func() {}, nil
	}

	registry, err := newProviderRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register AI providers: %w", err)
	}
	if !registry.IsRegistered(name) {
		return nil, nil, fmt.Errorf("unsupported AI provider: %s (available: %s, %s)",
			aiConfig.Provider, strings.Join(registry.List(), ", "), providerVADER)
	}

	provider, err := registry.Create(name, providerConfig(name, aiConfig))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create AI provider: %w", err)
	}

	// The model travels in the provider config as its default.
	c := classifier.NewLLM(provider, classifier.LLMOptions{
		Temperature: aiConfig.Temperature,
	}, log)

	closeFn := func() {
		if err := provider.Close(); err != nil {
			log.Warn("failed to close AI provider: %v", err)
		}
	}
	return c, closeFn, nil
}

// providerConfig maps the ai section onto the registry's generic config.
func providerConfig(name string, aiConfig *config.AIConfig) *ai.ProviderConfig {
	endpoint := aiConfig.Endpoint
	model := aiConfig.Model

	// The shipped endpoint and model are Groq's; they mean nothing to Ollama.
	if name == "ollama" {
		if endpoint == openai.DefaultBaseURL {
			endpoint = ""
		}
		if model == openai.DefaultModel {
			model = ""
		}
	}

	return &ai.ProviderConfig{
		Name:               name,
		Type:               name,
		APIKey:             aiConfig.APIKey,
		BaseURL:            endpoint,
		DefaultModel:       model,
		DefaultTemperature: aiConfig.Temperature,
		Timeout:            aiConfig.Timeout,
		MaxRetries:         aiConfig.MaxRetries,
	}
}
