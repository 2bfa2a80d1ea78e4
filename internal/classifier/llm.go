package classifier

import (
	"context"
	"fmt"

	"github.com/yildizm/go-promptfmt"

	"github.com/yildizm/sentiscope/internal/ai"
	"github.com/yildizm/sentiscope/internal/logger"
)

// SystemPrompt instructs the model to answer with a bare tag.
const SystemPrompt = "You are an expert sentiment analysis model. " +
	"Your task is to classify the sentiment of the provided text as exactly one of: " +
	"<NEGATIVE>, <NEUTRAL>, or <POSITIVE>. " +
	"Respond with only the tag, no additional text or explanation."

// LLMConfidence is reported for every LLM classification; chat completions
// carry no calibrated probability.
const LLMConfidence = 1.0

// LLMOptions tune the completion request.
type LLMOptions struct {
	// Model overrides the provider's default model
	Model string

	// Temperature of 0 leaves the provider default in place
	Temperature float64

	// MaxTokens of 0 leaves the provider default in place
	MaxTokens int
}

// LLM classifies text by prompting a chat completion provider.
type LLM struct {
	provider ai.LLMProvider
	options  LLMOptions
	log      *logger.Logger
}

// NewLLM creates an LLM classifier over provider.
func NewLLM(provider ai.LLMProvider, options LLMOptions, log *logger.Logger) *LLM {
	if log == nil {
		log = logger.Discard()
	}
	return &LLM{
		provider: provider,
		options:  options,
		log:      log.WithComponent("classifier"),
	}
}

// Name returns the classifier name, e.g. "llm:openai".
func (c *LLM) Name() string {
	return "llm:" + c.provider.Name()
}

// HealthCheck asks the provider whether it can serve completions. Providers
// without a health check are assumed ready.
func (c *LLM) HealthCheck(ctx context.Context) error {
	hc, ok := c.provider.(ai.HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%s health check failed: %w", c.provider.Name(), err)
	}
	return nil
}

// BuildPrompt renders the classification prompt for text.
func BuildPrompt(text string) *promptfmt.Prompt {
	return promptfmt.New().
		System(SystemPrompt).
		User("Text to analyze:\n%s", text).
		Build()
}

// Classify asks the provider for a tag and normalizes its answer.
func (c *LLM) Classify(ctx context.Context, text string) (*Classification, error) {
	prompt := BuildPrompt(text)

	req := &ai.CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		Model:        c.options.Model,
		Temperature:  c.options.Temperature,
		MaxTokens:    c.options.MaxTokens,
		RequestID:    RequestID(ctx),
	}

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", c.provider.Name(), err)
	}

	label := NormalizeLabel(resp.Content)
	c.log.DebugWithFields("classified text", []logger.Field{
		logger.F("provider", c.provider.Name()),
		logger.F("model", resp.Model),
		logger.F("label", label.Tag()),
		logger.F("tokens", resp.Usage.Total()),
	})

	return &Classification{
		Label:      label,
		Confidence: LLMConfidence,
		Raw:        resp.Content,
	}, nil
}
