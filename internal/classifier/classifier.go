// Package classifier turns free text into one of the three sentiment tags.
package classifier

import (
	"context"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

// Classifier assigns a sentiment label to a piece of text.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string) (*Classification, error)
}

// HealthChecker is implemented by classifiers that depend on a remote
// model and can tell whether it is ready.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Classification is the outcome of a single Classify call.
type Classification struct {
	Label      sentiment.Label
	Confidence float64

	// Raw is the unprocessed classifier output, kept for debug logging
	Raw string
}

// Tag returns the wire tag for the classification.
func (c *Classification) Tag() string {
	return c.Label.Tag()
}

// Result builds the /analyze response body for text.
func (c *Classification) Result(text string) *sentiment.AnalysisResult {
	return &sentiment.AnalysisResult{
		Text:       text,
		Sentiment:  c.Tag(),
		Confidence: c.Confidence,
	}
}
