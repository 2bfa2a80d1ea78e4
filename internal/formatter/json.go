package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter. The first three
// fields mirror the /analyze response.
type JSONOutput struct {
	Text              string    `json:"text"`
	Sentiment         string    `json:"sentiment"`
	Confidence        float64   `json:"confidence"`
	Label             string    `json:"label"`
	ConfidencePercent float64   `json:"confidence_percent"`
	Source            string    `json:"source,omitempty"`
	Backend           string    `json:"backend,omitempty"`
	DurationMS        float64   `json:"duration_ms,omitempty"`
	AnalyzedAt        time.Time `json:"analyzed_at,omitzero"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	if err := checkReport(report); err != nil {
		return nil, err
	}

	result := report.Result
	output := &JSONOutput{
		Text:              result.Text,
		Sentiment:         result.Sentiment,
		Confidence:        result.Confidence,
		Label:             sentiment.PresentTag(result.Sentiment).Text,
		ConfidencePercent: sentiment.Percent(result.Confidence),
		Source:            report.Source,
		Backend:           report.Backend,
		DurationMS:        float64(report.Duration.Microseconds()) / 1000.0,
		AnalyzedAt:        report.AnalyzedAt,
	}

	return json.MarshalIndent(output, "", "  ")
}
