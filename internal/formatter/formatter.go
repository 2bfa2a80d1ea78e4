package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

// Report is one analysis result plus where it came from.
type Report struct {
	Result *sentiment.AnalysisResult

	// Source names the input: "args", "stdin" or a file path
	Source string

	// Backend is the endpoint that produced the result
	Backend string

	Duration   time.Duration
	AnalyzedAt time.Time
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "markdown"}

// New returns the formatter for format. color only affects "text".
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: text, json, markdown)", format)
	}
}
