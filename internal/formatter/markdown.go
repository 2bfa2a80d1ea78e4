package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	if err := checkReport(report); err != nil {
		return nil, err
	}

	var b strings.Builder

	b.WriteString("# Sentiment Analysis Report\n\n")
	generated := report.AnalyzedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, report)
	f.writeText(&b, report.Result.Text)

	return []byte(b.String()), nil
}

// writeSummaryTable writes the result as a two column table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	result := report.Result
	p := sentiment.PresentTag(result.Sentiment)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Sentiment | %s `%s` |\n", labelWithIcon(p), escapeCell(result.Sentiment))
	fmt.Fprintf(b, "| Confidence | %s |\n", sentiment.FormatConfidence(result.Confidence))
	fmt.Fprintf(b, "| Source | %s |\n", escapeCell(orNA(report.Source)))
	fmt.Fprintf(b, "| Backend | %s |\n", escapeCell(orNA(report.Backend)))
	fmt.Fprintf(b, "| Duration | %s |\n\n", formatDuration(report.Duration))
}

// writeText quotes the analyzed text
func (f *markdownFormatter) writeText(b *strings.Builder, text string) {
	b.WriteString("## Text\n\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("> " + line + "\n")
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(singleLine(s), "|", "\\|")
}
