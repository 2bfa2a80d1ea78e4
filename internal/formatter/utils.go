package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/sentiscope/internal/emoji"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

// labelWithIcon prefixes the display text with the label's icon, if any
func labelWithIcon(p sentiment.Presentation) string {
	if !p.HasIcon() {
		return p.Text
	}
	return emoji.ForIcon(p.Icon) + " " + p.Text
}

// createConfidenceBar creates ASCII confidence bar using go-termfmt
func createConfidenceBar(confidence float64, opts *termfmt.TerminalOptions) string {
	return termfmt.CreateConfidenceBar(sentiment.Fill(confidence), opts)
}

// formatDuration rounds to milliseconds for display
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "N/A"
	}
	return d.Round(time.Millisecond).String()
}

// singleLine collapses whitespace so text fits a table cell
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func checkReport(report *Report) error {
	if report == nil || report.Result == nil {
		return fmt.Errorf("no analysis result to format")
	}
	return nil
}
