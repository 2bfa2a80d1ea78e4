package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/sentiscope/internal/emoji"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

func testReport(tag string, confidence float64) *Report {
	return &Report{
		Result:     &sentiment.AnalysisResult{Text: "I love it\nso much", Sentiment: tag, Confidence: confidence},
		Source:     "stdin",
		Backend:    "http://localhost:8000/analyze",
		Duration:   1234 * time.Microsecond,
		AnalyzedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	for _, format := range append(Formats, "", "md") {
		if _, err := New(format, false); err != nil {
			t.Errorf("New(%q) error = %v", format, err)
		}
	}

	if _, err := New("csv", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTerminalFormat(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	out, err := NewTerminal(false).Format(testReport(sentiment.TagPositive, 0.873))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"Sentiment Analysis",
		"[+] Positive",
		"87.3% confidence",
		"stdin",
		"http://localhost:8000/analyze",
		"1ms",
		"  I love it\n  so much\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestTerminalFormatUnknownLabel(t *testing.T) {
	out, err := NewTerminal(false).Format(testReport("<MIXED>", 0.5))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(string(out), "Unknown") {
		t.Error("expected Unknown label")
	}
}

func TestJSONFormat(t *testing.T) {
	out, err := NewJSON().Format(testReport(sentiment.TagNegative, 0.25))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got JSONOutput
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got.Sentiment != "<NEGATIVE>" || got.Label != "Negative" {
		t.Errorf("sentiment = %q label = %q", got.Sentiment, got.Label)
	}
	if got.Confidence != 0.25 || got.ConfidencePercent != 25 {
		t.Errorf("confidence = %v percent = %v", got.Confidence, got.ConfidencePercent)
	}
	if got.DurationMS != 1.234 {
		t.Errorf("duration_ms = %v", got.DurationMS)
	}
	if got.Text != "I love it\nso much" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestJSONOmitsEmptyMetadata(t *testing.T) {
	out, err := NewJSON().Format(&Report{Result: &sentiment.AnalysisResult{Text: "x", Sentiment: sentiment.TagNeutral, Confidence: 1}})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	for _, key := range []string{"source", "backend", "duration_ms", "analyzed_at"} {
		if strings.Contains(string(out), `"`+key+`"`) {
			t.Errorf("expected %q to be omitted:\n%s", key, out)
		}
	}
}

func TestMarkdownFormat(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	report := testReport(sentiment.TagNeutral, 1)
	report.Source = "notes|draft.txt"

	out, err := NewMarkdown().Format(report)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"# Sentiment Analysis Report",
		"Generated: 2025-03-01 12:00:00",
		"| Sentiment | [=] Neutral `<NEUTRAL>` |",
		"| Confidence | 100.0% confidence |",
		`| Source | notes\|draft.txt |`,
		"> I love it\n> so much\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestFormatNilResult(t *testing.T) {
	for _, format := range Formats {
		f, _ := New(format, false)
		if _, err := f.Format(&Report{}); err == nil {
			t.Errorf("%s: expected error for empty report", format)
		}
	}
}
