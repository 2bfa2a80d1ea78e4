package sentiment

import (
	"math"
	"testing"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		tag  string
		want Label
	}{
		{TagPositive, Positive},
		{TagNegative, Negative},
		{TagNeutral, Neutral},
		{"POSITIVE", Unknown},
		{"<positive>", Unknown},
		{" <POSITIVE>", Unknown},
		{"", Unknown},
		{"<MIXED>", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseLabel(tt.tag); got != tt.want {
				t.Errorf("ParseLabel(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestLabelTagRoundTrip(t *testing.T) {
	for _, l := range Labels() {
		if got := ParseLabel(l.Tag()); got != l {
			t.Errorf("ParseLabel(%q) = %v, want %v", l.Tag(), got, l)
		}
		if !l.Known() {
			t.Errorf("%v should be known", l)
		}
	}
	if Unknown.Tag() != "" {
		t.Errorf("Unknown.Tag() = %q, want empty", Unknown.Tag())
	}
	if Unknown.Known() {
		t.Error("Unknown should not be known")
	}
}

func TestPresentTag(t *testing.T) {
	tests := []struct {
		tag        string
		wantText   string
		wantScheme string
		wantClass  string
		wantIcon   bool
	}{
		{TagPositive, "Positive", "green", "text-green-600 bg-green-50 border-green-200", true},
		{TagNegative, "Negative", "red", "text-red-600 bg-red-50 border-red-200", true},
		{TagNeutral, "Neutral", "gray", "text-gray-600 bg-gray-50 border-gray-200", true},
		{"<SARCASTIC>", "Unknown", "default", "text-gray-600 bg-gray-50 border-gray-200", false},
		{"", "Unknown", "default", "text-gray-600 bg-gray-50 border-gray-200", false},
	}

	for _, tt := range tests {
		t.Run(tt.wantText+tt.tag, func(t *testing.T) {
			p := PresentTag(tt.tag)
			if p.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", p.Text, tt.wantText)
			}
			if p.Scheme.Name != tt.wantScheme {
				t.Errorf("Scheme = %q, want %q", p.Scheme.Name, tt.wantScheme)
			}
			if p.Scheme.Class != tt.wantClass {
				t.Errorf("Class = %q, want %q", p.Scheme.Class, tt.wantClass)
			}
			if p.HasIcon() != tt.wantIcon {
				t.Errorf("HasIcon() = %v, want %v", p.HasIcon(), tt.wantIcon)
			}
		})
	}
}

func TestResultLabel(t *testing.T) {
	var nilResult *AnalysisResult
	if nilResult.Label() != Unknown {
		t.Error("nil result should have Unknown label")
	}

	r := &AnalysisResult{Text: "great", Sentiment: TagPositive, Confidence: 1}
	if r.Label() != Positive {
		t.Errorf("Label() = %v, want Positive", r.Label())
	}
	if r.Label().String() != "Positive" {
		t.Errorf("String() = %q", r.Label().String())
	}
}

func TestFormatConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		wantText   string
		wantWidth  string
	}{
		{0.873, "87.3% confidence", "87.3%"},
		{1.0, "100.0% confidence", "100.0%"},
		{0, "0.0% confidence", "0.0%"},
		{0.5, "50.0% confidence", "50.0%"},
		{1.5, "150.0% confidence", "100.0%"},
		{-0.2, "-20.0% confidence", "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.wantText, func(t *testing.T) {
			if got := FormatConfidence(tt.confidence); got != tt.wantText {
				t.Errorf("FormatConfidence(%v) = %q, want %q", tt.confidence, got, tt.wantText)
			}
			if got := ProgressWidth(tt.confidence); got != tt.wantWidth {
				t.Errorf("ProgressWidth(%v) = %q, want %q", tt.confidence, got, tt.wantWidth)
			}
		})
	}
}

func TestFillNaN(t *testing.T) {
	if got := Fill(math.NaN()); got != 0 {
		t.Errorf("Fill(NaN) = %v, want 0", got)
	}
}
