package classifier

import (
	"regexp"
	"strings"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// NormalizeLabel maps raw model output onto one of the three known labels.
//
// Reasoning models wrap their chain of thought in <think> blocks; those are
// removed first. If what remains is not an exact tag, keywords decide, with
// negative cues checked before positive ones. Anything else is neutral.
func NormalizeLabel(raw string) sentiment.Label {
	cleaned := strings.TrimSpace(thinkBlock.ReplaceAllString(strings.TrimSpace(raw), ""))

	if label := sentiment.ParseLabel(cleaned); label.Known() {
		return label
	}

	lower := strings.ToLower(cleaned)
	switch {
	case strings.Contains(lower, "negative") || strings.Contains(lower, "bad"):
		return sentiment.Negative
	case strings.Contains(lower, "positive") || strings.Contains(lower, "good"):
		return sentiment.Positive
	default:
		return sentiment.Neutral
	}
}
