package sentiment

import "fmt"

// Percent converts a confidence fraction into a percentage. No clamping.
func Percent(confidence float64) float64 {
	return confidence * 100
}

// FormatConfidence renders e.g. 0.873 as "87.3% confidence".
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%% confidence", Percent(confidence))
}

// ProgressWidth renders the width of a confidence bar, e.g. "87.3%".
// The bar is clamped to [0%, 100%] so an out-of-range backend value
// cannot overflow its track; the text from FormatConfidence is not.
func ProgressWidth(confidence float64) string {
	return fmt.Sprintf("%.1f%%", Percent(Fill(confidence)))
}

// Fill returns the confidence clamped to [0,1] for drawing bars.
func Fill(confidence float64) float64 {
	switch {
	case confidence != confidence: // NaN
		return 0
	case confidence < 0:
		return 0
	case confidence > 1:
		return 1
	default:
		return confidence
	}
}
