// Package components holds small render helpers shared by the terminal UI.
package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames are the braille frames of the loading spinner.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressBar draws a fixed-width bar for a fraction in [0,1].
type ProgressBar struct {
	Width int
	Fill  lipgloss.Style
	Track lipgloss.Style
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int, fill, track lipgloss.Style) ProgressBar {
	return ProgressBar{Width: width, Fill: fill, Track: track}
}

// Filled returns how many cells are filled for fraction. Out-of-range
// and NaN fractions are clamped.
func (p ProgressBar) Filled(fraction float64) int {
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return int(math.Round(fraction * float64(p.Width)))
}

// Render renders the progress bar
func (p ProgressBar) Render(fraction float64) string {
	filled := p.Filled(fraction)
	return p.Fill.Render(strings.Repeat("█", filled)) +
		p.Track.Render(strings.Repeat("░", p.Width-filled))
}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Style lipgloss.Style
	Label string
}

// Render renders frame; frame may grow without bound.
func (s Spinner) Render(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	char := s.Style.Render(SpinnerFrames[frame%len(SpinnerFrames)])
	if s.Label == "" {
		return char
	}
	return char + " " + s.Style.Render(s.Label)
}
