package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Sentiment colors, one per color scheme
	Positive lipgloss.AdaptiveColor
	Negative lipgloss.AdaptiveColor
	Neutral  lipgloss.AdaptiveColor

	Error    lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Progress lipgloss.AdaptiveColor
	Track    lipgloss.AdaptiveColor
}

// buildTheme creates a theme from light/dark color pairs
func buildTheme(name string, primary, secondary, positive, negative, neutral, errorColor, border, muted, progress, track [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Positive:  lipgloss.AdaptiveColor{Light: positive[0], Dark: positive[1]},
		Negative:  lipgloss.AdaptiveColor{Light: negative[0], Dark: negative[1]},
		Neutral:   lipgloss.AdaptiveColor{Light: neutral[0], Dark: neutral[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Progress:  lipgloss.AdaptiveColor{Light: progress[0], Dark: progress[1]},
		Track:     lipgloss.AdaptiveColor{Light: track[0], Dark: track[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#2563EB", "#3B82F6"}, [2]string{"#4B5563", "#9CA3AF"},
		[2]string{"#16A34A", "#22C55E"}, [2]string{"#DC2626", "#EF4444"}, [2]string{"#4B5563", "#9CA3AF"},
		[2]string{"#DC2626", "#F87171"}, [2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#2563EB", "#3B82F6"}, [2]string{"#E5E7EB", "#374151"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#333333", "#DDDDDD"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC0000", "#FF4444"}, [2]string{"#333333", "#DDDDDD"},
		[2]string{"#CC0000", "#FF4444"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#000080", "#8080FF"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C53030", "#FC8181"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#C53030", "#FC8181"}, [2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#4A5568", "#CBD5E0"}, [2]string{"#EDF2F7", "#2D3748"})
)

var themes = map[string]*Theme{
	"default":       &DefaultTheme,
	"high-contrast": &HighContrastTheme,
	"minimal":       &MinimalTheme,
}

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	theme, ok := themes[name]
	if !ok {
		return false
	}
	SetTheme(theme)
	return true
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// SchemeColor maps a sentiment color scheme onto the theme.
func (t *Theme) SchemeColor(scheme sentiment.Scheme) lipgloss.AdaptiveColor {
	switch scheme.Name {
	case sentiment.SchemeGreen.Name:
		return t.Positive
	case sentiment.SchemeRed.Name:
		return t.Negative
	case sentiment.SchemeGray.Name:
		return t.Neutral
	default:
		return t.Secondary
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Header   lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Progress lipgloss.Style
	Track    lipgloss.Style

	// Layout styles
	Input    lipgloss.Style
	ErrorBox lipgloss.Style
	Box      lipgloss.Style
}

// Label returns the bold style a sentiment label renders with.
func (s *Styles) Label(scheme sentiment.Scheme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Theme.SchemeColor(scheme)).Bold(true)
}

// GetStyles builds the styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Progress: lipgloss.NewStyle().
			Foreground(theme.Progress),

		Track: lipgloss.NewStyle().
			Foreground(theme.Track),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),
	}
}
