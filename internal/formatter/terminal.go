package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/sentiscope/internal/emoji"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

var schemeColors = map[string]lipgloss.AdaptiveColor{
	sentiment.SchemeGreen.Name: {Light: "#16A34A", Dark: "#22C55E"},
	sentiment.SchemeRed.Name:   {Light: "#DC2626", Dark: "#EF4444"},
	sentiment.SchemeGray.Name:  {Light: "#4B5563", Dark: "#9CA3AF"},
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	if err := checkReport(report); err != nil {
		return nil, err
	}

	var b strings.Builder
	f.writeHeader(&b)
	f.writeSummary(&b, report)
	f.writeText(&b, report.Result.Text)

	return []byte(b.String()), nil
}

// writeHeader writes the box-drawn title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Sentiment Analysis"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSummary writes the result as a tree
func (f *terminalFormatter) writeSummary(b *strings.Builder, report *Report) {
	result := report.Result
	p := sentiment.PresentTag(result.Sentiment)

	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Result\n")

	items := []termfmt.TreeItem{
		{Label: "Sentiment", Value: f.colorize(labelWithIcon(p), p.Scheme)},
		{Label: "Confidence", Value: sentiment.FormatConfidence(result.Confidence)},
		{Label: "Score", Value: createConfidenceBar(result.Confidence, f.opts)},
	}
	if report.Source != "" {
		items = append(items, termfmt.TreeItem{Label: "Source", Value: report.Source})
	}
	if report.Backend != "" {
		items = append(items, termfmt.TreeItem{Label: "Backend", Value: report.Backend})
	}
	items = append(items, termfmt.TreeItem{Label: "Duration", Value: formatDuration(report.Duration), Last: true})

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeText writes the analyzed text, indented
func (f *terminalFormatter) writeText(b *strings.Builder, text string) {
	b.WriteString(emoji.GetEmoji("text") + " Text\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("  " + line + "\n")
	}
}

func (f *terminalFormatter) colorize(s string, scheme sentiment.Scheme) string {
	color, ok := schemeColors[scheme.Name]
	if !f.opts.Color || !ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(s)
}
