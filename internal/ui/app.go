package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/emoji"
	"github.com/yildizm/sentiscope/internal/sentiment"
	"github.com/yildizm/sentiscope/internal/ui/components"
)

const (
	placeholder = "Enter your text here to analyze its sentiment..."
	barWidth    = 30
)

// Model is the bubbletea model for the analyzer. Every analyzer mutation
// happens on the event loop; only the HTTP call runs in a command.
type Model struct {
	analyzer *client.Analyzer
	ctx      context.Context
	styles   *Styles

	width        int
	height       int
	spinnerFrame int
	quitting     bool
}

// NewModel creates a model over analyzer. ctx bounds every submission.
func NewModel(ctx context.Context, analyzer *client.Analyzer) *Model {
	return &Model{
		analyzer: analyzer,
		ctx:      ctx,
		styles:   GetStyles(),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case analysisDoneMsg:
		m.analyzer.Complete(msg.sub, msg.result, msg.err)
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.quitting = true
		m.analyzer.Reset()
		return m, tea.Quit
	case "enter", "ctrl+s":
		return m, m.submit()
	case "ctrl+l":
		m.analyzer.Reset()
		return m, nil
	}

	state := m.analyzer.State()
	if state.Loading {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.analyzer.SetText(state.Text + string(msg.Runes))
	case tea.KeySpace:
		m.analyzer.SetText(state.Text + " ")
	case tea.KeyTab:
		m.analyzer.SetText(state.Text + "\t")
	case tea.KeyEnter, tea.KeyCtrlJ:
		// alt+enter and ctrl+j insert a line break
		m.analyzer.SetText(state.Text + "\n")
	case tea.KeyBackspace:
		m.analyzer.SetText(dropLastRune(state.Text))
	}

	return m, nil
}

// submit starts a submission when the analyzer accepts one
func (m *Model) submit() tea.Cmd {
	if !m.analyzer.State().CanSubmit() {
		return nil
	}

	sub, err := m.analyzer.Begin(m.ctx)
	if err != nil {
		return nil
	}

	m.spinnerFrame = 0
	return tea.Batch(executeCommand(m.analyzer, sub), tick())
}

// handleTick advances the spinner while a request is in flight
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.analyzer.State().Loading {
		return m, nil
	}
	m.spinnerFrame = (m.spinnerFrame + 1) % len(components.SpinnerFrames)
	return m, tick()
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return Render(m.analyzer.State(), m.styles, m.spinnerFrame, m.width)
}

// Render draws state. It is a pure function of its arguments.
func Render(state client.State, styles *Styles, frame, width int) string {
	boxWidth := 72
	if width > 0 && width-4 < boxWidth {
		boxWidth = max(width-4, 20)
	}

	sections := []string{
		renderHeader(styles),
		renderInput(state, styles, frame, boxWidth),
	}

	if state.Error != "" {
		sections = append(sections, styles.ErrorBox.Width(boxWidth).Render(
			styles.Error.Render(emoji.GetEmoji("error")+" "+state.Error)))
	}

	if state.HasResult() {
		sections = append(sections, renderResult(state.Result, styles, boxWidth))
	}

	sections = append(sections, styles.Muted.Render(
		"enter analyze • alt+enter newline • ctrl+l clear • esc quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(styles *Styles) string {
	title := styles.Title.Render(emoji.GetEmoji("brain") + " Sentiment Analyzer")
	subtitle := styles.Muted.Render("Analyze the sentiment of any text using AI")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func renderInput(state client.State, styles *Styles, frame, boxWidth int) string {
	body := styles.Body.Render(state.Text)
	if state.Text == "" {
		body = styles.Muted.Render(placeholder)
	}
	input := styles.Input.Width(boxWidth).Render(body)

	count := styles.Muted.Render(fmt.Sprintf("%d characters", utf8.RuneCountInString(state.Text)))

	var button string
	switch {
	case state.Loading:
		button = components.Spinner{Style: styles.Header, Label: "Analyzing..."}.Render(frame)
	case state.CanSubmit():
		button = styles.Header.Render("[enter] Analyze Sentiment")
	default:
		button = styles.Muted.Render("[enter] Analyze Sentiment")
	}

	gap := max(boxWidth-lipgloss.Width(count)-lipgloss.Width(button), 1)
	status := count + strings.Repeat(" ", gap) + button

	return lipgloss.JoinVertical(lipgloss.Left, input, status, "")
}

func renderResult(result *sentiment.AnalysisResult, styles *Styles, boxWidth int) string {
	p := sentiment.PresentTag(result.Sentiment)

	label := p.Text
	if p.HasIcon() {
		label = emoji.ForIcon(p.Icon) + " " + label
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Header.Render("Analysis Results"),
		"",
		styles.Muted.Render("Original Text"),
		styles.Body.Render(result.Text),
		"",
		styles.Muted.Render("Sentiment"),
		styles.Label(p.Scheme).Render(label),
		"",
		styles.Muted.Render("Confidence"),
		renderBar(result.Confidence, styles),
		styles.Muted.Render(sentiment.FormatConfidence(result.Confidence)),
	)

	return styles.Box.Width(boxWidth).Render(content)
}

// renderBar draws a confidence bar clamped to [0,1].
func renderBar(confidence float64, styles *Styles) string {
	return components.NewProgressBar(barWidth, styles.Progress, styles.Track).Render(sentiment.Fill(confidence))
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// Run starts the interactive UI and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, analyzer *client.Analyzer) error {
	model := NewModel(ctx, analyzer)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
