package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

type requesterFunc func(ctx context.Context, text string) (*sentiment.AnalysisResult, error)

func (f requesterFunc) Analyze(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
	return f(ctx, text)
}

func newTestModel(r requesterFunc) (*Model, *client.Analyzer) {
	a := client.NewAnalyzer(r, nil)
	return NewModel(context.Background(), a), a
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// runSubmission executes the request command out of a submit batch and
// feeds its result back, ignoring spinner ticks.
func runSubmission(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected a batch of commands")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(analysisDoneMsg); ok {
			m.Update(done)
			return
		}
	}
	t.Fatal("no analysis command in batch")
}

func TestTypingEditsBuffer(t *testing.T) {
	m, a := newTestModel(nil)

	typeText(m, "héllo")
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	typeText(m, "x")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	if got := a.State().Text; got != "héllo \n" {
		t.Errorf("Text = %q", got)
	}
}

func TestSubmitSuccess(t *testing.T) {
	var sent string
	m, a := newTestModel(func(_ context.Context, text string) (*sentiment.AnalysisResult, error) {
		sent = text
		return &sentiment.AnalysisResult{Text: text, Sentiment: sentiment.TagPositive, Confidence: 0.873}, nil
	})

	typeText(m, "  great day  ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !a.State().Loading {
		t.Fatal("expected loading after enter")
	}
	if !strings.Contains(m.View(), "Analyzing...") {
		t.Error("view should show the spinner while loading")
	}

	typeText(m, "ignored")
	if a.State().Text != "  great day  " {
		t.Error("typing should be disabled while loading")
	}

	runSubmission(t, m, cmd)

	state := a.State()
	if state.Loading {
		t.Error("loading should be cleared")
	}
	if sent != "great day" {
		t.Errorf("sent %q, want trimmed text", sent)
	}

	view := m.View()
	for _, want := range []string{"Analysis Results", "Positive", "87.3% confidence"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmitFailureShowsDetail(t *testing.T) {
	m, a := newTestModel(func(context.Context, string) (*sentiment.AnalysisResult, error) {
		return nil, &client.RequestError{StatusCode: 500, Detail: "Error analyzing sentiment: boom"}
	})

	typeText(m, "text")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	runSubmission(t, m, cmd)

	if got := a.State().Error; got != "Error analyzing sentiment: boom" {
		t.Errorf("Error = %q", got)
	}
	if !strings.Contains(m.View(), "Error analyzing sentiment: boom") {
		t.Error("view should show the error")
	}
}

func TestSubmitIgnoredWhenEmpty(t *testing.T) {
	m, a := newTestModel(func(context.Context, string) (*sentiment.AnalysisResult, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	typeText(m, "   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("empty text should not start a submission")
	}
	if a.State().Loading {
		t.Error("should not be loading")
	}
}

func TestClearDropsInFlight(t *testing.T) {
	m, a := newTestModel(func(_ context.Context, text string) (*sentiment.AnalysisResult, error) {
		return &sentiment.AnalysisResult{Text: text, Sentiment: sentiment.TagNegative, Confidence: 1}, nil
	})

	typeText(m, "bad")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	runSubmission(t, m, cmd)

	state := a.State()
	if state.Text != "" || state.HasResult() || state.Loading {
		t.Errorf("state after clear = %+v", state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestTickStopsWhenIdle(t *testing.T) {
	m, _ := newTestModel(nil)

	if _, cmd := m.Update(tickMsg{}); cmd != nil {
		t.Error("idle model should not keep ticking")
	}
}

func TestRenderEmptyState(t *testing.T) {
	view := Render(client.State{}, GetStyles(), 0, 80)

	if !strings.Contains(view, placeholder) {
		t.Error("expected placeholder")
	}
	if !strings.Contains(view, "0 characters") {
		t.Error("expected character count")
	}
	if strings.Contains(view, "Analysis Results") {
		t.Error("no result expected")
	}
}

func TestRenderUnknownLabel(t *testing.T) {
	view := Render(client.State{
		Text:   "hmm",
		Result: &sentiment.AnalysisResult{Text: "hmm", Sentiment: "<MIXED>", Confidence: 1.2},
	}, GetStyles(), 0, 80)

	if !strings.Contains(view, "Unknown") {
		t.Error("expected Unknown label")
	}
	if !strings.Contains(view, "120.0% confidence") {
		t.Error("confidence text should not be clamped")
	}
	if !strings.Contains(view, strings.Repeat("█", barWidth)) {
		t.Error("bar should be full")
	}
}

func TestSchemeColor(t *testing.T) {
	theme := GetTheme()

	if theme.SchemeColor(sentiment.SchemeGreen) != theme.Positive {
		t.Error("green should map to Positive")
	}
	if theme.SchemeColor(sentiment.SchemeRed) != theme.Negative {
		t.Error("red should map to Negative")
	}
	if theme.SchemeColor(sentiment.SchemeGray) != theme.Neutral {
		t.Error("gray should map to Neutral")
	}
	if theme.SchemeColor(sentiment.SchemeDefault) != theme.Secondary {
		t.Error("default should map to Secondary")
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(&DefaultTheme)

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("SetThemeByName(%q) = false", name)
		}
		if GetTheme().Name != name {
			t.Errorf("active theme = %q, want %q", GetTheme().Name, name)
		}
	}
	if SetThemeByName("neon") {
		t.Error("unknown theme should be rejected")
	}
}

var errTest = errors.New("test")

func TestRequestErrorWithoutDetail(t *testing.T) {
	m, a := newTestModel(func(context.Context, string) (*sentiment.AnalysisResult, error) {
		return nil, &client.RequestError{Cause: errTest}
	})

	typeText(m, "hello")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runSubmission(t, m, cmd)

	if got := a.State().Error; got != client.MsgRequestFailed {
		t.Errorf("Error = %q, want %q", got, client.MsgRequestFailed)
	}
}
