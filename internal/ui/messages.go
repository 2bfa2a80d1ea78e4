package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

// analysisDoneMsg carries the outcome of one submission back to the
// event loop.
type analysisDoneMsg struct {
	sub    *client.Submission
	result *sentiment.AnalysisResult
	err    error
}

type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// executeCommand performs the request of sub off the event loop
func executeCommand(a *client.Analyzer, sub *client.Submission) tea.Cmd {
	return func() tea.Msg {
		result, err := a.Execute(sub)
		return analysisDoneMsg{sub: sub, result: result, err: err}
	}
}
