// Package web renders Analyzer state as a single-page HTML form.
package web

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"unicode/utf8"

	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/emoji"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

//go:embed templates/index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

const (
	pageTitle    = "Sentiment Analyzer"
	pageSubtitle = "Analyze the sentiment of any text using AI"
)

// View is the template data for the page. It is derived from client.State
// and nothing else.
type View struct {
	Title     string
	Subtitle  string
	Action    string
	Text      string
	CharCount int
	Loading   bool
	CanSubmit bool
	Error     string
	Result    *ResultView
}

// ResultView is the rendered analysis result.
type ResultView struct {
	Text       string
	Label      string
	Scheme     string
	Class      string
	Icon       string
	Glyph      string
	Confidence string
	Width      template.CSS
}

// NewView projects state onto the page. action is the form's POST target.
func NewView(state client.State, action string) View {
	v := View{
		Title:     pageTitle,
		Subtitle:  pageSubtitle,
		Action:    action,
		Text:      state.Text,
		CharCount: utf8.RuneCountInString(state.Text),
		Loading:   state.Loading,
		CanSubmit: state.CanSubmit(),
		Error:     state.Error,
	}

	if state.HasResult() {
		r := state.Result
		p := sentiment.PresentTag(r.Sentiment)
		v.Result = &ResultView{
			Text:       r.Text,
			Label:      p.Text,
			Scheme:     p.Scheme.Name,
			Class:      p.Scheme.Class,
			Icon:       p.Icon,
			Glyph:      emoji.ForIcon(p.Icon),
			Confidence: sentiment.FormatConfidence(r.Confidence),
			Width:      template.CSS(sentiment.ProgressWidth(r.Confidence)),
		}
	}

	return v
}

// Render writes the page for v.
func Render(w io.Writer, v View) error {
	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
