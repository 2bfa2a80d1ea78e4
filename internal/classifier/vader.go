package classifier

import (
	"context"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

// Compound score thresholds separating polar labels from neutral.
const (
	PositiveThreshold = 0.20
	NegativeThreshold = -0.20
)

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
)

// VADER classifies text offline with the VADER lexicon.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER creates a lexicon classifier.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Name returns "vader".
func (c *VADER) Name() string {
	return "vader"
}

// Classify scores text and maps the compound score onto a label.
func (c *VADER) Classify(ctx context.Context, text string) (*Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compound := c.analyzer.PolarityScores(PlainText(text)).Compound
	label := LabelForCompound(compound)

	confidence := math.Abs(compound)
	if label == sentiment.Neutral {
		confidence = 1 - confidence
	}

	return &Classification{
		Label:      label,
		Confidence: confidence,
		Raw:        strconv.FormatFloat(compound, 'f', 4, 64),
	}, nil
}

// LabelForCompound applies the VADER thresholds.
func LabelForCompound(compound float64) sentiment.Label {
	switch {
	case compound >= PositiveThreshold:
		return sentiment.Positive
	case compound <= NegativeThreshold:
		return sentiment.Negative
	default:
		return sentiment.Neutral
	}
}

// PlainText flattens markdown and drops links so the lexicon only sees words.
func PlainText(input string) string {
	rendered := blackfriday.Run([]byte(input),
		blackfriday.WithNoExtensions(),
		blackfriday.WithRenderer(plainRenderer()),
	)
	plain := html.UnescapeString(htmlTag.ReplaceAllString(string(rendered), " "))
	plain = strings.Join(strings.Fields(plain), " ")
	return RemoveLinks(plain)
}

// plainRenderer is an HTML renderer without smartypants, so apostrophes
// and dashes reach the lexicon unchanged.
func plainRenderer() blackfriday.Renderer {
	return blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{})
}

// RemoveLinks keeps markdown link text and strips bare URLs.
func RemoveLinks(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")
	return strings.TrimSpace(bareURL.ReplaceAllString(input, ""))
}
