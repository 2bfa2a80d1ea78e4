package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yildizm/sentiscope/internal/ai"
	"github.com/yildizm/sentiscope/internal/classifier"
	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/logger"
	"github.com/yildizm/sentiscope/internal/sentiment"
	"github.com/yildizm/sentiscope/internal/web"
)

const (
	bannerMessage   = "Sentiment Analyzer API is running"
	detailEmptyText = "Text cannot be empty"
)

type analyzeBody struct {
	Text *string `json:"text"`
}

// handleRoot serves the banner to API clients and the form to browsers.
func (s *Server) handleRoot(c *gin.Context) {
	if wantsJSON(c.Request) {
		c.JSON(http.StatusOK, gin.H{"message": bannerMessage})
		return
	}
	s.renderForm(c, client.State{})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, sentiment.HealthResponse{Status: "healthy", Service: Service})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var body analyzeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.metrics.AnalysisFailures.WithLabelValues("malformed").Inc()
		s.respondError(c, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if body.Text == nil {
		s.metrics.AnalysisFailures.WithLabelValues("malformed").Inc()
		s.respondError(c, http.StatusUnprocessableEntity, "Invalid request body: field 'text' is required")
		return
	}

	ctx := classifier.WithRequestID(c.Request.Context(), RequestIDFromContext(c))
	result, apiErr := s.analyze(ctx, *body.Text)
	if apiErr != nil {
		s.respondError(c, apiErr.status, apiErr.detail)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleForm runs a fresh analyzer for the submitted form and renders its
// final state.
func (s *Server) handleForm(c *gin.Context) {
	analyzer := client.NewAnalyzer(s.formRequester, s.log)
	analyzer.SetText(c.PostForm("text"))

	ctx := classifier.WithRequestID(c.Request.Context(), RequestIDFromContext(c))
	// The outcome lands in the analyzer state, which is what gets rendered.
	_, _ = analyzer.Submit(ctx)

	s.renderForm(c, analyzer.State())
}

func (s *Server) renderForm(c *gin.Context, state client.State) {
	var buf bytes.Buffer
	if err := web.Render(&buf, web.NewView(state, "/")); err != nil {
		s.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// analyze validates text and classifies it. It backs both POST /analyze
// and the in-process form requester.
func (s *Server) analyze(ctx context.Context, text string) (*sentiment.AnalysisResult, *apiError) {
	if strings.TrimSpace(text) == "" {
		s.metrics.AnalysisFailures.WithLabelValues("empty").Inc()
		return nil, &apiError{status: http.StatusBadRequest, detail: detailEmptyText}
	}

	if limit := s.cfg.MaxTextLength; limit > 0 && utf8.RuneCountInString(text) > limit {
		s.metrics.AnalysisFailures.WithLabelValues("too_long").Inc()
		return nil, &apiError{
			status: http.StatusRequestEntityTooLarge,
			detail: fmt.Sprintf("Text exceeds maximum length of %d characters", limit),
		}
	}

	name := s.classifier.Name()
	start := time.Now()
	classification, err := s.classify(ctx, text)
	elapsed := time.Since(start)
	s.metrics.AnalysisDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		reason := ai.Reason(err)
		s.metrics.AnalysisFailures.WithLabelValues("classifier").Inc()
		s.metrics.ClassifierErrors.WithLabelValues(name, reason).Inc()
		s.log.WarnWithFields("classification failed", []logger.Field{
			logger.F("classifier", name),
			logger.F("reason", reason),
			logger.F("retryable", ai.IsRetryableError(err)),
			logger.Error(err),
		})
		return nil, &apiError{
			status: http.StatusInternalServerError,
			detail: "Error analyzing sentiment: " + err.Error(),
			cause:  err,
		}
	}

	result := classification.Result(text)
	s.metrics.Analyses.WithLabelValues(name, result.Sentiment).Inc()
	s.log.DebugWithFields("analysis complete", []logger.Field{
		logger.F("classifier", name),
		logger.F("sentiment", result.Sentiment),
		logger.F("raw", classification.Raw),
		logger.Duration(elapsed),
	})

	return result, nil
}

func (s *Server) classify(ctx context.Context, text string) (*classifier.Classification, error) {
	s.metrics.AnalysesActive.Inc()
	defer s.metrics.AnalysesActive.Dec()
	return s.classifier.Classify(ctx, text)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// localRequester lets the web form use the server's own analyze path
// without a loopback HTTP call.
type localRequester struct {
	server *Server
}

func (l *localRequester) Analyze(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
	result, apiErr := l.server.analyze(ctx, text)
	if apiErr != nil {
		return nil, &client.RequestError{StatusCode: apiErr.status, Detail: apiErr.detail, Cause: apiErr.cause}
	}
	return result, nil
}
