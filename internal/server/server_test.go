package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/sentiscope/internal/ai"
	"github.com/yildizm/sentiscope/internal/classifier"
	"github.com/yildizm/sentiscope/internal/client"
	"github.com/yildizm/sentiscope/internal/config"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type fakeClassifier struct {
	mu        sync.Mutex
	label     sentiment.Label
	err       error
	panicMsg  string
	texts     []string
	requestID string
}

func (f *fakeClassifier) Name() string { return "fake" }

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*classifier.Classification, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}

	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.requestID = classifier.RequestID(ctx)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &classifier.Classification{Label: f.label, Confidence: 1.0, Raw: f.label.Tag()}, nil
}

func testConfig() config.ServerConfig {
	cfg := config.DefaultConfig().Server
	cfg.MaxTextLength = 20
	return cfg
}

func newTestServer(c classifier.Classifier, opts ...Option) *Server {
	return New(testConfig(), c, nil, opts...)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body sentiment.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestRootBanner(t *testing.T) {
	s := newTestServer(&fakeClassifier{label: sentiment.Positive})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	rec := do(t, s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Sentiment Analyzer API is running"}`, rec.Body.String())
}

func TestRootForm(t *testing.T) {
	s := newTestServer(&fakeClassifier{label: sentiment.Positive})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := do(t, s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Enter Text to Analyze")
	assert.NotContains(t, rec.Body.String(), `id="result"`)
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeClassifier{})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"sentiment-analyzer"}`, rec.Body.String())
}

func TestAnalyzeSuccess(t *testing.T) {
	fake := &fakeClassifier{label: sentiment.Negative}
	s := newTestServer(fake)

	rec := do(t, s, postJSON("/analyze", `{"text":"  so bad  "}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var result sentiment.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, sentiment.AnalysisResult{Text: "  so bad  ", Sentiment: "<NEGATIVE>", Confidence: 1.0}, result)
	assert.Equal(t, []string{"  so bad  "}, fake.texts)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		classErr   error
		wantStatus int
		wantDetail string
	}{
		{"empty text", `{"text":""}`, nil, http.StatusBadRequest, "Text cannot be empty"},
		{"whitespace text", `{"text":"  \n\t "}`, nil, http.StatusBadRequest, "Text cannot be empty"},
		{"malformed json", `{"text":`, nil, http.StatusUnprocessableEntity, "Invalid request body"},
		{"missing field", `{}`, nil, http.StatusUnprocessableEntity, "field 'text' is required"},
		{"wrong type", `{"text":42}`, nil, http.StatusUnprocessableEntity, "Invalid request body"},
		{"too long", `{"text":"` + strings.Repeat("é", 21) + `"}`, nil, http.StatusRequestEntityTooLarge, "Text exceeds maximum length of 20 characters"},
		{"classifier failure", `{"text":"hello"}`, errors.New("upstream timeout"), http.StatusInternalServerError, "Error analyzing sentiment: upstream timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeClassifier{label: sentiment.Positive, err: tt.classErr})

			rec := do(t, s, postJSON("/analyze", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, decodeDetail(t, rec), tt.wantDetail)
		})
	}
}

func TestAnalyzeAtMaxLength(t *testing.T) {
	s := newTestServer(&fakeClassifier{label: sentiment.Neutral})

	rec := do(t, s, postJSON("/analyze", `{"text":"`+strings.Repeat("é", 20)+`"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecovery(t *testing.T) {
	s := newTestServer(&fakeClassifier{panicMsg: "boom"})

	rec := do(t, s, postJSON("/analyze", `{"text":"hello"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeDetail(t, rec))
}

func TestRequestID(t *testing.T) {
	fake := &fakeClassifier{label: sentiment.Positive}
	s := newTestServer(fake)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	generated := rec.Header().Get("X-Request-Id")
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = do(t, s, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))

	req = postJSON("/analyze", `{"text":"hi"}`)
	req.Header.Set("X-Request-Id", "req-7")
	do(t, s, req)
	assert.Equal(t, "req-7", fake.requestID)
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakeClassifier{label: sentiment.Positive})

	t.Run("allowed origin", func(t *testing.T) {
		req := postJSON("/analyze", `{"text":"hi"}`)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := do(t, s, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := postJSON("/analyze", `{"text":"hi"}`)
		req.Header.Set("Origin", "http://evil.example")
		rec := do(t, s, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
		req.Header.Set("Origin", "http://127.0.0.1:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := do(t, s, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://127.0.0.1:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(&fakeClassifier{label: sentiment.Positive})

	do(t, s, postJSON("/analyze", `{"text":"great"}`))
	do(t, s, postJSON("/analyze", `{"text":" "}`))

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `sentiscope_analyses_total{classifier="fake",sentiment="<POSITIVE>"} 1`)
	assert.Contains(t, body, `sentiscope_analysis_failures_total{reason="empty"} 1`)
	assert.Contains(t, body, `sentiscope_http_requests_total{method="POST",route="/analyze",status="400"} 1`)
}

func TestClassifierErrorMetrics(t *testing.T) {
	limited := fmt.Errorf("openai completion failed: %w", ai.NewRateLimitError("openai", 5, "requests"))
	s := newTestServer(&fakeClassifier{err: limited})

	rec := do(t, s, postJSON("/analyze", `{"text":"great"}`))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `sentiscope_classifier_errors_total{classifier="fake",reason="rate_limit"} 1`)
	assert.Contains(t, body, `sentiscope_analysis_failures_total{reason="classifier"} 1`)
}

func formRequest(text string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"text": {text}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFormSubmit(t *testing.T) {
	s := newTestServer(&fakeClassifier{label: sentiment.Positive})

	rec := do(t, s, formRequest("I love it"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="result"`)
	assert.Contains(t, body, ">Positive</span>")
	assert.Contains(t, body, "100.0% confidence")
	assert.Contains(t, body, ">\nI love it</textarea>")
}

func TestFormSubmitEmpty(t *testing.T) {
	fake := &fakeClassifier{label: sentiment.Positive}
	s := newTestServer(fake)

	rec := do(t, s, formRequest("   "))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), client.MsgEmptyText)
	assert.Empty(t, fake.texts, "validation must not reach the classifier")
}

func TestFormSubmitClassifierError(t *testing.T) {
	s := newTestServer(&fakeClassifier{err: errors.New("quota exceeded")})

	rec := do(t, s, formRequest("hello"))

	assert.Contains(t, rec.Body.String(), "Error analyzing sentiment: quota exceeded")
	assert.NotContains(t, rec.Body.String(), `id="result"`)
}

func TestFormWithRemoteBackend(t *testing.T) {
	backend := httptest.NewServer(newTestServer(&fakeClassifier{label: sentiment.Neutral}).Handler())
	defer backend.Close()

	c, err := client.New(client.Config{BaseURL: backend.URL})
	require.NoError(t, err)

	frontend := newTestServer(&fakeClassifier{err: errors.New("should not be called")}, WithFormRequester(c))
	rec := do(t, frontend, formRequest("the meeting is at noon"))

	assert.Contains(t, rec.Body.String(), ">Neutral</span>")
}

func TestClientAgainstServer(t *testing.T) {
	backend := httptest.NewServer(newTestServer(&fakeClassifier{label: sentiment.Positive}).Handler())
	defer backend.Close()

	c, err := client.New(client.Config{BaseURL: backend.URL})
	require.NoError(t, err)

	result, err := c.Analyze(context.Background(), "nice")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Positive, result.Label())

	_, err = c.Analyze(context.Background(), "   ")
	var reqErr *client.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	assert.Equal(t, "Text cannot be empty", reqErr.Message())
}

func TestServeGracefulShutdown(t *testing.T) {
	s := newTestServer(&fakeClassifier{label: sentiment.Positive})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
