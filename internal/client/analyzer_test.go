package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/yildizm/sentiscope/internal/sentiment"
)

type requesterFunc func(ctx context.Context, text string) (*sentiment.AnalysisResult, error)

func (f requesterFunc) Analyze(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
	return f(ctx, text)
}

func TestSubmitEmptyTextMakesNoRequest(t *testing.T) {
	var calls int32
	a := NewAnalyzer(requesterFunc(func(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}), nil)

	for _, text := range []string{"", "   ", "\n\t "} {
		a.SetText(text)
		_, err := a.Submit(context.Background())
		if !IsValidationError(err) {
			t.Errorf("Submit(%q) error = %v, want validation error", text, err)
		}

		s := a.State()
		if s.Error != MsgEmptyText {
			t.Errorf("Error = %q, want %q", s.Error, MsgEmptyText)
		}
		if s.Loading {
			t.Error("Loading must stay false on validation failure")
		}
	}

	if calls != 0 {
		t.Errorf("expected no requests, got %d", calls)
	}
}

func TestSubmitSuccessTrimsText(t *testing.T) {
	var sent string
	a := NewAnalyzer(requesterFunc(func(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
		sent = text
		return &sentiment.AnalysisResult{Text: text, Sentiment: sentiment.TagNegative, Confidence: 0.5}, nil
	}), nil)

	a.SetText("  awful day \n")
	result, err := a.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if sent != "awful day" {
		t.Errorf("sent text = %q, want trimmed", sent)
	}
	if result.Sentiment != sentiment.TagNegative {
		t.Errorf("result = %+v", result)
	}

	s := a.State()
	if s.Loading || s.Error != "" || s.Result == nil {
		t.Fatalf("unexpected state %+v", s)
	}
	if s.Result.Label() != sentiment.Negative {
		t.Errorf("label = %v", s.Result.Label())
	}
	if s.Text != "  awful day \n" {
		t.Errorf("text buffer must be kept as typed, got %q", s.Text)
	}
}

func TestSubmitFailureClearsPreviousResult(t *testing.T) {
	fail := false
	a := NewAnalyzer(requesterFunc(func(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
		if fail {
			return nil, &RequestError{StatusCode: 500, Detail: "Error analyzing sentiment: down"}
		}
		return &sentiment.AnalysisResult{Text: text, Sentiment: sentiment.TagPositive, Confidence: 1}, nil
	}), nil)

	a.SetText("good")
	if _, err := a.Submit(context.Background()); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}

	fail = true
	if _, err := a.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	s := a.State()
	if s.Result != nil {
		t.Error("result must be cleared after a failed round")
	}
	if s.Error != "Error analyzing sentiment: down" {
		t.Errorf("Error = %q", s.Error)
	}
	if s.Loading {
		t.Error("Loading must be false after completion")
	}
}

func TestValidationKeepsPreviousResult(t *testing.T) {
	a := NewAnalyzer(requesterFunc(func(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
		return &sentiment.AnalysisResult{Text: text, Sentiment: sentiment.TagNeutral, Confidence: 1}, nil
	}), nil)

	a.SetText("fine")
	_, _ = a.Submit(context.Background())

	a.SetText(" ")
	_, _ = a.Submit(context.Background())

	s := a.State()
	if s.Result == nil || s.Error != MsgEmptyText {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestObserversSeeLoadingTransitions(t *testing.T) {
	a := NewAnalyzer(requesterFunc(func(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
		return &sentiment.AnalysisResult{Text: text, Sentiment: sentiment.TagPositive, Confidence: 0.9}, nil
	}), nil)

	var mu sync.Mutex
	var loading []bool
	unsubscribe := a.Subscribe(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		loading = append(loading, s.Loading)
		// observers run outside the lock
		_ = a.State()
	})

	a.SetText("great")
	_, _ = a.Submit(context.Background())
	unsubscribe()
	a.SetText("ignored")

	want := []bool{false, true, false}
	if len(loading) != len(want) {
		t.Fatalf("observer calls = %v, want %v", loading, want)
	}
	for i := range want {
		if loading[i] != want[i] {
			t.Errorf("call %d loading = %v, want %v", i, loading[i], want[i])
		}
	}
}

func TestSupersededCompletionIsDropped(t *testing.T) {
	a := NewAnalyzer(requesterFunc(func(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
		return nil, errors.New("unused")
	}), nil)

	a.SetText("first")
	first, err := a.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	a.SetText("second")
	second, err := a.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	if first.Context().Err() == nil {
		t.Error("first submission should be canceled by the second")
	}

	stale := &sentiment.AnalysisResult{Text: "first", Sentiment: sentiment.TagNegative}
	if a.Complete(first, stale, nil) {
		t.Error("stale completion must be rejected")
	}
	if s := a.State(); !s.Loading || s.Result != nil {
		t.Errorf("stale completion changed state: %+v", s)
	}

	fresh := &sentiment.AnalysisResult{Text: "second", Sentiment: sentiment.TagPositive, Confidence: 0.7}
	if !a.Complete(second, fresh, nil) {
		t.Fatal("current completion must be applied")
	}
	if s := a.State(); s.Loading || s.Result == nil || s.Result.Text != "second" {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestResetDropsInFlight(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	a.SetText("text")
	sub, _ := a.Begin(context.Background())

	a.Reset()
	if sub.Context().Err() == nil {
		t.Error("reset should cancel the in-flight submission")
	}
	if a.Complete(sub, &sentiment.AnalysisResult{}, nil) {
		t.Error("completion after reset must be dropped")
	}
	if s := a.State(); s != (State{}) {
		t.Errorf("state after reset = %+v", s)
	}
}

func TestSubmitClearsLoadingOnPanic(t *testing.T) {
	a := NewAnalyzer(requesterFunc(func(ctx context.Context, text string) (*sentiment.AnalysisResult, error) {
		panic("requester exploded")
	}), nil)
	a.SetText("boom")

	func() {
		defer func() { _ = recover() }()
		_, _ = a.Submit(context.Background())
	}()

	s := a.State()
	if s.Loading {
		t.Error("Loading must be cleared by the deferred finalizer")
	}
	if s.Error != MsgRequestFailed {
		t.Errorf("Error = %q", s.Error)
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{State{}, false},
		{State{Text: "  "}, false},
		{State{Text: "hi"}, true},
		{State{Text: "hi", Loading: true}, false},
	}
	for _, tt := range tests {
		if got := tt.state.CanSubmit(); got != tt.want {
			t.Errorf("CanSubmit(%+v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestAnalyzerAgainstHTTPBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Text cannot be empty"}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a := NewAnalyzer(c, nil)
	a.SetText("x")
	_, _ = a.Submit(context.Background())

	if got := a.State().Error; got != "Text cannot be empty" {
		t.Errorf("Error = %q", got)
	}
}
