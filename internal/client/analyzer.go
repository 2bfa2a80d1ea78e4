package client

import (
	"context"
	"strings"
	"sync"

	"github.com/yildizm/sentiscope/internal/logger"
	"github.com/yildizm/sentiscope/internal/sentiment"
)

// State is a snapshot of the analyzer. At most one of Result and Error is
// set once a submission has completed.
type State struct {
	Text    string
	Result  *sentiment.AnalysisResult
	Loading bool
	Error   string
}

// CanSubmit reports whether a submit control should be enabled.
func (s State) CanSubmit() bool {
	return !s.Loading && strings.TrimSpace(s.Text) != ""
}

// HasResult reports whether a result is ready to render.
func (s State) HasResult() bool {
	return s.Result != nil
}

// Submission is one in-flight request started by Begin.
type Submission struct {
	seq    uint64
	text   string
	ctx    context.Context
	cancel context.CancelFunc
}

// Text is the trimmed text being analyzed.
func (s *Submission) Text() string { return s.text }

// Context is canceled when a newer submission supersedes this one.
func (s *Submission) Context() context.Context { return s.ctx }

// Analyzer owns the text buffer, the last result, the loading flag and the
// error slot. Mutations go through its methods; every mutation notifies the
// subscribers with a fresh snapshot.
type Analyzer struct {
	requester Requester
	log       *logger.Logger

	mu        sync.Mutex
	state     State
	seq       uint64
	cancel    context.CancelFunc
	observers map[int]func(State)
	nextObs   int
}

// NewAnalyzer creates an analyzer that sends requests through r.
func NewAnalyzer(r Requester, log *logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Discard()
	}
	return &Analyzer{
		requester: r,
		log:       log,
		observers: make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (a *Analyzer) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function removes it.
func (a *Analyzer) Subscribe(fn func(State)) func() {
	a.mu.Lock()
	id := a.nextObs
	a.nextObs++
	a.observers[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.observers, id)
		a.mu.Unlock()
	}
}

// SetText replaces the text buffer.
func (a *Analyzer) SetText(text string) {
	a.mutate(func(s *State) {
		s.Text = text
	})
}

// Begin validates the buffer and moves to the requesting state. Any
// submission still in flight is canceled and its completion will be
// ignored. An empty buffer sets the validation message and returns a
// *ValidationError; the previous result is left in place.
func (a *Analyzer) Begin(ctx context.Context) (*Submission, error) {
	a.mu.Lock()
	text := strings.TrimSpace(a.state.Text)
	if text == "" {
		a.state.Error = MsgEmptyText
		snap, observers := a.snapshotLocked(), a.observersLocked()
		a.mu.Unlock()
		notify(observers, snap)
		return nil, newValidationError()
	}

	if a.cancel != nil {
		a.log.Debug("superseding submission %d", a.seq)
		a.cancel()
	}

	a.seq++
	subCtx, cancel := context.WithCancel(ctx)
	sub := &Submission{seq: a.seq, text: text, ctx: subCtx, cancel: cancel}
	a.cancel = cancel

	a.state.Loading = true
	a.state.Error = ""
	a.state.Result = nil

	snap, observers := a.snapshotLocked(), a.observersLocked()
	a.mu.Unlock()

	a.log.DebugWithFields("submission started", []logger.Field{
		logger.F("seq", sub.seq),
		logger.F("chars", len([]rune(text))),
	})
	notify(observers, snap)
	return sub, nil
}

// Execute performs the request for sub. It does not touch state and is
// safe to run off the goroutine that owns the analyzer.
func (a *Analyzer) Execute(sub *Submission) (*sentiment.AnalysisResult, error) {
	return a.requester.Analyze(sub.ctx, sub.text)
}

// Complete applies the outcome of sub. It reports false, and changes
// nothing, when sub has been superseded or reset.
func (a *Analyzer) Complete(sub *Submission, result *sentiment.AnalysisResult, err error) bool {
	if sub == nil {
		return false
	}

	a.mu.Lock()
	if sub.seq != a.seq || !a.state.Loading {
		a.mu.Unlock()
		sub.cancel()
		a.log.Debug("dropping stale completion for submission %d", sub.seq)
		return false
	}

	sub.cancel()
	a.cancel = nil
	a.state.Loading = false

	switch {
	case err != nil:
		a.state.Result = nil
		a.state.Error = UserMessage(err)
	case result == nil:
		a.state.Error = MsgRequestFailed
	default:
		r := *result
		a.state.Result = &r
	}

	snap, observers := a.snapshotLocked(), a.observersLocked()
	a.mu.Unlock()

	if err != nil {
		a.log.WarnWithFields("analysis failed", []logger.Field{
			logger.F("seq", sub.seq),
			logger.Error(err),
		})
	}
	notify(observers, snap)
	return true
}

// Submit runs one full round: Begin, one request, Complete. The loading
// flag is cleared even if the requester panics.
func (a *Analyzer) Submit(ctx context.Context) (result *sentiment.AnalysisResult, err error) {
	sub, err := a.Begin(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		a.Complete(sub, result, err)
	}()

	return a.Execute(sub)
}

// Reset cancels anything in flight and clears the state, text included.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.seq++
	a.state = State{}
	snap, observers := a.snapshotLocked(), a.observersLocked()
	a.mu.Unlock()

	notify(observers, snap)
}

func (a *Analyzer) mutate(fn func(*State)) {
	a.mu.Lock()
	fn(&a.state)
	snap, observers := a.snapshotLocked(), a.observersLocked()
	a.mu.Unlock()

	notify(observers, snap)
}

func (a *Analyzer) snapshotLocked() State {
	s := a.state
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}

func (a *Analyzer) observersLocked() []func(State) {
	if len(a.observers) == 0 {
		return nil
	}
	out := make([]func(State), 0, len(a.observers))
	for i := 0; i < a.nextObs; i++ {
		if fn, ok := a.observers[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(observers []func(State), s State) {
	for _, fn := range observers {
		fn(s)
	}
}
