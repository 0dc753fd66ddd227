// Package session provides the client-facing search session: debounced
// submission, cancellation of superseded attempts, and a published
// snapshot of the latest outcome.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain/search/outcome"
	"github.com/kailas-cloud/notedex/internal/domain/search/query"
	"github.com/kailas-cloud/notedex/internal/metrics"
)

// DefaultDebounce is the quiescence window for Submit.
const DefaultDebounce = 300 * time.Millisecond

// Weight presets for the specialized entry points. Same cascade, only
// the fusion weights differ.
const (
	keywordLexicalWeight  = 0.8
	keywordVectorWeight   = 0.2
	semanticLexicalWeight = 0.2
	semanticVectorWeight  = 0.8
)

// Searcher runs one search attempt. Implemented by usecase/search.Service.
type Searcher interface {
	Search(ctx context.Context, q query.Query) outcome.Outcome
}

// Options carries per-submission overrides.
type Options struct {
	ScopeDocumentID string
	Limit           int
	LexicalWeight   float64
	VectorWeight    float64
}

// State is the published snapshot consumers poll or render from.
// QueryText is the text that produced Outcome, so callers can verify
// the result still matches what is on screen.
type State struct {
	Searching bool
	QueryText string
	Outcome   outcome.Outcome
}

// Controller debounces rapid submissions, cancels superseded in-flight
// attempts, and publishes only the most recently submitted attempt's
// outcome. Superseded attempts are discarded silently, even when their
// store calls complete: publication compares the attempt's generation
// against the controller's current one under the lock.
type Controller struct {
	searcher Searcher
	debounce time.Duration
	logger   *zap.Logger

	mu         sync.Mutex
	timer      *time.Timer
	cancel     context.CancelFunc
	generation uint64
	state      State
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithLogger sets the controller logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a session controller.
func New(searcher Searcher, opts ...Option) *Controller {
	c := &Controller{
		searcher: searcher,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit schedules a debounced search with default options. Each call
// resets the timer; only the last call within the window executes.
func (c *Controller) Submit(text string) {
	c.SubmitWithOptions(text, Options{})
}

// SubmitWithOptions schedules a debounced search.
func (c *Controller) SubmitWithOptions(text string, opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		if c.timer.Stop() {
			metrics.SessionCoalescedTotal.Inc()
		}
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.SubmitNow(text, opts)
	})
}

// SubmitNow bypasses debouncing and starts an attempt immediately,
// cancelling any pending timer and any attempt still in flight.
func (c *Controller) SubmitNow(text string, opts Options) {
	c.mu.Lock()

	c.stopTimerLocked()
	c.cancelAttemptLocked()

	c.generation++
	gen := c.generation
	attemptID := uuid.NewString()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.state.Searching = true
	c.state.QueryText = text
	c.mu.Unlock()

	go c.run(ctx, gen, attemptID, text, opts)
}

// SearchKeywords is SubmitNow with keyword-leaning fusion weights.
func (c *Controller) SearchKeywords(text string, opts Options) {
	opts.LexicalWeight = keywordLexicalWeight
	opts.VectorWeight = keywordVectorWeight
	c.SubmitNow(text, opts)
}

// SearchSemantic is SubmitNow with semantic-leaning fusion weights.
func (c *Controller) SearchSemantic(text string, opts Options) {
	opts.LexicalWeight = semanticLexicalWeight
	opts.VectorWeight = semanticVectorWeight
	c.SubmitNow(text, opts)
}

// Cancel aborts pending and in-flight work and clears published state.
// In-flight attempts that later complete are suppressed.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.cancelAttemptLocked()
	c.generation++
	c.state = State{}
}

// Snapshot returns the current published state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) run(ctx context.Context, gen uint64, attemptID, text string, opts Options) {
	q, err := query.New(text, opts.ScopeDocumentID, opts.Limit, opts.LexicalWeight, opts.VectorWeight)

	var out outcome.Outcome
	if err != nil {
		out = outcome.Failure(err.Error(), 0)
	} else {
		out = c.searcher.Search(ctx, q)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || ctx.Err() != nil {
		metrics.SessionSuppressedTotal.Inc()
		c.logger.Debug("suppressing stale search outcome",
			zap.String("attempt_id", attemptID),
			zap.String("query", text),
		)
		return
	}

	c.state = State{Searching: false, QueryText: text, Outcome: out}
	c.logger.Debug("published search outcome",
		zap.String("attempt_id", attemptID),
		zap.String("method", out.Method().String()),
		zap.Int("total", out.Total()),
		zap.Duration("duration", out.Duration()),
	)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) cancelAttemptLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
