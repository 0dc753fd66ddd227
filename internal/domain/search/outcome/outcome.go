package outcome

import (
	"time"

	"github.com/kailas-cloud/notedex/internal/domain/search/method"
	"github.com/kailas-cloud/notedex/internal/domain/search/result"
)

// Outcome is the session-level result of one completed search attempt.
type Outcome struct {
	success  bool
	results  []result.Result
	method   method.Method
	duration time.Duration
	err      string
}

// Success creates a successful outcome. Empty result sets are still
// successful; they carry method.NoResults.
func Success(results []result.Result, m method.Method, duration time.Duration) Outcome {
	return Outcome{success: true, results: results, method: m, duration: duration}
}

// Failure creates a failed outcome with a human-readable message.
func Failure(errMsg string, duration time.Duration) Outcome {
	return Outcome{success: false, method: method.Error, duration: duration, err: errMsg}
}

// Success reports whether the attempt completed without a fatal error.
func (o *Outcome) Success() bool { return o.success }

// Results returns the ranked fused results.
func (o *Outcome) Results() []result.Result { return o.results }

// Total returns the number of results.
func (o *Outcome) Total() int { return len(o.results) }

// Method returns the cascade tier that produced the outcome.
func (o *Outcome) Method() method.Method { return o.method }

// Duration returns how long the attempt took.
func (o *Outcome) Duration() time.Duration { return o.duration }

// Err returns the error message, empty unless Success is false.
func (o *Outcome) Err() string { return o.err }
