// Package clients wraps the external capability providers behind the
// adaptation pipeline. Every provider call returns an explicit Result
// instead of a bare error, so the orchestrator can express its fallback
// chain as an ordered list of strategies rather than nested error handling.
package clients

import (
	"context"
	"errors"
	"net"
)

// Outcome classifies a provider call
type Outcome int

const (
	// OutcomeSuccess means the provider returned usable text
	OutcomeSuccess Outcome = iota
	// OutcomeTimeout means the call exceeded its stage budget
	OutcomeTimeout
	// OutcomeError means a transport, status or parse failure
	OutcomeError
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// Result is the outcome of one provider call
type Result struct {
	Text    string
	Outcome Outcome
	Err     error
}

// Usable reports whether the result carries adoptable text
func (r Result) Usable() bool {
	return r.Outcome == OutcomeSuccess && r.Text != ""
}

func success(text string) Result {
	return Result{Text: text, Outcome: OutcomeSuccess}
}

func failure(err error) Result {
	if isTimeout(err) {
		return Result{Outcome: OutcomeTimeout, Err: err}
	}
	return Result{Outcome: OutcomeError, Err: err}
}

// isTimeout reports whether an error is a deadline or network timeout
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
