package check

import (
	"time"

	"digital.vasic.careerquest/pkg/assertion"
)

// Status constants for check execution outcomes.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusPassed   = "passed"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
	StatusTimedOut = "timed_out"
	StatusError    = "error"
)

// Result captures the complete outcome of a check execution.
type Result struct {
	// CheckID is the unique identifier of the check.
	CheckID ID `json:"check_id"`

	// CheckName is the human-readable name.
	CheckName string `json:"check_name"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// StartTime is when execution began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when execution finished.
	EndTime time.Time `json:"end_time"`

	// Duration is the wall-clock execution time.
	Duration time.Duration `json:"duration"`

	// Assertions holds the evaluated assertion results.
	Assertions []assertion.Result `json:"assertions"`

	// Outputs holds named string outputs produced by the check
	// (e.g., the subject user ID, the recommended career).
	Outputs map[string]string `json:"outputs"`

	// Error holds the failure detail when the check did not
	// complete normally.
	Error string `json:"error,omitempty"`
}

// AllPassed reports whether every assertion in the result passed.
func (r *Result) AllPassed() bool {
	for _, a := range r.Assertions {
		if !a.Passed {
			return false
		}
	}
	return true
}

// IsFinal reports whether the status is a terminal state.
func (r *Result) IsFinal() bool {
	switch r.Status {
	case StatusPassed, StatusFailed, StatusSkipped,
		StatusTimedOut, StatusError:
		return true
	}
	return false
}

// FailureDetail returns a one-line explanation of why the check
// did not pass: the execution error if set, otherwise the first
// failing assertion message.
func (r *Result) FailureDetail() string {
	if r.Error != "" {
		return r.Error
	}
	for _, a := range r.Assertions {
		if !a.Passed {
			return a.Target + ": " + a.Message
		}
	}
	return ""
}
