package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"digital.vasic.careerquest/pkg/assertion"
)

func TestResult_AllPassed(t *testing.T) {
	r := &Result{
		Assertions: []assertion.Result{
			{Target: "a", Passed: true},
			{Target: "b", Passed: true},
		},
	}
	assert.True(t, r.AllPassed())

	r.Assertions = append(r.Assertions, assertion.Result{
		Target: "c", Passed: false,
	})
	assert.False(t, r.AllPassed())
}

func TestResult_AllPassed_NoAssertions(t *testing.T) {
	r := &Result{}
	assert.True(t, r.AllPassed())
}

func TestResult_IsFinal(t *testing.T) {
	finals := []string{
		StatusPassed, StatusFailed, StatusSkipped,
		StatusTimedOut, StatusError,
	}
	for _, status := range finals {
		r := &Result{Status: status}
		assert.True(t, r.IsFinal(), status)
	}

	for _, status := range []string{StatusPending, StatusRunning} {
		r := &Result{Status: status}
		assert.False(t, r.IsFinal(), status)
	}
}

func TestResult_FailureDetail_PrefersError(t *testing.T) {
	r := &Result{
		Error: "connection refused",
		Assertions: []assertion.Result{
			{Target: "points", Passed: false, Message: "0 is not positive"},
		},
	}
	assert.Equal(t, "connection refused", r.FailureDetail())
}

func TestResult_FailureDetail_FirstFailingAssertion(t *testing.T) {
	r := &Result{
		Assertions: []assertion.Result{
			{Target: "name", Passed: true, Message: "ok"},
			{Target: "points", Passed: false, Message: "0 is not positive"},
			{Target: "level", Passed: false, Message: "too low"},
		},
	}
	assert.Equal(t, "points: 0 is not positive", r.FailureDetail())
}

func TestResult_FailureDetail_Empty(t *testing.T) {
	r := &Result{Status: StatusPassed}
	assert.Empty(t, r.FailureDetail())
}
