package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"digital.vasic.careerquest/pkg/assertion"
	"digital.vasic.careerquest/pkg/check"
)

func TestPrinter_PrintResult_Pass(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&check.Result{
		CheckName: "Health Check",
		Status:    check.StatusPassed,
	})

	assert.Equal(t, "PASS: Health Check\n", buf.String())
}

func TestPrinter_PrintResult_FailWithDetail(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&check.Result{
		CheckName: "Submit Quiz",
		Status:    check.StatusFailed,
		Assertions: []assertion.Result{
			{Target: "points_earned", Passed: false,
				Message: "0 is not positive"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "FAIL: Submit Quiz")
	assert.Contains(t, out, "points_earned: 0 is not positive")
}

func TestPrinter_PrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(fixedSummary())

	out := buf.String()
	assert.Contains(t, out, "FINAL RESULTS")
	assert.Contains(t, out, "Passed: 1")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Success Rate: 50.0%")
	assert.Contains(t, out,
		"- Submit Quiz: points_earned: 0 is not positive")
}

func TestPrinter_PrintSummary_NoFailures(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(&RunSummary{
		TotalChecks:  1,
		PassedChecks: 1,
		PassRate:     1,
	})

	assert.NotContains(t, buf.String(), "Failed checks")
}
