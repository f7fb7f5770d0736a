// Package report builds and renders run summaries for the
// conformance suite.
package report

import (
	"fmt"
	"time"

	"digital.vasic.careerquest/pkg/check"
)

// RunSummary is the aggregated outcome of one suite run.
type RunSummary struct {
	ID            string         `json:"id"`
	GeneratedAt   time.Time      `json:"generated_at"`
	BaseURL       string         `json:"base_url"`
	Checks        []CheckSummary `json:"checks"`
	TotalChecks   int            `json:"total_checks"`
	PassedChecks  int            `json:"passed_checks"`
	FailedChecks  int            `json:"failed_checks"`
	TotalDuration time.Duration  `json:"total_duration"`
	PassRate      float64        `json:"pass_rate"`
	Failures      []string       `json:"failures"`
}

// CheckSummary is one check's line in the summary.
type CheckSummary struct {
	CheckID          check.ID      `json:"check_id"`
	CheckName        string        `json:"check_name"`
	Status           string        `json:"status"`
	Duration         time.Duration `json:"duration"`
	AssertionsPassed int           `json:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total"`
	Detail           string        `json:"detail,omitempty"`
}

// Succeeded reports whether the run passed overall: at least one
// check ran and none failed.
func (s *RunSummary) Succeeded() bool {
	return s.TotalChecks > 0 && s.FailedChecks == 0
}

// BuildRunSummary aggregates check results into a summary.
// Every non-passed terminal status counts as failed. The pass
// rate is zero when no checks ran; the division is guarded.
func BuildRunSummary(
	results []*check.Result,
	baseURL string,
) *RunSummary {
	summary := &RunSummary{
		ID: fmt.Sprintf(
			"run_%s", time.Now().Format("20060102_150405"),
		),
		GeneratedAt: time.Now(),
		BaseURL:     baseURL,
		Checks:      make([]CheckSummary, 0, len(results)),
	}

	for _, r := range results {
		assertionsPassed := 0
		for _, a := range r.Assertions {
			if a.Passed {
				assertionsPassed++
			}
		}

		cs := CheckSummary{
			CheckID:          r.CheckID,
			CheckName:        r.CheckName,
			Status:           r.Status,
			Duration:         r.Duration,
			AssertionsPassed: assertionsPassed,
			AssertionsTotal:  len(r.Assertions),
			Detail:           r.FailureDetail(),
		}

		summary.Checks = append(summary.Checks, cs)
		summary.TotalChecks++
		summary.TotalDuration += r.Duration

		if r.Status == check.StatusPassed {
			summary.PassedChecks++
		} else {
			summary.FailedChecks++
			summary.Failures = append(
				summary.Failures,
				fmt.Sprintf(
					"%s: %s", r.CheckName, r.FailureDetail(),
				),
			)
		}
	}

	if summary.TotalChecks > 0 {
		summary.PassRate =
			float64(summary.PassedChecks) /
				float64(summary.TotalChecks)
	}

	return summary
}
