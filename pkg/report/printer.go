package report

import (
	"fmt"
	"io"

	"digital.vasic.careerquest/pkg/check"
)

// Printer writes per-check status lines and the final summary
// in a human-readable form.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintResult writes one status line for a completed check,
// with the failure detail on a second line when present.
func (p *Printer) PrintResult(r *check.Result) {
	status := "FAIL"
	if r.Status == check.StatusPassed {
		status = "PASS"
	}
	fmt.Fprintf(p.out, "%s: %s\n", status, r.CheckName)
	if detail := r.FailureDetail(); detail != "" {
		fmt.Fprintf(p.out, "   %s\n", detail)
	}
}

// PrintSummary writes the aggregate counts, the pass rate, and
// the failure list.
func (p *Printer) PrintSummary(summary *RunSummary) {
	fmt.Fprintln(p.out, "================================")
	fmt.Fprintln(p.out, "FINAL RESULTS")
	fmt.Fprintln(p.out, "================================")
	fmt.Fprintf(p.out, "Passed: %d\n", summary.PassedChecks)
	fmt.Fprintf(p.out, "Failed: %d\n", summary.FailedChecks)
	fmt.Fprintf(
		p.out, "Success Rate: %.1f%%\n", summary.PassRate*100,
	)

	if len(summary.Failures) > 0 {
		fmt.Fprintln(p.out, "\nFailed checks:")
		for _, f := range summary.Failures {
			fmt.Fprintf(p.out, "  - %s\n", f)
		}
	}
}
