package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RenderJSON serializes a summary as indented JSON.
func RenderJSON(summary *RunSummary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	return data, nil
}

// RenderMarkdown renders a summary as a Markdown report.
func RenderMarkdown(summary *RunSummary) string {
	var sb strings.Builder

	sb.WriteString("# CareerQuest Conformance - Run Summary\n\n")
	sb.WriteString(fmt.Sprintf("**Run ID:** %s\n\n", summary.ID))
	sb.WriteString(fmt.Sprintf(
		"**Generated:** %s\n\n",
		summary.GeneratedAt.Format(time.RFC3339),
	))
	sb.WriteString(fmt.Sprintf(
		"**Backend:** %s\n\n", summary.BaseURL,
	))

	sb.WriteString("## Checks\n\n")
	sb.WriteString("| Check | Status | Duration | Assertions |\n")
	sb.WriteString("|-------|--------|----------|------------|\n")

	for _, c := range summary.Checks {
		sb.WriteString(fmt.Sprintf(
			"| %s | %s | %v | %d/%d |\n",
			c.CheckName,
			strings.ToUpper(c.Status),
			c.Duration,
			c.AssertionsPassed,
			c.AssertionsTotal,
		))
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf(
		"| Total Checks | %d |\n", summary.TotalChecks,
	))
	sb.WriteString(fmt.Sprintf(
		"| Passed | %d |\n", summary.PassedChecks,
	))
	sb.WriteString(fmt.Sprintf(
		"| Failed | %d |\n", summary.FailedChecks,
	))
	sb.WriteString(fmt.Sprintf(
		"| Pass Rate | %.1f%% |\n", summary.PassRate*100,
	))
	sb.WriteString(fmt.Sprintf(
		"| Total Duration | %v |\n", summary.TotalDuration,
	))

	if len(summary.Failures) > 0 {
		sb.WriteString("\n## Failures\n\n")
		for _, f := range summary.Failures {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by CareerQuest Conformance*\n")

	return sb.String()
}

// SaveRunSummary writes the JSON and Markdown renderings of the
// summary into outputDir, refreshing latest_* symlinks.
func SaveRunSummary(summary *RunSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir, fmt.Sprintf("run_summary_%s.json", ts),
	)
	jsonData, err := RenderJSON(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("write JSON summary: %w", err)
	}

	mdPath := filepath.Join(
		outputDir, fmt.Sprintf("run_summary_%s.md", ts),
	)
	mdContent := RenderMarkdown(summary)
	if err := os.WriteFile(
		mdPath, []byte(mdContent), 0o644,
	); err != nil {
		return fmt.Errorf("write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}
