package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.careerquest/pkg/check"
)

// fixedSummary returns a summary with deterministic timestamps
// for golden comparison.
func fixedSummary() *RunSummary {
	return &RunSummary{
		ID: "run_20260101_120000",
		GeneratedAt: time.Date(
			2026, 1, 1, 12, 0, 0, 0, time.UTC,
		),
		BaseURL: "http://localhost:8000",
		Checks: []CheckSummary{
			{
				CheckID:          "health",
				CheckName:        "Health Check",
				Status:           check.StatusPassed,
				Duration:         120 * time.Millisecond,
				AssertionsPassed: 1,
				AssertionsTotal:  1,
			},
			{
				CheckID:          "submit-quiz",
				CheckName:        "Submit Quiz",
				Status:           check.StatusFailed,
				Duration:         310 * time.Millisecond,
				AssertionsPassed: 5,
				AssertionsTotal:  7,
				Detail:           "points_earned: 0 is not positive",
			},
		},
		TotalChecks:   2,
		PassedChecks:  1,
		FailedChecks:  1,
		TotalDuration: 430 * time.Millisecond,
		PassRate:      0.5,
		Failures: []string{
			"Submit Quiz: points_earned: 0 is not positive",
		},
	}
}

func TestRenderMarkdown_Golden(t *testing.T) {
	content := RenderMarkdown(fixedSummary())

	g := goldie.New(t, goldie.WithNameSuffix(".golden"))
	g.Assert(t, "run_summary", []byte(content))
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	data, err := RenderJSON(fixedSummary())
	require.NoError(t, err)

	var decoded RunSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run_20260101_120000", decoded.ID)
	assert.Len(t, decoded.Checks, 2)
	assert.Equal(t, 1, decoded.FailedChecks)
}

func TestSaveRunSummary_WritesFilesAndSymlinks(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SaveRunSummary(fixedSummary(), dir))

	jsonPath := filepath.Join(
		dir, "run_summary_20260101_120000.json",
	)
	mdPath := filepath.Join(
		dir, "run_summary_20260101_120000.md",
	)
	assert.FileExists(t, jsonPath)
	assert.FileExists(t, mdPath)

	latest, err := os.Readlink(
		filepath.Join(dir, "latest_summary.json"),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(jsonPath), latest)
}
