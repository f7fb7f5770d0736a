package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.careerquest/pkg/check"
	"digital.vasic.careerquest/pkg/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func summaryAt(
	id string, at time.Time, failed int,
) *report.RunSummary {
	passed := 2 - failed
	return &report.RunSummary{
		ID:          id,
		GeneratedAt: at,
		BaseURL:     "http://localhost:8000",
		Checks: []report.CheckSummary{
			{
				CheckID:          "health",
				CheckName:        "Health Check",
				Status:           check.StatusPassed,
				Duration:         100 * time.Millisecond,
				AssertionsPassed: 1,
				AssertionsTotal:  1,
			},
			{
				CheckID:          "submit-quiz",
				CheckName:        "Submit Quiz",
				Status:           check.StatusFailed,
				Duration:         200 * time.Millisecond,
				AssertionsPassed: 5,
				AssertionsTotal:  7,
				Detail:           "points_earned: 0 is not positive",
			},
		},
		TotalChecks:   2,
		PassedChecks:  passed,
		FailedChecks:  failed,
		PassRate:      float64(passed) / 2,
		TotalDuration: 300 * time.Millisecond,
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := Open(path)

	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestStore_SaveRunAndRecentRuns(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveRun(summaryAt("run_1", base, 1)))
	require.NoError(t, s.SaveRun(
		summaryAt("run_2", base.Add(time.Hour), 0),
	))

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "run_2", runs[0].ID)
	assert.Equal(t, "run_1", runs[1].ID)
	assert.Equal(t, 2, runs[0].TotalChecks)
	assert.Equal(t, int64(300), runs[0].DurationMs)
}

func TestStore_SaveRun_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	at := time.Now()

	require.NoError(t, s.SaveRun(summaryAt("run_1", at, 0)))
	err := s.SaveRun(summaryAt("run_1", at, 0))

	assert.Error(t, err)
}

func TestStore_CheckResults(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun(
		summaryAt("run_1", time.Now(), 1),
	))

	results, err := s.CheckResults("run_1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Ordered by check ID.
	assert.Equal(t, "health", results[0].CheckID)
	assert.Equal(t, "submit-quiz", results[1].CheckID)
	assert.Equal(t,
		"points_earned: 0 is not positive", results[1].Detail)
}

func TestStore_CheckResults_UnknownRun(t *testing.T) {
	s := openTestStore(t)

	results, err := s.CheckResults("nope")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_FailureStreak(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveRun(summaryAt("run_1", base, 0)))
	require.NoError(t, s.SaveRun(
		summaryAt("run_2", base.Add(time.Hour), 1),
	))
	require.NoError(t, s.SaveRun(
		summaryAt("run_3", base.Add(2*time.Hour), 1),
	))

	streak, err := s.FailureStreak()
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestStore_FailureStreak_Empty(t *testing.T) {
	s := openTestStore(t)

	streak, err := s.FailureStreak()

	require.NoError(t, err)
	assert.Zero(t, streak)
}
