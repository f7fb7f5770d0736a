package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.careerquest/pkg/check"
)

// HistoricalEntry is a single check execution in the JSONL
// history log.
type HistoricalEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	CheckID          string    `json:"check_id"`
	Status           string    `json:"status"`
	Duration         string    `json:"duration"`
	AssertionsPassed int       `json:"assertions_passed"`
	AssertionsTotal  int       `json:"assertions_total"`
}

// AppendToHistory adds an entry to the history log at
// historyPath. Each entry is a single JSON line.
func AppendToHistory(
	historyPath string,
	result *check.Result,
) error {
	assertionsPassed := 0
	for _, a := range result.Assertions {
		if a.Passed {
			assertionsPassed++
		}
	}

	entry := HistoricalEntry{
		Timestamp:        result.EndTime,
		CheckID:          string(result.CheckID),
		Status:           result.Status,
		Duration:         result.Duration.String(),
		AssertionsPassed: assertionsPassed,
		AssertionsTotal:  len(result.Assertions),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}
