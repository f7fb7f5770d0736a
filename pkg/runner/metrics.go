package runner

import (
	"sync"
	"time"

	"digital.vasic.careerquest/pkg/check"
)

// RunMetrics collects in-memory counters over check executions
// and assertion evaluations.
type RunMetrics struct {
	mu         sync.Mutex
	executions map[string]int
	durations  map[check.ID][]time.Duration
	assertions map[string]int
	runTotal   int
}

// NewRunMetrics creates an empty metrics collector.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		executions: make(map[string]int),
		durations:  make(map[check.ID][]time.Duration),
		assertions: make(map[string]int),
	}
}

// RecordExecution counts a check execution by status.
func (m *RunMetrics) RecordExecution(
	id check.ID, status string, duration time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executions[string(id)+":"+status]++
	m.durations[id] = append(m.durations[id], duration)
	m.runTotal++
}

// RecordAssertion counts an assertion outcome for a check.
func (m *RunMetrics) RecordAssertion(id check.ID, passed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := "failed"
	if passed {
		status = "passed"
	}
	m.assertions[string(id)+":"+status]++
}

// ExecutionCount returns the count for a check and status.
func (m *RunMetrics) ExecutionCount(
	id check.ID, status string,
) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executions[string(id)+":"+status]
}

// AssertionCount returns the count of assertion outcomes for a
// check, split by passed state.
func (m *RunMetrics) AssertionCount(
	id check.ID, passed bool,
) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := "failed"
	if passed {
		status = "passed"
	}
	return m.assertions[string(id)+":"+status]
}

// RunTotal returns the total number of check executions.
func (m *RunMetrics) RunTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runTotal
}

// TotalDuration returns the summed execution time for a check.
func (m *RunMetrics) TotalDuration(id check.ID) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total time.Duration
	for _, d := range m.durations[id] {
		total += d
	}
	return total
}
