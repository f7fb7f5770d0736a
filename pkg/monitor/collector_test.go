package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.careerquest/pkg/check"
)

func TestEventCollector_EmitAndStats(t *testing.T) {
	c := NewEventCollector()

	c.Emit(CheckEvent{Type: EventPassed, CheckID: "health"})
	c.Emit(CheckEvent{Type: EventFailed, CheckID: "submit-quiz"})
	c.Emit(CheckEvent{Type: EventErrored, CheckID: "seed-data"})
	c.Emit(CheckEvent{Type: EventTimedOut, CheckID: "get-user"})
	c.Emit(CheckEvent{Type: EventRunDone})

	stats := c.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Errored)
	assert.Equal(t, 1, stats.TimedOut)
	assert.Len(t, c.Events(), 5)
}

func TestEventCollector_HandlersInvoked(t *testing.T) {
	c := NewEventCollector()

	var seen []check.ID
	c.OnEvent(func(event CheckEvent) {
		seen = append(seen, event.CheckID)
	})

	c.Emit(CheckEvent{Type: EventPassed, CheckID: "health"})
	c.Emit(CheckEvent{Type: EventFailed, CheckID: "get-user"})

	assert.Equal(t, []check.ID{"health", "get-user"}, seen)
}

func TestEventCollector_RunDoneCompletesDashboard(t *testing.T) {
	// Mirrors the run command wiring: the dashboard only leaves
	// "running" when a run_done event is emitted after the
	// sequence finishes.
	c := NewEventCollector()
	d := NewDashboardData("run_1")
	c.OnEvent(d.UpdateFromEvent)

	c.Emit(CheckEvent{
		Type: EventPassed, CheckID: "health",
		Status: check.StatusPassed,
	})
	assert.Equal(t, "running", d.Snapshot().Status)

	c.Emit(CheckEvent{Type: EventRunDone})
	assert.Equal(t, "completed", d.Snapshot().Status)
}

func TestEventCollector_SetsTimestamp(t *testing.T) {
	c := NewEventCollector()

	c.Emit(CheckEvent{Type: EventPassed, CheckID: "health"})

	events := c.Events()
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestEventFromResult_StatusMapping(t *testing.T) {
	tests := []struct {
		status string
		want   EventType
	}{
		{check.StatusPassed, EventPassed},
		{check.StatusFailed, EventFailed},
		{check.StatusTimedOut, EventTimedOut},
		{check.StatusError, EventErrored},
		{check.StatusSkipped, EventFailed},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			event := EventFromResult(&check.Result{
				CheckID:  "health",
				Status:   tt.status,
				Duration: 100 * time.Millisecond,
			})
			assert.Equal(t, tt.want, event.Type)
			assert.Equal(t, check.ID("health"), event.CheckID)
		})
	}
}

func TestEventFromResult_CarriesFailureDetail(t *testing.T) {
	event := EventFromResult(&check.Result{
		CheckID: "get-user",
		Status:  check.StatusFailed,
		Error:   "unmet dependency: create-user did not pass",
	})

	assert.Equal(t,
		"unmet dependency: create-user did not pass",
		event.Message)
}
