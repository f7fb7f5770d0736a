// Package monitor provides live run monitoring: an event
// collector fed by the runner, a dashboard snapshot, and a
// WebSocket server broadcasting events to connected clients.
package monitor

import (
	"time"

	"digital.vasic.careerquest/pkg/check"
)

// EventType represents the type of check event.
type EventType string

const (
	EventStarted  EventType = "started"
	EventPassed   EventType = "passed"
	EventFailed   EventType = "failed"
	EventErrored  EventType = "errored"
	EventTimedOut EventType = "timed_out"
	EventRunDone  EventType = "run_done"
)

// CheckEvent is a lifecycle event during suite execution.
type CheckEvent struct {
	Type      EventType     `json:"type"`
	CheckID   check.ID      `json:"check_id"`
	Name      string        `json:"name"`
	Category  string        `json:"category,omitempty"`
	Status    string        `json:"status,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// EventFromResult converts a completed check result into the
// corresponding event.
func EventFromResult(r *check.Result) CheckEvent {
	event := CheckEvent{
		CheckID:   r.CheckID,
		Name:      r.CheckName,
		Status:    r.Status,
		Message:   r.FailureDetail(),
		Duration:  r.Duration,
		Timestamp: r.EndTime,
	}
	switch r.Status {
	case check.StatusPassed:
		event.Type = EventPassed
	case check.StatusTimedOut:
		event.Type = EventTimedOut
	case check.StatusError:
		event.Type = EventErrored
	default:
		event.Type = EventFailed
	}
	return event
}
