package monitor

import (
	"sync"
	"time"

	"digital.vasic.careerquest/pkg/check"
)

// DashboardData tracks real-time suite execution state. It is
// safe for concurrent use; serialize it via Snapshot.
type DashboardData struct {
	mu        sync.RWMutex
	runID     string
	startTime time.Time
	status    string // running, completed, failed
	checks    map[check.ID]CheckState
	summary   DashboardSummary
}

// DashboardSnapshot is an immutable copy of the dashboard state
// for serialization.
type DashboardSnapshot struct {
	RunID     string                  `json:"run_id"`
	StartTime time.Time               `json:"start_time"`
	Status    string                  `json:"status"`
	Checks    map[check.ID]CheckState `json:"checks"`
	Summary   DashboardSummary        `json:"summary"`
}

// CheckState is the current state of one check in the dashboard.
type CheckState struct {
	ID       check.ID      `json:"id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Running  int     `json:"running"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewDashboardData creates a dashboard for the given run.
func NewDashboardData(runID string) *DashboardData {
	return &DashboardData{
		runID:     runID,
		startTime: time.Now(),
		status:    "running",
		checks:    make(map[check.ID]CheckState),
	}
}

// UpdateFromEvent updates dashboard state from a check event.
func (d *DashboardData) UpdateFromEvent(event CheckEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.checks[event.CheckID]
	state.ID = event.CheckID
	state.Name = event.Name
	if event.Category != "" {
		state.Category = event.Category
	}

	switch event.Type {
	case EventStarted:
		state.Status = check.StatusRunning
		d.checks[event.CheckID] = state
	case EventRunDone:
		// Run-level event, no per-check state to record.
		if d.summary.Failed > 0 {
			d.status = "failed"
		} else {
			d.status = "completed"
		}
	default:
		state.Status = event.Status
		state.Duration = event.Duration
		state.Message = event.Message
		d.checks[event.CheckID] = state
	}

	d.recalcSummary()
}

func (d *DashboardData) recalcSummary() {
	summary := DashboardSummary{}
	for _, state := range d.checks {
		summary.Total++
		switch state.Status {
		case check.StatusPassed:
			summary.Passed++
		case check.StatusRunning:
			summary.Running++
		case check.StatusPending, "":
			// not started yet
		default:
			summary.Failed++
		}
	}
	finished := summary.Passed + summary.Failed
	if finished > 0 {
		summary.PassRate =
			float64(summary.Passed) / float64(finished)
	}
	summary.Elapsed = time.Since(d.startTime).Round(
		time.Millisecond,
	).String()
	d.summary = summary
}

// Snapshot returns a copy of the dashboard state safe for
// serialization.
func (d *DashboardData) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := DashboardSnapshot{
		RunID:     d.runID,
		StartTime: d.startTime,
		Status:    d.status,
		Checks:    make(map[check.ID]CheckState, len(d.checks)),
		Summary:   d.summary,
	}
	for id, state := range d.checks {
		snap.Checks[id] = state
	}
	return snap
}
