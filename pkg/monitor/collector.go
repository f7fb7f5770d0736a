package monitor

import (
	"sync"
	"time"
)

// EventCollector captures check events and aggregate timing.
type EventCollector struct {
	mu       sync.RWMutex
	events   []CheckEvent
	handlers []func(CheckEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics over collected
// events.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Errored   int           `json:"errored"`
	TimedOut  int           `json:"timed_out"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]CheckEvent, 0, 32),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler called for each emitted event.
func (c *EventCollector) OnEvent(handler func(CheckEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event CheckEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	switch event.Type {
	case EventPassed:
		c.stats.Total++
		c.stats.Passed++
	case EventFailed:
		c.stats.Total++
		c.stats.Failed++
	case EventErrored:
		c.stats.Total++
		c.stats.Errored++
	case EventTimedOut:
		c.stats.Total++
		c.stats.TimedOut++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(CheckEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []CheckEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]CheckEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
