// Package logging provides structured logging for the
// conformance harness with colored console, JSON Lines, and
// multi-destination output.
package logging

// Logger is the structured logging interface used across the
// harness.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger that attaches the given
	// default fields to every subsequent entry.
	WithFields(fields ...Field) Logger

	// LogAPIRequest records an outbound advisor API request.
	LogAPIRequest(request APIRequestLog)

	// LogAPIResponse records an inbound advisor API response.
	LogAPIResponse(response APIResponseLog)

	// Close flushes buffers and releases resources.
	Close() error
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// F builds a Field from a key and value.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Err builds an error Field. A nil error logs as "<nil>".
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// APIRequestLog captures an advisor API request.
type APIRequestLog struct {
	Timestamp  string `json:"timestamp"`
	RequestID  string `json:"request_id"`
	Method     string `json:"method"`
	URL        string `json:"url"`
	BodyLength int    `json:"body_length"`
}

// APIResponseLog captures an advisor API response.
type APIResponseLog struct {
	Timestamp      string `json:"timestamp"`
	RequestID      string `json:"request_id"`
	StatusCode     int    `json:"status_code"`
	BodyPreview    string `json:"body_preview,omitempty"`
	BodyLength     int    `json:"body_length"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

// Level is a logging severity.
type Level int

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}
