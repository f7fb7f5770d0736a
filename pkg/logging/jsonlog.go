package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is a single JSON Lines log record.
type Entry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// JSONConfig configures a JSONLogger.
type JSONConfig struct {
	// OutputPath is the main log file. Empty writes to stdout.
	OutputPath string

	// APIRequestLog and APIResponseLog are optional JSONL files
	// for advisor API traffic.
	APIRequestLog  string
	APIResponseLog string

	// Level is the minimum level emitted.
	Level Level

	// Fields are attached to every entry.
	Fields map[string]any
}

// JSONLogger writes JSON Lines entries.
type JSONLogger struct {
	mu           sync.Mutex
	output       io.Writer
	apiRequests  io.WriteCloser
	apiResponses io.WriteCloser
	level        Level
	fields       map[string]any
	closers      []io.Closer
	closed       bool
}

// NewJSONLogger creates a JSON logger from config. Parent
// directories for log files are created as needed.
func NewJSONLogger(config JSONConfig) (*JSONLogger, error) {
	l := &JSONLogger{
		level:  config.Level,
		fields: config.Fields,
		output: os.Stdout,
	}
	if l.fields == nil {
		l.fields = make(map[string]any)
	}

	if config.OutputPath != "" {
		f, err := openAppend(config.OutputPath)
		if err != nil {
			return nil, err
		}
		l.output = f
		l.closers = append(l.closers, f)
	}
	if config.APIRequestLog != "" {
		f, err := openAppend(config.APIRequestLog)
		if err != nil {
			return nil, err
		}
		l.apiRequests = f
		l.closers = append(l.closers, f)
	}
	if config.APIResponseLog != "" {
		f, err := openAppend(config.APIResponseLog)
		if err != nil {
			return nil, err
		}
		l.apiResponses = f
		l.closers = append(l.closers, f)
	}
	return l, nil
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(
		path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
	)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || level < l.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
	}
	if len(l.fields) > 0 || len(fields) > 0 {
		entry.Fields = make(map[string]any, len(l.fields)+len(fields))
		for k, v := range l.fields {
			entry.Fields[k] = v
		}
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	fmt.Fprintln(l.output, string(data))
}

// Info logs an informational message.
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

// Warn logs a warning message.
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

// Error logs an error message.
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

// Debug logs a debug-level message.
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

// WithFields returns a JSONLogger sharing the same outputs with
// additional default fields.
func (l *JSONLogger) WithFields(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &JSONLogger{
		output:       l.output,
		apiRequests:  l.apiRequests,
		apiResponses: l.apiResponses,
		level:        l.level,
		fields:       merged,
	}
}

// LogAPIRequest appends a request record to the API request log
// if one is configured.
func (l *JSONLogger) LogAPIRequest(request APIRequestLog) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.apiRequests == nil {
		return
	}
	data, err := json.Marshal(request)
	if err != nil {
		return
	}
	fmt.Fprintln(l.apiRequests, string(data))
}

// LogAPIResponse appends a response record to the API response
// log if one is configured.
func (l *JSONLogger) LogAPIResponse(response APIResponseLog) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.apiResponses == nil {
		return
	}
	data, err := json.Marshal(response)
	if err != nil {
		return
	}
	fmt.Fprintln(l.apiResponses, string(data))
}

// Close closes any files opened by the logger.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
