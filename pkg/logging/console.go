package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// ConsoleLogger writes colored, human-readable output. Debug
// entries are suppressed unless verbose is enabled.
type ConsoleLogger struct {
	mu      sync.Mutex
	output  io.Writer
	verbose bool
	fields  []Field
}

// NewConsoleLogger creates a console logger writing to stdout.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		output:  os.Stdout,
		verbose: verbose,
	}
}

// SetOutput redirects console output, primarily for tests.
func (c *ConsoleLogger) SetOutput(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.output = w
}

func (c *ConsoleLogger) log(
	level Level, color, msg string, fields []Field,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := time.Now().Format("15:04:05")

	all := make([]Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)

	var fieldStr string
	if len(all) > 0 {
		parts := make([]string, 0, len(all))
		for _, f := range all {
			parts = append(
				parts, fmt.Sprintf("%s=%v", f.Key, f.Value),
			)
		}
		fieldStr = " " + colorGray +
			"{" + strings.Join(parts, ", ") + "}" +
			colorReset
	}

	fmt.Fprintf(
		c.output, "%s%s%s [%s%-5s%s] %s%s\n",
		colorGray, ts, colorReset,
		color, level.String(), colorReset,
		msg, fieldStr,
	)
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, colorBlue, msg, fields)
}

// Warn logs a warning message.
func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, colorYellow, msg, fields)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, colorRed, msg, fields)
}

// Debug logs a debug message when verbose is enabled.
func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	if c.verbose {
		c.log(LevelDebug, colorGray, msg, fields)
	}
}

// WithFields returns a ConsoleLogger that prefixes every entry
// with the given fields.
func (c *ConsoleLogger) WithFields(fields ...Field) Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := &ConsoleLogger{
		output:  c.output,
		verbose: c.verbose,
		fields:  append(append([]Field{}, c.fields...), fields...),
	}
	return clone
}

// LogAPIRequest prints request details at debug level.
func (c *ConsoleLogger) LogAPIRequest(request APIRequestLog) {
	c.Debug("api request",
		F("method", request.Method),
		F("url", request.URL),
		F("request_id", request.RequestID),
	)
}

// LogAPIResponse prints response details at debug level.
func (c *ConsoleLogger) LogAPIResponse(response APIResponseLog) {
	c.Debug("api response",
		F("status", response.StatusCode),
		F("request_id", response.RequestID),
		F("ms", response.ResponseTimeMs),
	)
}

// Close is a no-op for console output.
func (c *ConsoleLogger) Close() error { return nil }

// PassLine prints a green PASS status line for a check.
func (c *ConsoleLogger) PassLine(name, detail string) {
	c.statusLine(colorGreen, "PASS", name, detail)
}

// FailLine prints a red FAIL status line for a check.
func (c *ConsoleLogger) FailLine(name, detail string) {
	c.statusLine(colorRed, "FAIL", name, detail)
}

// SkipLine prints a yellow SKIP status line for a check.
func (c *ConsoleLogger) SkipLine(name, detail string) {
	c.statusLine(colorYellow, "SKIP", name, detail)
}

func (c *ConsoleLogger) statusLine(
	color, status, name, detail string,
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(
		c.output, "%s%s%s: %s\n",
		color, status, colorReset, name,
	)
	if detail != "" {
		fmt.Fprintf(c.output, "   %s\n", detail)
	}
}
