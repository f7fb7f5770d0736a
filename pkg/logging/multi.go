package logging

// MultiLogger fans out every call to a set of loggers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger writing to every destination.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Info logs to all destinations.
func (m *MultiLogger) Info(msg string, fields ...Field) {
	for _, l := range m.loggers {
		l.Info(msg, fields...)
	}
}

// Warn logs to all destinations.
func (m *MultiLogger) Warn(msg string, fields ...Field) {
	for _, l := range m.loggers {
		l.Warn(msg, fields...)
	}
}

// Error logs to all destinations.
func (m *MultiLogger) Error(msg string, fields ...Field) {
	for _, l := range m.loggers {
		l.Error(msg, fields...)
	}
}

// Debug logs to all destinations.
func (m *MultiLogger) Debug(msg string, fields ...Field) {
	for _, l := range m.loggers {
		l.Debug(msg, fields...)
	}
}

// WithFields applies the fields to every inner logger.
func (m *MultiLogger) WithFields(fields ...Field) Logger {
	out := make([]Logger, len(m.loggers))
	for i, l := range m.loggers {
		out[i] = l.WithFields(fields...)
	}
	return &MultiLogger{loggers: out}
}

// LogAPIRequest logs to all destinations.
func (m *MultiLogger) LogAPIRequest(request APIRequestLog) {
	for _, l := range m.loggers {
		l.LogAPIRequest(request)
	}
}

// LogAPIResponse logs to all destinations.
func (m *MultiLogger) LogAPIResponse(response APIResponseLog) {
	for _, l := range m.loggers {
		l.LogAPIResponse(response)
	}
}

// Close closes every inner logger, returning the first error.
func (m *MultiLogger) Close() error {
	var firstErr error
	for _, l := range m.loggers {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
